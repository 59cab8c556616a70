package models

// DurationStats summarises info.gameDuration (seconds) over a set of matches.
type DurationStats struct {
	Min int     `json:"min" bson:"min"`
	Max int     `json:"max" bson:"max"`
	Avg float64 `json:"avg" bson:"avg"`
}

type ChampionCount struct {
	ChampionID   int    `json:"championId" bson:"championId"`
	ChampionName string `json:"championName" bson:"championName"`
	Count        int    `json:"count" bson:"count"`
}

type ChampionWinrate struct {
	ChampionID   int     `json:"championId" bson:"championId"`
	ChampionName string  `json:"championName" bson:"championName"`
	Games        int     `json:"games" bson:"games"`
	Wins         int     `json:"wins" bson:"wins"`
	Winrate      float64 `json:"winrate" bson:"winrate"`
}

// PlayerRoles is the per-role breakdown of one player's matches.
type PlayerRoles struct {
	Puuid      string       `json:"puuid" bson:"puuid"`
	RiotName   string       `json:"riotName" bson:"riotName"`
	TotalGames int          `json:"totalGames" bson:"totalGames"`
	TotalWins  int          `json:"totalWins" bson:"totalWins"`
	Winrate    float64      `json:"winrate" bson:"winrate"`
	Roles      []PlayerRole `json:"roles" bson:"roles"`
}

type PlayerRole struct {
	Role             string          `json:"role" bson:"role"`
	Games            int             `json:"games" bson:"games"`
	Wins             int             `json:"wins" bson:"wins"`
	Winrate          float64         `json:"winrate" bson:"winrate"`
	FavoriteChampion ChampionSummary `json:"favoriteChampion" bson:"favoriteChampion"`
}

type ChampionSummary struct {
	Name    string  `json:"name" bson:"name"`
	Games   int     `json:"games" bson:"games"`
	Wins    int     `json:"wins" bson:"wins"`
	Winrate float64 `json:"winrate" bson:"winrate"`
}

// ChampionStatistics is the per-role breakdown of one champion's picks.
type ChampionStatistics struct {
	Champion string     `json:"champion" bson:"champion"`
	Picks    int        `json:"picks" bson:"picks"`
	Roles    []RoleStat `json:"roles" bson:"roles"`
}

type RoleStat struct {
	Role    string  `json:"role" bson:"role"`
	Games   int     `json:"games" bson:"games"`
	Wins    int     `json:"wins" bson:"wins"`
	Winrate float64 `json:"winrate" bson:"winrate"`
}

// BulkResult reports the outcome of a bulk upsert.
type BulkResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Total    int `json:"total"`
}

// Percentage returns 100*part/whole, or 0 when whole is 0.
func Percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) * 100 / float64(whole)
}

package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Player is a ranked ladder entry keyed by puuid.
type Player struct {
	ID primitive.ObjectID `json:"-" bson:"_id,omitempty"`

	Puuid        string `json:"puuid" bson:"puuid" validate:"required"`
	Tier         Tier   `json:"tier,omitempty" bson:"tier,omitempty"`
	Rank         Rank   `json:"rank,omitempty" bson:"rank,omitempty"`
	LeaguePoints int    `json:"leaguePoints" bson:"leaguePoints" validate:"min=0"`
	Wins         int    `json:"wins" bson:"wins" validate:"min=0"`
	Losses       int    `json:"losses" bson:"losses" validate:"min=0"`
	Veteran      bool   `json:"veteran" bson:"veteran"`
	Inactive     bool   `json:"inactive" bson:"inactive"`
	FreshBlood   bool   `json:"freshBlood" bson:"freshBlood"`
}

// PlayerFilter restricts player searches. Nil fields match everything;
// MinLP and MaxLP are inclusive.
type PlayerFilter struct {
	Tier       *Tier
	Rank       *Rank
	MinLP      *int
	MaxLP      *int
	Veteran    *bool
	Inactive   *bool
	FreshBlood *bool
}

// PlayerPatch lists every scalar field a PATCH may touch. The puuid is the
// key and cannot be patched.
type PlayerPatch struct {
	Tier         *Tier `json:"tier,omitempty"`
	Rank         *Rank `json:"rank,omitempty"`
	LeaguePoints *int  `json:"leaguePoints,omitempty" validate:"omitempty,min=0"`
	Wins         *int  `json:"wins,omitempty" validate:"omitempty,min=0"`
	Losses       *int  `json:"losses,omitempty" validate:"omitempty,min=0"`
	Veteran      *bool `json:"veteran,omitempty"`
	Inactive     *bool `json:"inactive,omitempty"`
	FreshBlood   *bool `json:"freshBlood,omitempty"`
}

func (p PlayerPatch) Empty() bool {
	return p.Tier == nil && p.Rank == nil && p.LeaguePoints == nil &&
		p.Wins == nil && p.Losses == nil && p.Veteran == nil &&
		p.Inactive == nil && p.FreshBlood == nil
}

// PlayerWinrate is the derived ratio served by the winrate endpoint.
type PlayerWinrate struct {
	Puuid   string  `json:"puuid"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	Winrate float64 `json:"winrate"`
}

// Winrate returns 100*wins/(wins+losses), or 0 when no games were played.
func (p Player) Winrate() PlayerWinrate {
	return PlayerWinrate{
		Puuid:   p.Puuid,
		Wins:    p.Wins,
		Losses:  p.Losses,
		Winrate: Percentage(p.Wins, p.Wins+p.Losses),
	}
}

// LeaderboardFields are the player fields a leaderboard may be ordered by.
var LeaderboardFields = map[string]bool{
	"leaguePoints": true,
	"wins":         true,
	"losses":       true,
}

var (
	PlayerSortFields  = map[string]bool{"puuid": true, "tier": true, "rank": true, "leaguePoints": true, "wins": true, "losses": true}
	DefaultPlayerSort = Sort{Field: "leaguePoints", Desc: true}
)

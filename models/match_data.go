// models/match_data.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MatchData is the full telemetry of one match as returned by the Riot
// match-v5 API. The natural key is Metadata.MatchID.
type MatchData struct {
	ID primitive.ObjectID `json:"-" bson:"_id,omitempty"`

	Metadata *MatchMetadata `json:"metadata,omitempty" bson:"metadata,omitempty"`
	Info     *MatchInfo     `json:"info,omitempty" bson:"info,omitempty"`
}

// Key returns the natural key, or "" when the document has none.
func (m *MatchData) Key() string {
	if m == nil || m.Metadata == nil {
		return ""
	}
	return m.Metadata.MatchID
}

// Participants returns the puuids listed in the metadata block.
func (m *MatchData) Participants() []string {
	if m == nil || m.Metadata == nil {
		return nil
	}
	return m.Metadata.Participants
}

type MatchMetadata struct {
	DataVersion  string   `json:"dataVersion,omitempty" bson:"dataVersion,omitempty"`
	MatchID      string   `json:"matchId,omitempty" bson:"matchId,omitempty"`
	Participants []string `json:"participants,omitempty" bson:"participants,omitempty"` // puuids
}

type MatchInfo struct {
	QueueID            int           `json:"queueId" bson:"queueId"`
	PlatformID         string        `json:"platformId,omitempty" bson:"platformId,omitempty"`
	GameDuration       int           `json:"gameDuration" bson:"gameDuration"`
	GameStartTimestamp int64         `json:"gameStartTimestamp" bson:"gameStartTimestamp"`
	GameEndTimestamp   int64         `json:"gameEndTimestamp" bson:"gameEndTimestamp"`
	GameVersion        string        `json:"gameVersion,omitempty" bson:"gameVersion,omitempty"`
	Participants       []Participant `json:"participants,omitempty" bson:"participants,omitempty"`
	Teams              []Team        `json:"teams,omitempty" bson:"teams,omitempty"`
}

// Participant is one player's snapshot inside a match.
type Participant struct {
	Puuid         string `json:"puuid" bson:"puuid"`
	ParticipantID int    `json:"participantId" bson:"participantId"`
	TeamID        int    `json:"teamId" bson:"teamId"`

	ChampionID   int    `json:"championId" bson:"championId"`
	ChampionName string `json:"championName" bson:"championName"`

	IndividualPosition string `json:"individualPosition,omitempty" bson:"individualPosition,omitempty"` // TOP, JUNGLE, MIDDLE, BOTTOM, UTILITY
	TeamPosition       string `json:"teamPosition,omitempty" bson:"teamPosition,omitempty"`

	Kills                       int  `json:"kills" bson:"kills"`
	Deaths                      int  `json:"deaths" bson:"deaths"`
	Assists                     int  `json:"assists" bson:"assists"`
	Win                         bool `json:"win" bson:"win"`
	GoldEarned                  int  `json:"goldEarned" bson:"goldEarned"`
	TotalDamageDealtToChampions int  `json:"totalDamageDealtToChampions" bson:"totalDamageDealtToChampions"`
	TotalMinionsKilled          int  `json:"totalMinionsKilled" bson:"totalMinionsKilled"`

	SummonerName   string `json:"summonerName,omitempty" bson:"summonerName,omitempty"`
	SummonerID     string `json:"summonerId,omitempty" bson:"summonerId,omitempty"`
	RiotIDGameName string `json:"riotIdGameName,omitempty" bson:"riotIdGameName,omitempty"`
	RiotIDTagline  string `json:"riotIdTagline,omitempty" bson:"riotIdTagline,omitempty"`

	ItemsPurchased int `json:"itemsPurchased" bson:"itemsPurchased"`
	Item0          int `json:"item0" bson:"item0"`
	Item1          int `json:"item1" bson:"item1"`
	Item2          int `json:"item2" bson:"item2"`
	Item3          int `json:"item3" bson:"item3"`
	Item4          int `json:"item4" bson:"item4"`
	Item5          int `json:"item5" bson:"item5"`
	Item6          int `json:"item6" bson:"item6"` // trinket

	Perks map[string]any `json:"perks,omitempty" bson:"perks,omitempty"`
}

type Team struct {
	TeamID     int                  `json:"teamId" bson:"teamId"`
	Win        bool                 `json:"win" bson:"win"`
	Bans       []Ban                `json:"bans,omitempty" bson:"bans,omitempty"`
	Objectives map[string]Objective `json:"objectives,omitempty" bson:"objectives,omitempty"`
	Feats      map[string]any       `json:"feats,omitempty" bson:"feats,omitempty"`
}

type Ban struct {
	ChampionID int `json:"championId" bson:"championId"`
	PickTurn   int `json:"pickTurn" bson:"pickTurn"`
}

// Objective counts one objective type (baron, dragon, tower...) for a team.
type Objective struct {
	First bool `json:"first" bson:"first"`
	Kills int  `json:"kills" bson:"kills"`
}

// MatchDataFilter restricts telemetry listings. Nil fields match everything;
// ranges are inclusive.
type MatchDataFilter struct {
	MatchID       *string
	PlatformID    *string
	QueueID       *int
	GameVersion   *string
	StartTimeFrom *int64
	StartTimeTo   *int64
	DurationMin   *int
	DurationMax   *int
}

// StatsFilter is the subset of MatchDataFilter the aggregate endpoints accept.
type StatsFilter struct {
	QueueID       *int
	PlatformID    *string
	StartTimeFrom *int64
	StartTimeTo   *int64
}

var (
	MatchDataSortFields = map[string]bool{
		"metadata.matchId":        true,
		"info.gameStartTimestamp": true,
		"info.gameEndTimestamp":   true,
		"info.gameDuration":       true,
		"info.queueId":            true,
		"info.platformId":         true,
	}
	DefaultMatchDataSort = Sort{Field: "info.gameEndTimestamp", Desc: true}
)

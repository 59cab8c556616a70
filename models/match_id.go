package models

// MatchID is a crawled match identifier together with the bracket it was
// sampled from. The identifier is the document _id.
type MatchID struct {
	MatchID string `json:"matchId" bson:"_id" validate:"required"`
	Tier    Tier   `json:"tier,omitempty" bson:"tier,omitempty"`
	Rank    Rank   `json:"rank,omitempty" bson:"rank,omitempty"`
}

// MatchIDFilter restricts match id queries. Nil fields match everything.
type MatchIDFilter struct {
	Tier *Tier
	Rank *Rank
}

// MatchIDPatch holds the only mutable fields of a MatchID.
type MatchIDPatch struct {
	Tier *Tier `json:"tier,omitempty"`
	Rank *Rank `json:"rank,omitempty"`
}

func (p MatchIDPatch) Empty() bool {
	return p.Tier == nil && p.Rank == nil
}

var (
	MatchIDSortFields  = map[string]bool{"matchId": true, "tier": true, "rank": true}
	DefaultMatchIDSort = Sort{Field: "matchId"}
)

// models/tier.go
package models

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Tier is the ranked league a player or sampled match belongs to.
type Tier string

const (
	TierIron        Tier = "IRON"
	TierBronze      Tier = "BRONZE"
	TierSilver      Tier = "SILVER"
	TierGold        Tier = "GOLD"
	TierPlatinum    Tier = "PLATINUM"
	TierEmerald     Tier = "EMERALD"
	TierDiamond     Tier = "DIAMOND"
	TierMaster      Tier = "MASTER"
	TierGrandmaster Tier = "GRANDMASTER"
	TierChallenger  Tier = "CHALLENGER"
)

// Rank is the division inside a tier (IV is the lowest).
type Rank string

const (
	RankI   Rank = "I"
	RankII  Rank = "II"
	RankIII Rank = "III"
	RankIV  Rank = "IV"
)

// TierOrder gives the ladder position of every tier (higher index = higher tier).
var TierOrder = map[Tier]int{
	TierIron:        0,
	TierBronze:      1,
	TierSilver:      2,
	TierGold:        3,
	TierPlatinum:    4,
	TierEmerald:     5,
	TierDiamond:     6,
	TierMaster:      7,
	TierGrandmaster: 8,
	TierChallenger:  9,
}

// RankOrder gives the position of every division inside a tier.
var RankOrder = map[Rank]int{
	RankIV:  0,
	RankIII: 1,
	RankII:  2,
	RankI:   3,
}

func (t Tier) Valid() bool {
	_, ok := TierOrder[t]
	return ok
}

func (r Rank) Valid() bool {
	_, ok := RankOrder[r]
	return ok
}

// ParseTier accepts the enum name exactly as stored (upper case).
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.TrimSpace(s))
	if !t.Valid() {
		return "", Invalidf("unknown tier %q", s)
	}
	return t, nil
}

func ParseRank(s string) (Rank, error) {
	r := Rank(strings.TrimSpace(s))
	if !r.Valid() {
		return "", Invalidf("unknown rank %q", s)
	}
	return r, nil
}

// UnmarshalJSON treats null and "" as no tier.
func (t *Tier) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("tier must be a string: %w", err)
	}
	if s == "" {
		*t = ""
		return nil
	}
	parsed, err := ParseTier(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (r *Rank) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("rank must be a string: %w", err)
	}
	if s == "" {
		*r = ""
		return nil
	}
	parsed, err := ParseRank(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

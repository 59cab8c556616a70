package store

import (
	"go.mongodb.org/mongo-driver/bson"

	"riot-stats-api/models"
)

// Filter builders. A nil field adds nothing, so an absent parameter never
// narrows a query. The result is never nil.

func matchIDFilter(f models.MatchIDFilter) bson.D {
	d := bson.D{}
	if f.Tier != nil {
		d = append(d, bson.E{Key: "tier", Value: *f.Tier})
	}
	if f.Rank != nil {
		d = append(d, bson.E{Key: "rank", Value: *f.Rank})
	}
	return d
}

func playerFilter(f models.PlayerFilter) bson.D {
	d := bson.D{}
	if f.Tier != nil {
		d = append(d, bson.E{Key: "tier", Value: *f.Tier})
	}
	if f.Rank != nil {
		d = append(d, bson.E{Key: "rank", Value: *f.Rank})
	}
	if lp := rangeDoc(f.MinLP, f.MaxLP); lp != nil {
		d = append(d, bson.E{Key: "leaguePoints", Value: lp})
	}
	if f.Veteran != nil {
		d = append(d, bson.E{Key: "veteran", Value: *f.Veteran})
	}
	if f.Inactive != nil {
		d = append(d, bson.E{Key: "inactive", Value: *f.Inactive})
	}
	if f.FreshBlood != nil {
		d = append(d, bson.E{Key: "freshBlood", Value: *f.FreshBlood})
	}
	return d
}

func matchDataFilter(f models.MatchDataFilter) bson.D {
	d := bson.D{}
	if f.MatchID != nil {
		d = append(d, bson.E{Key: "metadata.matchId", Value: *f.MatchID})
	}
	if f.PlatformID != nil {
		d = append(d, bson.E{Key: "info.platformId", Value: *f.PlatformID})
	}
	if f.QueueID != nil {
		d = append(d, bson.E{Key: "info.queueId", Value: *f.QueueID})
	}
	if f.GameVersion != nil {
		d = append(d, bson.E{Key: "info.gameVersion", Value: *f.GameVersion})
	}
	if ts := rangeDoc(f.StartTimeFrom, f.StartTimeTo); ts != nil {
		d = append(d, bson.E{Key: "info.gameStartTimestamp", Value: ts})
	}
	if dur := rangeDoc(f.DurationMin, f.DurationMax); dur != nil {
		d = append(d, bson.E{Key: "info.gameDuration", Value: dur})
	}
	return d
}

func statsFilter(f models.StatsFilter) bson.D {
	return matchDataFilter(models.MatchDataFilter{
		QueueID:       f.QueueID,
		PlatformID:    f.PlatformID,
		StartTimeFrom: f.StartTimeFrom,
		StartTimeTo:   f.StartTimeTo,
	})
}

// rangeDoc builds an inclusive {$gte, $lte} range, or nil when both bounds are absent.
func rangeDoc[N int | int64](lo, hi *N) bson.D {
	if lo == nil && hi == nil {
		return nil
	}
	d := bson.D{}
	if lo != nil {
		d = append(d, bson.E{Key: "$gte", Value: *lo})
	}
	if hi != nil {
		d = append(d, bson.E{Key: "$lte", Value: *hi})
	}
	return d
}

func matchIDSet(p models.MatchIDPatch) bson.D {
	d := bson.D{}
	if p.Tier != nil {
		d = append(d, bson.E{Key: "tier", Value: *p.Tier})
	}
	if p.Rank != nil {
		d = append(d, bson.E{Key: "rank", Value: *p.Rank})
	}
	return d
}

func playerSet(p models.PlayerPatch) bson.D {
	d := bson.D{}
	if p.Tier != nil {
		d = append(d, bson.E{Key: "tier", Value: *p.Tier})
	}
	if p.Rank != nil {
		d = append(d, bson.E{Key: "rank", Value: *p.Rank})
	}
	if p.LeaguePoints != nil {
		d = append(d, bson.E{Key: "leaguePoints", Value: *p.LeaguePoints})
	}
	if p.Wins != nil {
		d = append(d, bson.E{Key: "wins", Value: *p.Wins})
	}
	if p.Losses != nil {
		d = append(d, bson.E{Key: "losses", Value: *p.Losses})
	}
	if p.Veteran != nil {
		d = append(d, bson.E{Key: "veteran", Value: *p.Veteran})
	}
	if p.Inactive != nil {
		d = append(d, bson.E{Key: "inactive", Value: *p.Inactive})
	}
	if p.FreshBlood != nil {
		d = append(d, bson.E{Key: "freshBlood", Value: *p.FreshBlood})
	}
	return d
}

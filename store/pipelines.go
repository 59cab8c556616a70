package store

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"riot-stats-api/models"
)

// Role values that never count as a played position.
var invalidRoles = bson.A{"", "NONE", "INVALID", nil}

const participant = "$info.participants"

func stage(op string, v any) bson.D {
	return bson.D{{Key: op, Value: v}}
}

// withMatch starts a pipeline with $match when the filter is non-empty.
func withMatch(filter bson.D) mongo.Pipeline {
	if len(filter) == 0 {
		return mongo.Pipeline{}
	}
	return mongo.Pipeline{stage("$match", filter)}
}

// percentExpr is 100*wins/games; games must be positive.
func percentExpr(wins, games string) bson.M {
	return bson.M{"$multiply": bson.A{bson.M{"$divide": bson.A{wins, games}}, 100}}
}

func round2(expr any) bson.M {
	return bson.M{"$round": bson.A{expr, 2}}
}

func winCount(field string) bson.M {
	return bson.M{"$sum": bson.M{"$cond": bson.A{field, 1, 0}}}
}

func durationPipeline(f models.StatsFilter) mongo.Pipeline {
	return append(withMatch(statsFilter(f)),
		stage("$group", bson.D{
			{Key: "_id", Value: nil},
			{Key: "min", Value: bson.M{"$min": "$info.gameDuration"}},
			{Key: "max", Value: bson.M{"$max": "$info.gameDuration"}},
			{Key: "avg", Value: bson.M{"$avg": "$info.gameDuration"}},
		}),
		stage("$project", bson.D{
			{Key: "_id", Value: 0},
			{Key: "min", Value: bson.M{"$ifNull": bson.A{"$min", 0}}},
			{Key: "max", Value: bson.M{"$ifNull": bson.A{"$max", 0}}},
			{Key: "avg", Value: bson.M{"$ifNull": bson.A{"$avg", 0.0}}},
		}),
	)
}

func championFrequencyPipeline(f models.StatsFilter, limit int) mongo.Pipeline {
	return append(withMatch(statsFilter(f)),
		stage("$unwind", participant),
		stage("$group", bson.D{
			{Key: "_id", Value: participant + ".championId"},
			{Key: "championName", Value: bson.M{"$first": participant + ".championName"}},
			{Key: "count", Value: bson.M{"$sum": 1}},
		}),
		stage("$sort", bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}),
		stage("$limit", int64(limit)),
		stage("$project", bson.D{
			{Key: "_id", Value: 0},
			{Key: "championId", Value: "$_id"},
			{Key: "championName", Value: 1},
			{Key: "count", Value: 1},
		}),
	)
}

func winrateByChampionPipeline(f models.StatsFilter) mongo.Pipeline {
	return append(withMatch(statsFilter(f)),
		stage("$unwind", participant),
		stage("$group", bson.D{
			{Key: "_id", Value: participant + ".championId"},
			{Key: "championName", Value: bson.M{"$first": participant + ".championName"}},
			{Key: "games", Value: bson.M{"$sum": 1}},
			{Key: "wins", Value: winCount(participant + ".win")},
		}),
		stage("$project", bson.D{
			{Key: "_id", Value: 0},
			{Key: "championId", Value: "$_id"},
			{Key: "championName", Value: 1},
			{Key: "games", Value: 1},
			{Key: "wins", Value: 1},
			{Key: "winrate", Value: bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$games", 0}}, 0.0, percentExpr("$wins", "$games"),
			}}},
		}),
		stage("$sort", bson.D{{Key: "games", Value: -1}, {Key: "championId", Value: 1}}),
	)
}

// playerRolesPipeline rolls one player's participations up to
// (role, champion) combos, then roles, then the player. The favorite champion
// of a role is the first combo after sorting by games desc, wins desc,
// champion asc. The riot name is taken from the most recent match.
func playerRolesPipeline(puuid string) mongo.Pipeline {
	return mongo.Pipeline{
		stage("$match", bson.D{{Key: "info.participants.puuid", Value: puuid}}),
		stage("$unwind", participant),
		stage("$match", bson.D{{Key: "info.participants.puuid", Value: puuid}}),
		stage("$project", bson.D{
			{Key: "_id", Value: 0},
			{Key: "puuid", Value: participant + ".puuid"},
			{Key: "champion", Value: participant + ".championName"},
			{Key: "role", Value: participant + ".individualPosition"},
			{Key: "win", Value: participant + ".win"},
			{Key: "endedAt", Value: "$info.gameEndTimestamp"},
			{Key: "riotName", Value: bson.M{"$concat": bson.A{
				bson.M{"$ifNull": bson.A{participant + ".riotIdGameName", ""}},
				"#",
				bson.M{"$ifNull": bson.A{participant + ".riotIdTagline", ""}},
			}}},
		}),
		stage("$match", bson.D{
			{Key: "champion", Value: bson.D{{Key: "$type", Value: "string"}, {Key: "$ne", Value: ""}}},
			{Key: "role", Value: bson.M{"$nin": invalidRoles}},
			{Key: "riotName", Value: bson.M{"$regex": ".+#.+"}},
		}),
		stage("$group", bson.D{
			{Key: "_id", Value: bson.D{
				{Key: "puuid", Value: "$puuid"},
				{Key: "role", Value: "$role"},
				{Key: "champion", Value: "$champion"},
			}},
			{Key: "latest", Value: bson.M{"$max": bson.D{{Key: "at", Value: "$endedAt"}, {Key: "name", Value: "$riotName"}}}},
			{Key: "games", Value: bson.M{"$sum": 1}},
			{Key: "wins", Value: winCount("$win")},
		}),
		stage("$set", bson.D{{Key: "winrate", Value: percentExpr("$wins", "$games")}}),
		stage("$sort", bson.D{
			{Key: "_id.role", Value: 1},
			{Key: "games", Value: -1},
			{Key: "wins", Value: -1},
			{Key: "_id.champion", Value: 1},
		}),
		stage("$group", bson.D{
			{Key: "_id", Value: bson.D{{Key: "puuid", Value: "$_id.puuid"}, {Key: "role", Value: "$_id.role"}}},
			{Key: "latest", Value: bson.M{"$max": "$latest"}},
			{Key: "games", Value: bson.M{"$sum": "$games"}},
			{Key: "wins", Value: bson.M{"$sum": "$wins"}},
			{Key: "favorite", Value: bson.M{"$first": bson.D{
				{Key: "name", Value: "$_id.champion"},
				{Key: "games", Value: "$games"},
				{Key: "wins", Value: "$wins"},
				{Key: "winrate", Value: round2("$winrate")},
			}}},
		}),
		stage("$sort", bson.D{{Key: "games", Value: -1}, {Key: "_id.role", Value: 1}}),
		stage("$group", bson.D{
			{Key: "_id", Value: "$_id.puuid"},
			{Key: "latest", Value: bson.M{"$max": "$latest"}},
			{Key: "totalGames", Value: bson.M{"$sum": "$games"}},
			{Key: "totalWins", Value: bson.M{"$sum": "$wins"}},
			{Key: "roles", Value: bson.M{"$push": bson.D{
				{Key: "role", Value: "$_id.role"},
				{Key: "games", Value: "$games"},
				{Key: "wins", Value: "$wins"},
				{Key: "winrate", Value: round2(percentExpr("$wins", "$games"))},
				{Key: "favoriteChampion", Value: "$favorite"},
			}}},
		}),
		stage("$project", bson.D{
			{Key: "_id", Value: 0},
			{Key: "puuid", Value: "$_id"},
			{Key: "riotName", Value: "$latest.name"},
			{Key: "totalGames", Value: 1},
			{Key: "totalWins", Value: 1},
			{Key: "winrate", Value: round2(percentExpr("$totalWins", "$totalGames"))},
			{Key: "roles", Value: 1},
		}),
	}
}

// championStatsPipeline groups every valid-role pick of one champion by role.
func championStatsPipeline(champion string) mongo.Pipeline {
	return mongo.Pipeline{
		stage("$match", bson.D{{Key: "info.participants.championName", Value: champion}}),
		stage("$unwind", participant),
		stage("$project", bson.D{
			{Key: "_id", Value: 0},
			{Key: "champion", Value: participant + ".championName"},
			{Key: "role", Value: participant + ".individualPosition"},
			{Key: "win", Value: participant + ".win"},
		}),
		stage("$match", bson.D{
			{Key: "champion", Value: champion},
			{Key: "role", Value: bson.M{"$nin": invalidRoles}},
		}),
		stage("$group", bson.D{
			{Key: "_id", Value: bson.D{{Key: "champion", Value: "$champion"}, {Key: "role", Value: "$role"}}},
			{Key: "games", Value: bson.M{"$sum": 1}},
			{Key: "wins", Value: winCount("$win")},
		}),
		stage("$sort", bson.D{{Key: "games", Value: -1}, {Key: "_id.role", Value: 1}}),
		stage("$group", bson.D{
			{Key: "_id", Value: "$_id.champion"},
			{Key: "picks", Value: bson.M{"$sum": "$games"}},
			{Key: "roles", Value: bson.M{"$push": bson.D{
				{Key: "role", Value: "$_id.role"},
				{Key: "games", Value: "$games"},
				{Key: "wins", Value: "$wins"},
				{Key: "winrate", Value: round2(percentExpr("$wins", "$games"))},
			}}},
		}),
		stage("$sort", bson.D{{Key: "picks", Value: -1}}),
		stage("$project", bson.D{
			{Key: "_id", Value: 0},
			{Key: "champion", Value: "$_id"},
			{Key: "picks", Value: 1},
			{Key: "roles", Value: 1},
		}),
	}
}

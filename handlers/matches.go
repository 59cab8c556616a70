// handlers/matches.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"riot-stats-api/services"
)

// SetupMatchRoutes mounts the read-mostly /api/matches facade over both
// match collections, plus the synchronized delete.
func SetupMatchRoutes(api fiber.Router, matches *services.MatchService, guard fiber.Handler) {
	ids := &MatchIDHandler{matches: matches}
	data := &MatchDataHandler{matches: matches}
	r := api.Group("/matches")

	r.Get("/ids", ids.list)
	r.Get("/ids/stats/count", ids.count)
	r.Get("/ids/stats/distinct-tiers", ids.distinctTiers)
	r.Get("/ids/stats/distinct-ranks", ids.distinctRanks)
	r.Get("/ids/:matchId", ids.get)

	r.Get("/participants/:puuid", data.byParticipant)
	r.Get("/participants/:puuid/count", data.participantCount)

	r.Get("/stats/durations", data.durations)
	r.Get("/stats/champions", data.championFrequency)
	r.Get("/stats/winrate-by-champion", data.winrateByChampion)
	r.Get("/stats/players/:puuid", data.playerRoles)
	r.Get("/stats/champions/:champion", data.championStats)

	r.Get("/:matchId", data.get)
	r.Get("/:matchId/players", data.players)
	r.Delete("/:matchId", guard, func(c *fiber.Ctx) error {
		existed, err := matches.DeleteEverywhere(c.UserContext(), c.Params("matchId"))
		if err != nil {
			return writeError(c, err)
		}
		if !existed {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

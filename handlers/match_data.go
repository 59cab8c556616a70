// handlers/match_data.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"riot-stats-api/models"
	"riot-stats-api/services"
)

type MatchDataHandler struct {
	matches *services.MatchService
	archive *services.ArchiveService
}

func SetupMatchDataRoutes(api fiber.Router, matches *services.MatchService, archive *services.ArchiveService, guard fiber.Handler) {
	h := &MatchDataHandler{matches: matches, archive: archive}
	r := api.Group("/match-data")

	r.Get("/", h.list)
	r.Post("/", guard, h.create)
	r.Post("/bulk", guard, h.bulk)

	r.Get("/stats/durations", h.durations)
	r.Get("/stats/champions", h.championFrequency)
	r.Get("/stats/winrate-by-champion", h.winrateByChampion)

	r.Get("/participants/by-puuid/:puuid", h.byParticipant)

	r.Get("/:matchId", h.get)
	r.Delete("/:matchId", guard, h.delete)
	r.Get("/:matchId/players", h.players)
	r.Post("/:matchId/archive", guard, h.archiveMatch)
}

func (h *MatchDataHandler) list(c *fiber.Ctx) error {
	f, err := matchDataFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	req, err := pageRequest(c, models.DefaultMatchDataSort, models.MatchDataSortFields)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.matches.ListMatchData(c.UserContext(), f, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(page)
}

func (h *MatchDataHandler) get(c *fiber.Ctx) error {
	m, err := h.matches.GetMatchData(c.UserContext(), c.Params("matchId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(m)
}

func (h *MatchDataHandler) create(c *fiber.Ctx) error {
	var m models.MatchData
	if err := decodeJSON(c, &m); err != nil {
		return writeError(c, err)
	}
	if err := h.matches.CreateMatchData(c.UserContext(), &m); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

func (h *MatchDataHandler) bulk(c *fiber.Ctx) error {
	matches, err := bindJSONList[models.MatchData](c)
	if err != nil {
		return writeError(c, err)
	}
	res, err := h.matches.BulkUpsertMatchData(c.UserContext(), matches)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

func (h *MatchDataHandler) delete(c *fiber.Ctx) error {
	if err := h.matches.DeleteMatchData(c.UserContext(), c.Params("matchId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *MatchDataHandler) players(c *fiber.Ctx) error {
	players, err := h.matches.MatchPlayers(c.UserContext(), c.Params("matchId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(players)
}

func (h *MatchDataHandler) byParticipant(c *fiber.Ctx) error {
	req, err := pageRequest(c, models.DefaultMatchDataSort, models.MatchDataSortFields)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.matches.MatchesByParticipant(c.UserContext(), c.Params("puuid"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(page)
}

// participantCount answers with a bare number, unlike the {"count": n} stats routes.
func (h *MatchDataHandler) participantCount(c *fiber.Ctx) error {
	n, err := h.matches.CountByParticipant(c.UserContext(), c.Params("puuid"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(n)
}

func (h *MatchDataHandler) durations(c *fiber.Ctx) error {
	f, err := statsFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	stats, err := h.matches.DurationStats(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}

func (h *MatchDataHandler) championFrequency(c *fiber.Ctx) error {
	f, err := statsFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	limit, err := intOr(c, "limit", services.DefaultChampLimit)
	if err != nil {
		return writeError(c, err)
	}
	counts, err := h.matches.ChampionFrequency(c.UserContext(), f, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(counts)
}

func (h *MatchDataHandler) winrateByChampion(c *fiber.Ctx) error {
	f, err := statsFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	rates, err := h.matches.WinrateByChampion(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rates)
}

func (h *MatchDataHandler) playerRoles(c *fiber.Ctx) error {
	roles, err := h.matches.PlayerRoles(c.UserContext(), c.Params("puuid"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(roles)
}

func (h *MatchDataHandler) championStats(c *fiber.Ctx) error {
	stats, err := h.matches.ChampionStats(c.UserContext(), c.Params("champion"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}

func (h *MatchDataHandler) archiveMatch(c *fiber.Ctx) error {
	res, err := h.archive.Archive(c.UserContext(), c.Params("matchId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

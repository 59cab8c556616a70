// handlers/match_ids.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"riot-stats-api/models"
	"riot-stats-api/services"
)

type MatchIDHandler struct {
	matches *services.MatchService
}

// SetupMatchIDRoutes mounts /api/match-ids. guard runs before every mutating route.
func SetupMatchIDRoutes(api fiber.Router, matches *services.MatchService, guard fiber.Handler) {
	h := &MatchIDHandler{matches: matches}
	r := api.Group("/match-ids")

	r.Get("/", h.list)
	r.Post("/", guard, h.create)
	r.Post("/bulk", guard, h.bulk)
	r.Get("/stats/count", h.count)
	r.Get("/stats/distinct-tiers", h.distinctTiers)
	r.Get("/stats/distinct-ranks", h.distinctRanks)

	r.Get("/:matchId", h.get)
	r.Put("/:matchId", guard, h.replace)
	r.Patch("/:matchId", guard, h.patch)
	r.Delete("/:matchId", guard, h.delete)
	r.Get("/:matchId/data", h.data)
}

// routes shared with /api/matches/ids
func (h *MatchIDHandler) list(c *fiber.Ctx) error {
	f, err := matchIDFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	req, err := pageRequest(c, models.DefaultMatchIDSort, models.MatchIDSortFields)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.matches.ListMatchIDs(c.UserContext(), f, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(page)
}

func (h *MatchIDHandler) get(c *fiber.Ctx) error {
	m, err := h.matches.GetMatchID(c.UserContext(), c.Params("matchId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(m)
}

func (h *MatchIDHandler) count(c *fiber.Ctx) error {
	f, err := matchIDFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	n, err := h.matches.CountMatchIDs(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"count": n})
}

func (h *MatchIDHandler) distinctTiers(c *fiber.Ctx) error {
	tiers, err := h.matches.DistinctTiers(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	if tiers == nil {
		tiers = []models.Tier{}
	}
	return c.JSON(tiers)
}

func (h *MatchIDHandler) distinctRanks(c *fiber.Ctx) error {
	ranks, err := h.matches.DistinctRanks(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	if ranks == nil {
		ranks = []models.Rank{}
	}
	return c.JSON(ranks)
}

func (h *MatchIDHandler) create(c *fiber.Ctx) error {
	var m models.MatchID
	if err := bindJSON(c, &m); err != nil {
		return writeError(c, err)
	}
	if err := h.matches.CreateMatchID(c.UserContext(), &m); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

func (h *MatchIDHandler) bulk(c *fiber.Ctx) error {
	ids, err := bindJSONList[models.MatchID](c)
	if err != nil {
		return writeError(c, err)
	}
	res, err := h.matches.BulkUpsertMatchIDs(c.UserContext(), ids)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// replace takes the key from the path; a matchId in the body is ignored.
func (h *MatchIDHandler) replace(c *fiber.Ctx) error {
	id := c.Params("matchId")
	var m models.MatchID
	if err := decodeJSON(c, &m); err != nil {
		return writeError(c, err)
	}
	if err := h.matches.ReplaceMatchID(c.UserContext(), id, &m); err != nil {
		return writeError(c, err)
	}
	return c.JSON(m)
}

func (h *MatchIDHandler) patch(c *fiber.Ctx) error {
	var p models.MatchIDPatch
	if err := bindJSON(c, &p); err != nil {
		return writeError(c, err)
	}
	m, err := h.matches.PatchMatchID(c.UserContext(), c.Params("matchId"), p)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(m)
}

func (h *MatchIDHandler) delete(c *fiber.Ctx) error {
	if err := h.matches.DeleteMatchID(c.UserContext(), c.Params("matchId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *MatchIDHandler) data(c *fiber.Ctx) error {
	m, err := h.matches.GetMatchData(c.UserContext(), c.Params("matchId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(m)
}

// handlers/players.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"riot-stats-api/models"
	"riot-stats-api/services"
)

type PlayerHandler struct {
	players *services.PlayerService
}

func SetupPlayerRoutes(api fiber.Router, players *services.PlayerService, guard fiber.Handler) {
	h := &PlayerHandler{players: players}
	r := api.Group("/players")

	r.Get("/", h.search)
	r.Post("/", guard, h.create)
	r.Post("/bulk", guard, h.bulk)
	r.Get("/stats/count", h.count)
	r.Get("/stats/leaderboard", h.leaderboard)
	r.Get("/stats/winrate/:puuid", h.winrate)

	r.Get("/:puuid", h.get)
	r.Put("/:puuid", guard, h.replace)
	r.Patch("/:puuid", guard, h.patch)
	r.Delete("/:puuid", guard, h.delete)
	r.Get("/:puuid/matches", h.matches)
}

func (h *PlayerHandler) search(c *fiber.Ctx) error {
	f, err := playerFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	req, err := pageRequest(c, models.DefaultPlayerSort, models.PlayerSortFields)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.players.Search(c.UserContext(), f, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(page)
}

func (h *PlayerHandler) count(c *fiber.Ctx) error {
	f, err := playerFilter(c)
	if err != nil {
		return writeError(c, err)
	}
	n, err := h.players.Count(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"count": n})
}

func (h *PlayerHandler) leaderboard(c *fiber.Ctx) error {
	limit, err := intOr(c, "limit", services.DefaultBoardLimit)
	if err != nil {
		return writeError(c, err)
	}
	board, err := h.players.Leaderboard(c.UserContext(), c.Query("field"), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(board)
}

func (h *PlayerHandler) winrate(c *fiber.Ctx) error {
	w, err := h.players.Winrate(c.UserContext(), c.Params("puuid"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(w)
}

func (h *PlayerHandler) get(c *fiber.Ctx) error {
	p, err := h.players.Get(c.UserContext(), c.Params("puuid"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(p)
}

func (h *PlayerHandler) create(c *fiber.Ctx) error {
	var p models.Player
	if err := bindJSON(c, &p); err != nil {
		return writeError(c, err)
	}
	if err := h.players.Create(c.UserContext(), &p); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *PlayerHandler) bulk(c *fiber.Ctx) error {
	players, err := bindJSONList[models.Player](c)
	if err != nil {
		return writeError(c, err)
	}
	res, err := h.players.BulkUpsert(c.UserContext(), players)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

func (h *PlayerHandler) replace(c *fiber.Ctx) error {
	var p models.Player
	if err := decodeJSON(c, &p); err != nil {
		return writeError(c, err)
	}
	if err := h.players.Replace(c.UserContext(), c.Params("puuid"), &p); err != nil {
		return writeError(c, err)
	}
	return c.JSON(p)
}

func (h *PlayerHandler) patch(c *fiber.Ctx) error {
	var patch models.PlayerPatch
	if err := bindJSON(c, &patch); err != nil {
		return writeError(c, err)
	}
	p, err := h.players.Patch(c.UserContext(), c.Params("puuid"), patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(p)
}

func (h *PlayerHandler) delete(c *fiber.Ctx) error {
	if err := h.players.Delete(c.UserContext(), c.Params("puuid")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PlayerHandler) matches(c *fiber.Ctx) error {
	req, err := pageRequest(c, models.DefaultMatchDataSort, models.MatchDataSortFields)
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.players.Matches(c.UserContext(), c.Params("puuid"), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(page)
}

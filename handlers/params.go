package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"riot-stats-api/models"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindJSON decodes the request body into v and runs its validate tags.
func bindJSON(c *fiber.Ctx, v any) error {
	if err := decodeJSON(c, v); err != nil {
		return err
	}
	return validateStruct(v)
}

// decodeJSON is bindJSON without the tag validation, for bodies whose key
// comes from the path.
func decodeJSON(c *fiber.Ctx, v any) error {
	body := c.Body()
	if len(body) == 0 {
		return models.Invalidf("request body is required")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return models.Invalidf("invalid request body: %v", err)
	}
	return nil
}

// bindJSONList decodes a JSON array body. Elements are not tag-validated.
func bindJSONList[T any](c *fiber.Ctx) ([]T, error) {
	var out []T
	if err := json.Unmarshal(c.Body(), &out); err != nil {
		return nil, models.Invalidf("request body must be a JSON array: %v", err)
	}
	return out, nil
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return models.Invalidf("%v", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
	}
	return models.Invalidf("%s", strings.Join(msgs, "; "))
}

// pageRequest reads page, size and sort. Defaults: page 0, size 50, def sort.
func pageRequest(c *fiber.Ctx, def models.Sort, allowed map[string]bool) (models.PageRequest, error) {
	req := models.PageRequest{Page: 0, Size: models.DefaultPageSize}

	page, err := optInt(c, "page")
	if err != nil {
		return req, err
	}
	if page != nil {
		req.Page = *page
	}
	size, err := optInt(c, "size")
	if err != nil {
		return req, err
	}
	if size != nil {
		req.Size = *size
	}
	if req.Sort, err = models.ParseSort(c.Query("sort"), def, allowed); err != nil {
		return req, err
	}
	return req, req.Validate()
}

func optString(c *fiber.Ctx, name string) *string {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return nil
	}
	return &v
}

func optInt(c *fiber.Ctx, name string) (*int, error) {
	raw := optString(c, name)
	if raw == nil {
		return nil, nil
	}
	n, err := strconv.Atoi(*raw)
	if err != nil {
		return nil, models.Invalidf("%s must be an integer", name)
	}
	return &n, nil
}

func optInt64(c *fiber.Ctx, name string) (*int64, error) {
	raw := optString(c, name)
	if raw == nil {
		return nil, nil
	}
	n, err := strconv.ParseInt(*raw, 10, 64)
	if err != nil {
		return nil, models.Invalidf("%s must be an integer", name)
	}
	return &n, nil
}

func optBool(c *fiber.Ctx, name string) (*bool, error) {
	raw := optString(c, name)
	if raw == nil {
		return nil, nil
	}
	b, err := strconv.ParseBool(*raw)
	if err != nil {
		return nil, models.Invalidf("%s must be true or false", name)
	}
	return &b, nil
}

func optTier(c *fiber.Ctx) (*models.Tier, error) {
	raw := optString(c, "tier")
	if raw == nil {
		return nil, nil
	}
	t, err := models.ParseTier(*raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func optRank(c *fiber.Ctx) (*models.Rank, error) {
	raw := optString(c, "rank")
	if raw == nil {
		return nil, nil
	}
	r, err := models.ParseRank(*raw)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// intOr returns the integer query parameter or def when absent.
func intOr(c *fiber.Ctx, name string, def int) (int, error) {
	n, err := optInt(c, name)
	if err != nil || n == nil {
		return def, err
	}
	return *n, nil
}

func matchIDFilter(c *fiber.Ctx) (models.MatchIDFilter, error) {
	var f models.MatchIDFilter
	var err error
	if f.Tier, err = optTier(c); err != nil {
		return f, err
	}
	f.Rank, err = optRank(c)
	return f, err
}

func playerFilter(c *fiber.Ctx) (models.PlayerFilter, error) {
	var f models.PlayerFilter
	var err error
	if f.Tier, err = optTier(c); err != nil {
		return f, err
	}
	if f.Rank, err = optRank(c); err != nil {
		return f, err
	}
	if f.MinLP, err = optInt(c, "minLp"); err != nil {
		return f, err
	}
	if f.MaxLP, err = optInt(c, "maxLp"); err != nil {
		return f, err
	}
	if f.Veteran, err = optBool(c, "veteran"); err != nil {
		return f, err
	}
	if f.Inactive, err = optBool(c, "inactive"); err != nil {
		return f, err
	}
	f.FreshBlood, err = optBool(c, "freshBlood")
	return f, err
}

func statsFilter(c *fiber.Ctx) (models.StatsFilter, error) {
	var f models.StatsFilter
	var err error
	if f.QueueID, err = optInt(c, "queueId"); err != nil {
		return f, err
	}
	f.PlatformID = optString(c, "platformId")
	if f.StartTimeFrom, err = optInt64(c, "startTimeFrom"); err != nil {
		return f, err
	}
	f.StartTimeTo, err = optInt64(c, "startTimeTo")
	return f, err
}

func matchDataFilter(c *fiber.Ctx) (models.MatchDataFilter, error) {
	sf, err := statsFilter(c)
	if err != nil {
		return models.MatchDataFilter{}, err
	}
	f := models.MatchDataFilter{
		MatchID:       optString(c, "matchId"),
		PlatformID:    sf.PlatformID,
		QueueID:       sf.QueueID,
		GameVersion:   optString(c, "gameVersion"),
		StartTimeFrom: sf.StartTimeFrom,
		StartTimeTo:   sf.StartTimeTo,
	}
	if f.DurationMin, err = optInt(c, "durationMin"); err != nil {
		return f, err
	}
	f.DurationMax, err = optInt(c, "durationMax")
	return f, err
}

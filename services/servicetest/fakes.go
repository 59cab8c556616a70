// Package servicetest provides in-memory store fakes for service and handler tests.
package servicetest

import (
	"context"
	"sort"
	"sync"

	"riot-stats-api/models"
)

// Fail makes every call of a fake return this error when set.
type Fail struct {
	Err error
}

func (f *Fail) check() error { return f.Err }

func page[T any](all []T, req models.PageRequest) models.Page[T] {
	start := int(req.Skip())
	if start > len(all) {
		start = len(all)
	}
	end := start + req.Size
	if end > len(all) {
		end = len(all)
	}
	return models.NewPage(append([]T(nil), all[start:end]...), req, int64(len(all)))
}

// ---- match ids ----

type MatchIDs struct {
	Fail
	mu   sync.Mutex
	Docs map[string]models.MatchID
}

func NewMatchIDs(ids ...models.MatchID) *MatchIDs {
	s := &MatchIDs{Docs: map[string]models.MatchID{}}
	for _, m := range ids {
		s.Docs[m.MatchID] = m
	}
	return s
}

func matchIDMatches(m models.MatchID, f models.MatchIDFilter) bool {
	return (f.Tier == nil || m.Tier == *f.Tier) && (f.Rank == nil || m.Rank == *f.Rank)
}

func (s *MatchIDs) sorted(f models.MatchIDFilter) []models.MatchID {
	var out []models.MatchID
	for _, m := range s.Docs {
		if matchIDMatches(m, f) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchID < out[j].MatchID })
	return out
}

func (s *MatchIDs) Find(_ context.Context, id string) (*models.MatchID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	m, ok := s.Docs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &m, nil
}

func (s *MatchIDs) List(_ context.Context, f models.MatchIDFilter, req models.PageRequest) (models.Page[models.MatchID], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return models.Page[models.MatchID]{}, err
	}
	return page(s.sorted(f), req), nil
}

func (s *MatchIDs) Count(_ context.Context, f models.MatchIDFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return 0, err
	}
	return int64(len(s.sorted(f))), nil
}

func (s *MatchIDs) DistinctTiers(context.Context) ([]models.Tier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	seen := map[models.Tier]bool{}
	var out []models.Tier
	for _, m := range s.sorted(models.MatchIDFilter{}) {
		if m.Tier != "" && !seen[m.Tier] {
			seen[m.Tier] = true
			out = append(out, m.Tier)
		}
	}
	sort.Slice(out, func(i, j int) bool { return models.TierOrder[out[i]] < models.TierOrder[out[j]] })
	return out, nil
}

func (s *MatchIDs) DistinctRanks(context.Context) ([]models.Rank, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	seen := map[models.Rank]bool{}
	var out []models.Rank
	for _, m := range s.sorted(models.MatchIDFilter{}) {
		if m.Rank != "" && !seen[m.Rank] {
			seen[m.Rank] = true
			out = append(out, m.Rank)
		}
	}
	sort.Slice(out, func(i, j int) bool { return models.RankOrder[out[i]] < models.RankOrder[out[j]] })
	return out, nil
}

func (s *MatchIDs) Create(_ context.Context, m *models.MatchID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}
	if _, ok := s.Docs[m.MatchID]; ok {
		return models.ErrConflict
	}
	s.Docs[m.MatchID] = *m
	return nil
}

func (s *MatchIDs) Replace(_ context.Context, m *models.MatchID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}
	if _, ok := s.Docs[m.MatchID]; !ok {
		return models.ErrNotFound
	}
	s.Docs[m.MatchID] = *m
	return nil
}

func (s *MatchIDs) Patch(_ context.Context, id string, p models.MatchIDPatch) (*models.MatchID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	m, ok := s.Docs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if p.Tier != nil {
		m.Tier = *p.Tier
	}
	if p.Rank != nil {
		m.Rank = *p.Rank
	}
	s.Docs[id] = m
	return &m, nil
}

func (s *MatchIDs) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return false, err
	}
	_, ok := s.Docs[id]
	delete(s.Docs, id)
	return ok, nil
}

func (s *MatchIDs) BulkUpsert(_ context.Context, ids []models.MatchID) (models.BulkResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return models.BulkResult{}, err
	}
	var res models.BulkResult
	for _, m := range ids {
		if _, ok := s.Docs[m.MatchID]; ok {
			res.Updated++
		} else {
			res.Inserted++
		}
		s.Docs[m.MatchID] = m
	}
	res.Total = len(ids)
	return res, nil
}

// ---- players ----

type Players struct {
	Fail
	mu   sync.Mutex
	Docs map[string]models.Player

	LastLeaderboardField string
	LastLeaderboardLimit int
}

func NewPlayers(players ...models.Player) *Players {
	s := &Players{Docs: map[string]models.Player{}}
	for _, p := range players {
		s.Docs[p.Puuid] = p
	}
	return s
}

func playerMatches(p models.Player, f models.PlayerFilter) bool {
	switch {
	case f.Tier != nil && p.Tier != *f.Tier,
		f.Rank != nil && p.Rank != *f.Rank,
		f.MinLP != nil && p.LeaguePoints < *f.MinLP,
		f.MaxLP != nil && p.LeaguePoints > *f.MaxLP,
		f.Veteran != nil && p.Veteran != *f.Veteran,
		f.Inactive != nil && p.Inactive != *f.Inactive,
		f.FreshBlood != nil && p.FreshBlood != *f.FreshBlood:
		return false
	}
	return true
}

func (s *Players) filtered(f models.PlayerFilter) []models.Player {
	var out []models.Player
	for _, p := range s.Docs {
		if playerMatches(p, f) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LeaguePoints != out[j].LeaguePoints {
			return out[i].LeaguePoints > out[j].LeaguePoints
		}
		return out[i].Puuid < out[j].Puuid
	})
	return out
}

func (s *Players) Find(_ context.Context, puuid string) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	p, ok := s.Docs[puuid]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &p, nil
}

// FindMany returns matches in reverse puuid order so callers must reorder.
func (s *Players) FindMany(_ context.Context, puuids []string) ([]models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	var out []models.Player
	for _, puuid := range puuids {
		if p, ok := s.Docs[puuid]; ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Puuid > out[j].Puuid })
	return out, nil
}

func (s *Players) Search(_ context.Context, f models.PlayerFilter, req models.PageRequest) (models.Page[models.Player], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return models.Page[models.Player]{}, err
	}
	return page(s.filtered(f), req), nil
}

func (s *Players) Count(_ context.Context, f models.PlayerFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return 0, err
	}
	return int64(len(s.filtered(f))), nil
}

func (s *Players) Leaderboard(_ context.Context, field string, limit int) ([]models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	s.LastLeaderboardField, s.LastLeaderboardLimit = field, limit

	value := func(p models.Player) int {
		switch field {
		case "wins":
			return p.Wins
		case "losses":
			return p.Losses
		default:
			return p.LeaguePoints
		}
	}
	all := s.filtered(models.PlayerFilter{})
	sort.SliceStable(all, func(i, j int) bool { return value(all[i]) > value(all[j]) })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *Players) Create(_ context.Context, p *models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}
	if _, ok := s.Docs[p.Puuid]; ok {
		return models.ErrConflict
	}
	s.Docs[p.Puuid] = *p
	return nil
}

func (s *Players) Replace(_ context.Context, p *models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}
	if _, ok := s.Docs[p.Puuid]; !ok {
		return models.ErrNotFound
	}
	s.Docs[p.Puuid] = *p
	return nil
}

func (s *Players) Patch(_ context.Context, puuid string, patch models.PlayerPatch) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	p, ok := s.Docs[puuid]
	if !ok {
		return nil, models.ErrNotFound
	}
	if patch.Tier != nil {
		p.Tier = *patch.Tier
	}
	if patch.Rank != nil {
		p.Rank = *patch.Rank
	}
	if patch.LeaguePoints != nil {
		p.LeaguePoints = *patch.LeaguePoints
	}
	if patch.Wins != nil {
		p.Wins = *patch.Wins
	}
	if patch.Losses != nil {
		p.Losses = *patch.Losses
	}
	if patch.Veteran != nil {
		p.Veteran = *patch.Veteran
	}
	if patch.Inactive != nil {
		p.Inactive = *patch.Inactive
	}
	if patch.FreshBlood != nil {
		p.FreshBlood = *patch.FreshBlood
	}
	s.Docs[puuid] = p
	return &p, nil
}

func (s *Players) Delete(_ context.Context, puuid string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return false, err
	}
	_, ok := s.Docs[puuid]
	delete(s.Docs, puuid)
	return ok, nil
}

func (s *Players) BulkUpsert(_ context.Context, players []models.Player) (models.BulkResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return models.BulkResult{}, err
	}
	var res models.BulkResult
	for _, p := range players {
		if _, ok := s.Docs[p.Puuid]; ok {
			res.Updated++
		} else {
			res.Inserted++
		}
		s.Docs[p.Puuid] = p
	}
	res.Total = len(players)
	return res, nil
}

// ---- match data ----

// MatchData keeps documents in memory. Aggregates return the canned values
// set on the fake and record the arguments they were called with.
type MatchData struct {
	Fail
	mu   sync.Mutex
	Docs map[string]models.MatchData

	Durations      models.DurationStats
	Frequencies    []models.ChampionCount
	Winrates       []models.ChampionWinrate
	Roles          map[string]models.PlayerRoles
	Champions      map[string]models.ChampionStatistics
	LastLimit      int
	LastStatsQuery models.StatsFilter
}

func NewMatchData(matches ...models.MatchData) *MatchData {
	s := &MatchData{
		Docs:      map[string]models.MatchData{},
		Roles:     map[string]models.PlayerRoles{},
		Champions: map[string]models.ChampionStatistics{},
	}
	for _, m := range matches {
		s.Docs[m.Key()] = m
	}
	return s
}

func hasParticipant(m models.MatchData, puuid string) bool {
	if m.Info == nil {
		return false
	}
	for _, p := range m.Info.Participants {
		if p.Puuid == puuid {
			return true
		}
	}
	return false
}

func (s *MatchData) sorted(keep func(models.MatchData) bool) []models.MatchData {
	var out []models.MatchData
	for _, m := range s.Docs {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

func (s *MatchData) Find(_ context.Context, matchID string) (*models.MatchData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	m, ok := s.Docs[matchID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &m, nil
}

// List honours the matchId filter only.
func (s *MatchData) List(_ context.Context, f models.MatchDataFilter, req models.PageRequest) (models.Page[models.MatchData], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return models.Page[models.MatchData]{}, err
	}
	all := s.sorted(func(m models.MatchData) bool { return f.MatchID == nil || m.Key() == *f.MatchID })
	return page(all, req), nil
}

func (s *MatchData) ByParticipant(_ context.Context, puuid string, req models.PageRequest) (models.Page[models.MatchData], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return models.Page[models.MatchData]{}, err
	}
	return page(s.sorted(func(m models.MatchData) bool { return hasParticipant(m, puuid) }), req), nil
}

func (s *MatchData) CountByParticipant(_ context.Context, puuid string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return 0, err
	}
	return int64(len(s.sorted(func(m models.MatchData) bool { return hasParticipant(m, puuid) }))), nil
}

func (s *MatchData) Create(_ context.Context, m *models.MatchData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return err
	}
	if _, ok := s.Docs[m.Key()]; ok {
		return models.ErrConflict
	}
	s.Docs[m.Key()] = *m
	return nil
}

func (s *MatchData) Delete(_ context.Context, matchID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return false, err
	}
	_, ok := s.Docs[matchID]
	delete(s.Docs, matchID)
	return ok, nil
}

func (s *MatchData) BulkUpsert(_ context.Context, matches []models.MatchData) (models.BulkResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return models.BulkResult{}, err
	}
	var res models.BulkResult
	for _, m := range matches {
		if _, ok := s.Docs[m.Key()]; ok {
			res.Updated++
		} else {
			res.Inserted++
		}
		s.Docs[m.Key()] = m
	}
	res.Total = len(matches)
	return res, nil
}

func (s *MatchData) DurationStats(_ context.Context, f models.StatsFilter) (models.DurationStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastStatsQuery = f
	return s.Durations, s.check()
}

func (s *MatchData) ChampionFrequency(_ context.Context, f models.StatsFilter, limit int) ([]models.ChampionCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastStatsQuery, s.LastLimit = f, limit
	if err := s.check(); err != nil {
		return nil, err
	}
	out := s.Frequencies
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MatchData) WinrateByChampion(_ context.Context, f models.StatsFilter) ([]models.ChampionWinrate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastStatsQuery = f
	return s.Winrates, s.check()
}

func (s *MatchData) PlayerRoles(_ context.Context, puuid string) (*models.PlayerRoles, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	r, ok := s.Roles[puuid]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &r, nil
}

func (s *MatchData) ChampionStats(_ context.Context, champion string) (*models.ChampionStatistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(); err != nil {
		return nil, err
	}
	c, ok := s.Champions[champion]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &c, nil
}

// ---- object storage ----

type Objects struct {
	Fail
	mu      sync.Mutex
	BaseURL string
	Blobs   map[string][]byte
}

func NewObjects(baseURL string) *Objects {
	return &Objects{BaseURL: baseURL, Blobs: map[string][]byte{}}
}

func (o *Objects) Put(_ context.Context, key string, body []byte, _ string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.check(); err != nil {
		return "", err
	}
	o.Blobs[key] = append([]byte(nil), body...)
	return o.BaseURL + "/" + key, nil
}

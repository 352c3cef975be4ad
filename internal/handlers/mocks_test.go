package handlers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AlexandForests/lolvsfriends/internal/models"
	"github.com/AlexandForests/lolvsfriends/internal/riot"
)

type MockStatsStore struct {
	Rows        []models.ParticipantRow
	RowsErr     error
	Version     string
	VersionErr  error
	PingErr     error
	RowsFunc    func(ctx context.Context) ([]models.ParticipantRow, error)
	VersionFunc func(ctx context.Context) (string, error)

	mu       sync.Mutex
	RowCalls int
}

func (m *MockStatsStore) ParticipantRows(ctx context.Context) ([]models.ParticipantRow, error) {
	m.mu.Lock()
	m.RowCalls++
	m.mu.Unlock()
	if m.RowsFunc != nil {
		return m.RowsFunc(ctx)
	}
	return m.Rows, m.RowsErr
}

func (m *MockStatsStore) RowSetVersion(ctx context.Context) (string, error) {
	if m.VersionFunc != nil {
		return m.VersionFunc(ctx)
	}
	if m.Version == "" {
		return "0-0", m.VersionErr
	}
	return m.Version, m.VersionErr
}

func (m *MockStatsStore) Ping(ctx context.Context) error { return m.PingErr }

var errCacheMiss = errors.New("cache miss")

type MockViewCache struct {
	PingErr error

	mu      sync.Mutex
	entries map[string][]byte
}

func (m *MockViewCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.entries[key]
	if !ok {
		return nil, errCacheMiss
	}
	return body, nil
}

func (m *MockViewCache) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = make(map[string][]byte)
	}
	m.entries[key] = body
	return nil
}

func (m *MockViewCache) Ping(ctx context.Context) error { return m.PingErr }

type MockIngestService struct {
	ResolveSummonerFunc func(ctx context.Context, name, tag string) (*riot.Account, *riot.Summoner, error)
	IngestOneFunc       func(ctx context.Context, puuid string, start, count int) (int, error)
	IngestRosterFunc    func(ctx context.Context, entries []models.RosterEntry) (string, []models.RosterResult, error)
}

func (m *MockIngestService) ResolveSummoner(ctx context.Context, name, tag string) (*riot.Account, *riot.Summoner, error) {
	if m.ResolveSummonerFunc != nil {
		return m.ResolveSummonerFunc(ctx, name, tag)
	}
	return &riot.Account{Puuid: "puuid-" + name, GameName: name, TagLine: tag},
		&riot.Summoner{Puuid: "puuid-" + name, SummonerLevel: 100}, nil
}

func (m *MockIngestService) IngestOne(ctx context.Context, puuid string, start, count int) (int, error) {
	if m.IngestOneFunc != nil {
		return m.IngestOneFunc(ctx, puuid, start, count)
	}
	return 0, nil
}

func (m *MockIngestService) IngestRoster(ctx context.Context, entries []models.RosterEntry) (string, []models.RosterResult, error) {
	if m.IngestRosterFunc != nil {
		return m.IngestRosterFunc(ctx, entries)
	}
	results := make([]models.RosterResult, 0, len(entries))
	for _, e := range entries {
		results = append(results, models.RosterResult{Summoner: e.SummonerName, Status: "success"})
	}
	return "run-1", results, nil
}

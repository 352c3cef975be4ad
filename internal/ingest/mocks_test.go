package ingest

import (
	"context"
	"sync"

	"github.com/AlexandForests/lolvsfriends/internal/models"
	"github.com/AlexandForests/lolvsfriends/internal/riot"
)

// MockRiotAPI
type MockRiotAPI struct {
	AccountByRiotIDFunc func(ctx context.Context, name, tag string) (*riot.Account, error)
	SummonerByPUUIDFunc func(ctx context.Context, puuid string) (*riot.Summoner, error)
	MatchIDsByPUUIDFunc func(ctx context.Context, puuid string, start, count int) ([]string, error)
	MatchFunc           func(ctx context.Context, matchID string) (*riot.Match, error)
}

func (m *MockRiotAPI) AccountByRiotID(ctx context.Context, name, tag string) (*riot.Account, error) {
	if m.AccountByRiotIDFunc != nil {
		return m.AccountByRiotIDFunc(ctx, name, tag)
	}
	return &riot.Account{Puuid: "puuid-" + name, GameName: name, TagLine: tag}, nil
}

func (m *MockRiotAPI) SummonerByPUUID(ctx context.Context, puuid string) (*riot.Summoner, error) {
	if m.SummonerByPUUIDFunc != nil {
		return m.SummonerByPUUIDFunc(ctx, puuid)
	}
	return &riot.Summoner{Puuid: puuid, SummonerLevel: 100, ProfileIconID: 1}, nil
}

func (m *MockRiotAPI) MatchIDsByPUUID(ctx context.Context, puuid string, start, count int) ([]string, error) {
	if m.MatchIDsByPUUIDFunc != nil {
		return m.MatchIDsByPUUIDFunc(ctx, puuid, start, count)
	}
	return nil, nil
}

func (m *MockRiotAPI) Match(ctx context.Context, matchID string) (*riot.Match, error) {
	if m.MatchFunc != nil {
		return m.MatchFunc(ctx, matchID)
	}
	return &riot.Match{Metadata: riot.MatchMetadata{MatchID: matchID}}, nil
}

// MockMatchStore records upserts keyed the way the real store keys rows, so
// tests can assert idempotence directly.
type MockMatchStore struct {
	mu sync.Mutex

	UpsertSummonerFunc func(ctx context.Context, sum models.Summoner) error
	UpsertMatchFunc    func(ctx context.Context, match models.Match, participants []models.Participant) error

	Summoners    map[string]models.Summoner
	Matches      map[string]models.Match
	Participants map[string]models.Participant
}

func NewMockMatchStore() *MockMatchStore {
	return &MockMatchStore{
		Summoners:    make(map[string]models.Summoner),
		Matches:      make(map[string]models.Match),
		Participants: make(map[string]models.Participant),
	}
}

func (m *MockMatchStore) UpsertSummoner(ctx context.Context, sum models.Summoner) error {
	if m.UpsertSummonerFunc != nil {
		if err := m.UpsertSummonerFunc(ctx, sum); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Summoners[sum.Puuid] = sum
	return nil
}

func (m *MockMatchStore) UpsertMatch(ctx context.Context, match models.Match, participants []models.Participant) error {
	if m.UpsertMatchFunc != nil {
		if err := m.UpsertMatchFunc(ctx, match, participants); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Matches[match.MatchID] = match
	for _, p := range participants {
		m.Participants[p.MatchID+"/"+p.Puuid] = p
	}
	return nil
}

func (m *MockMatchStore) MatchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Matches)
}

func (m *MockMatchStore) ParticipantCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Participants)
}

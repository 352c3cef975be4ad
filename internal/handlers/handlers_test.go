package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/AlexandForests/lolvsfriends/internal/models"
	"github.com/AlexandForests/lolvsfriends/internal/riot"
)

func testHandler(st StatsStore, ing IngestService) *Handler {
	if st == nil {
		st = &MockStatsStore{}
	}
	if ing == nil {
		ing = &MockIngestService{}
	}
	return New(Config{Store: st, Ingester: ing, Logger: zap.NewNop()})
}

func serve(h *Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.Router(RouterConfig{AllowedOrigins: []string{"*"}}).ServeHTTP(rec, req)
	return rec
}

func TestPostSummoner(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		resolve    func(ctx context.Context, name, tag string) (*riot.Account, *riot.Summoner, error)
		wantStatus int
	}{
		{
			name:       "resolves and returns account with profile",
			body:       `{"summonerName":"Alice","tagLine":"NA1"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing summoner name",
			body:       `{"tagLine":"NA1"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{"summonerName":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown riot id",
			body: `{"summonerName":"Ghost"}`,
			resolve: func(ctx context.Context, name, tag string) (*riot.Account, *riot.Summoner, error) {
				return nil, nil, fmt.Errorf("%w: no such account", riot.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "upstream rate limited",
			body: `{"summonerName":"Alice"}`,
			resolve: func(ctx context.Context, name, tag string) (*riot.Account, *riot.Summoner, error) {
				return nil, nil, fmt.Errorf("%w: budget exhausted", riot.ErrRateLimited)
			},
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testHandler(nil, &MockIngestService{ResolveSummonerFunc: tt.resolve})
			rec := serve(h, http.MethodPost, "/api/summoner", tt.body)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				var resp SummonerResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatal(err)
				}
				if resp.Account == nil || resp.Account.Puuid != "puuid-Alice" {
					t.Errorf("account = %+v", resp.Account)
				}
				if resp.Summoner == nil || resp.Summoner.SummonerLevel != 100 {
					t.Errorf("summoner = %+v", resp.Summoner)
				}
			}
		})
	}
}

func TestGetMatches(t *testing.T) {
	var gotPuuid string
	var gotStart, gotCount int
	ing := &MockIngestService{
		IngestOneFunc: func(ctx context.Context, puuid string, start, count int) (int, error) {
			gotPuuid, gotStart, gotCount = puuid, start, count
			return 7, nil
		},
	}
	h := testHandler(nil, ing)

	rec := serve(h, http.MethodGet, "/api/matches/puuid-1?start=5&count=20", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if gotPuuid != "puuid-1" || gotStart != 5 || gotCount != 20 {
		t.Errorf("args = %s/%d/%d", gotPuuid, gotStart, gotCount)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["matchesProcessed"] != float64(7) {
		t.Errorf("matchesProcessed = %v, want 7", resp["matchesProcessed"])
	}
}

func TestGetMatchesDefaultCount(t *testing.T) {
	var gotStart, gotCount int
	ing := &MockIngestService{
		IngestOneFunc: func(ctx context.Context, puuid string, start, count int) (int, error) {
			gotStart, gotCount = start, count
			return 0, nil
		},
	}
	h := testHandler(nil, ing)

	rec := serve(h, http.MethodGet, "/api/matches/puuid-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotStart != 0 || gotCount != defaultHistoryPageSize {
		t.Errorf("start/count = %d/%d, want 0/%d", gotStart, gotCount, defaultHistoryPageSize)
	}
}

func TestGetMatchesBadParamsFallBack(t *testing.T) {
	var gotStart, gotCount int
	ing := &MockIngestService{
		IngestOneFunc: func(ctx context.Context, puuid string, start, count int) (int, error) {
			gotStart, gotCount = start, count
			return 0, nil
		},
	}
	h := testHandler(nil, ing)

	rec := serve(h, http.MethodGet, "/api/matches/puuid-1?start=-3&count=999", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotStart != 0 || gotCount != defaultHistoryPageSize {
		t.Errorf("start/count = %d/%d, want 0/%d (out-of-range ignored)", gotStart, gotCount, defaultHistoryPageSize)
	}
}

func TestUpdateAllMatches(t *testing.T) {
	h := testHandler(nil, nil)
	rec := serve(h, http.MethodPost, "/api/update-all-matches",
		`{"friendsList":[{"summonerName":"Alice"},{"summonerName":"Bob","tagLine":"EUW"}]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp models.UpdateAllMatchesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.RunID == "" {
		t.Error("missing runId")
	}
	if len(resp.Results) != 2 {
		t.Errorf("results = %d, want 2", len(resp.Results))
	}
}

func TestUpdateAllMatchesEmptyRoster(t *testing.T) {
	h := testHandler(nil, nil)
	rec := serve(h, http.MethodPost, "/api/update-all-matches", `{"friendsList":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateAllMatchesAuthFailure(t *testing.T) {
	ing := &MockIngestService{
		IngestRosterFunc: func(ctx context.Context, entries []models.RosterEntry) (string, []models.RosterResult, error) {
			partial := []models.RosterResult{{Summoner: "Alice", Status: "error", Error: "status 403"}}
			return "run-1", partial, fmt.Errorf("resolve account: %w", riot.ErrUnauthorized)
		},
	}
	h := testHandler(nil, ing)
	rec := serve(h, http.MethodPost, "/api/update-all-matches", `{"friendsList":[{"summonerName":"Alice"}]}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var resp models.UpdateAllMatchesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 1 {
		t.Errorf("partial results = %d, want 1", len(resp.Results))
	}
}

func TestGetLeaderboard(t *testing.T) {
	st := &MockStatsStore{Rows: []models.ParticipantRow{
		{
			Participant: models.Participant{
				MatchID: "NA1_1", Puuid: "p1", SummonerName: "Alice",
				ChampionName: "Ahri", Kills: 5, Deaths: 2, Assists: 10, Win: true,
			},
			TagLine: "NA1", GameDuration: 1500,
		},
	}}
	h := testHandler(st, nil)

	rec := serve(h, http.MethodGet, "/api/leaderboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var players []models.PlayerAggregate
	if err := json.Unmarshal(rec.Body.Bytes(), &players); err != nil {
		t.Fatal(err)
	}
	if len(players) != 1 {
		t.Fatalf("players = %d, want 1", len(players))
	}
	if players[0].WinRate != "100.0" || players[0].KDA != "7.50" {
		t.Errorf("winRate/kda = %s/%s", players[0].WinRate, players[0].KDA)
	}
}

func TestGetLeaderboardStoreFailure(t *testing.T) {
	st := &MockStatsStore{RowsErr: errors.New("connection refused")}
	h := testHandler(st, nil)

	rec := serve(h, http.MethodGet, "/api/leaderboard", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestGetLeaderboardCacheHit(t *testing.T) {
	st := &MockStatsStore{
		Rows: []models.ParticipantRow{
			{
				Participant: models.Participant{
					MatchID: "NA1_1", Puuid: "p1", SummonerName: "Alice",
					ChampionName: "Ahri", Kills: 5, Deaths: 2, Assists: 10, Win: true,
				},
				TagLine: "NA1", GameDuration: 1500,
			},
		},
		Version: "1-100",
	}
	h := New(Config{Store: st, Ingester: &MockIngestService{}, Cache: &MockViewCache{}, Logger: zap.NewNop()})

	first := serve(h, http.MethodGet, "/api/leaderboard", "")
	if first.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", first.Code, first.Body.String())
	}
	second := serve(h, http.MethodGet, "/api/leaderboard", "")
	if second.Code != http.StatusOK {
		t.Fatalf("status = %d", second.Code)
	}
	if st.RowCalls != 1 {
		t.Errorf("row queries = %d, want 1 (second request served from cache)", st.RowCalls)
	}
	if first.Body.String() != second.Body.String() {
		t.Errorf("cached body diverged: %s vs %s", first.Body.String(), second.Body.String())
	}
}

// A write can land between the two store reads that build a cached view. The
// version is read first, so the entry produced by the interleaved request sits
// under the old version and the next request recomputes from current rows.
func TestGetLeaderboardConcurrentWriteNeverCachedAsCurrent(t *testing.T) {
	game := func(matchID string) models.ParticipantRow {
		return models.ParticipantRow{
			Participant: models.Participant{
				MatchID: matchID, Puuid: "p1", SummonerName: "Alice",
				ChampionName: "Ahri", Kills: 5, Deaths: 2, Assists: 10, Win: true,
			},
			TagLine: "NA1", GameDuration: 1500,
		}
	}
	preRows := []models.ParticipantRow{game("NA1_1")}
	postRows := []models.ParticipantRow{game("NA1_1"), game("NA1_2")}

	var calls atomic.Int32
	st := &MockStatsStore{
		VersionFunc: func(ctx context.Context) (string, error) {
			if calls.Add(1) == 1 {
				return "1-100", nil
			}
			return "2-200", nil
		},
		RowsFunc: func(ctx context.Context) ([]models.ParticipantRow, error) {
			if calls.Add(1) == 1 {
				return preRows, nil
			}
			return postRows, nil
		},
	}
	h := New(Config{Store: st, Ingester: &MockIngestService{}, Cache: &MockViewCache{}, Logger: zap.NewNop()})

	if rec := serve(h, http.MethodGet, "/api/leaderboard", ""); rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec := serve(h, http.MethodGet, "/api/leaderboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var players []models.PlayerAggregate
	if err := json.Unmarshal(rec.Body.Bytes(), &players); err != nil {
		t.Fatal(err)
	}
	if len(players) != 1 || players[0].TotalGames != 2 {
		t.Errorf("players = %+v, want Alice with totalGames 2", players)
	}
}

func TestGetMemeLeaderboard(t *testing.T) {
	st := &MockStatsStore{Rows: []models.ParticipantRow{
		{
			Participant: models.Participant{
				MatchID: "NA1_1", Puuid: "p1", SummonerName: "Alice",
				ChampionName: "Ahri", Deaths: 5, Summoner1ID: 4, TotalDamageDealt: 8000,
			},
			TagLine: "NA1", GameDuration: 1500,
		},
		{
			Participant: models.Participant{
				MatchID: "NA1_1", Puuid: "p2", SummonerName: "Bob",
				ChampionName: "Garen", Kills: 2, Win: true,
			},
			TagLine: "NA1", GameDuration: 1500,
		},
	}}
	h := testHandler(st, nil)

	rec := serve(h, http.MethodGet, "/api/meme-leaderboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp models.MemeLeaderboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.PlayerStats) != 2 {
		t.Fatalf("playerStats = %d, want 2", len(resp.PlayerStats))
	}
	if len(resp.Leaderboards.FlashIntoWallKing) != 2 {
		t.Errorf("flashIntoWallKing = %d entries", len(resp.Leaderboards.FlashIntoWallKing))
	}
	if resp.Leaderboards.FlashIntoWallKing[0].SummonerName != "Alice" {
		t.Errorf("top flash = %s, want Alice", resp.Leaderboards.FlashIntoWallKing[0].SummonerName)
	}
	if resp.Leaderboards.MostCarried[0].SummonerName != "Bob" {
		t.Errorf("top carried = %s, want Bob", resp.Leaderboards.MostCarried[0].SummonerName)
	}
}

func TestHealth(t *testing.T) {
	h := testHandler(nil, nil)
	rec := serve(h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestReady(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
	}{
		{"all dependencies up", nil, http.StatusOK},
		{"postgres down", errors.New("connection refused"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testHandler(&MockStatsStore{PingErr: tt.pingErr}, nil)
			rec := serve(h, http.MethodGet, "/ready", "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

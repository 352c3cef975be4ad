// Package ingest pulls match history for tracked players through the riot
// client and writes it to the store. Per-entry and per-match failures are
// isolated: one bad item never aborts its siblings.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/AlexandForests/lolvsfriends/internal/models"
	"github.com/AlexandForests/lolvsfriends/internal/riot"
)

const defaultTagLine = "NA1"

// RiotAPI is the slice of the riot client the ingester uses.
type RiotAPI interface {
	AccountByRiotID(ctx context.Context, name, tag string) (*riot.Account, error)
	SummonerByPUUID(ctx context.Context, puuid string) (*riot.Summoner, error)
	MatchIDsByPUUID(ctx context.Context, puuid string, start, count int) ([]string, error)
	Match(ctx context.Context, matchID string) (*riot.Match, error)
}

// MatchStore is the slice of the store the ingester writes through.
type MatchStore interface {
	UpsertSummoner(ctx context.Context, sum models.Summoner) error
	UpsertMatch(ctx context.Context, match models.Match, participants []models.Participant) error
}

type Config struct {
	// FetchConcurrency bounds concurrent match detail fetches within a
	// batch. The riot client's shared limiter keeps the combined request
	// rate under the upstream limit regardless of this value.
	FetchConcurrency  int
	DefaultMatchCount int
}

type Ingester struct {
	riot   RiotAPI
	store  MatchStore
	logger *zap.SugaredLogger
	cfg    Config
}

func New(api RiotAPI, st MatchStore, logger *zap.Logger, cfg Config) *Ingester {
	if cfg.FetchConcurrency <= 0 {
		cfg.FetchConcurrency = 4
	}
	if cfg.DefaultMatchCount <= 0 {
		cfg.DefaultMatchCount = 10
	}
	return &Ingester{riot: api, store: st, logger: logger.Sugar(), cfg: cfg}
}

// IngestRoster resolves each roster entry and pulls its recent match history.
// Each entry gets its own result slot; a failed entry is recorded and the
// batch continues. The one exception is an upstream auth failure, which
// aborts the remaining entries since every later call would fail too, and is
// returned alongside the partial results.
func (ing *Ingester) IngestRoster(ctx context.Context, entries []models.RosterEntry) (string, []models.RosterResult, error) {
	runID := uuid.NewString()
	results := make([]models.RosterResult, 0, len(entries))

	for i, entry := range entries {
		if entry.SummonerName == "" {
			rosterEntriesFailed.Inc()
			results = append(results, models.RosterResult{
				Summoner: entry.SummonerName,
				Status:   "error",
				Error:    "missing summonerName",
			})
			continue
		}

		processed, err := ing.ingestEntry(ctx, runID, entry)
		if err != nil {
			rosterEntriesFailed.Inc()
			results = append(results, models.RosterResult{
				Summoner: entry.SummonerName,
				Status:   "error",
				Error:    err.Error(),
			})
			if errors.Is(err, riot.ErrUnauthorized) {
				ing.logger.Errorw("Upstream rejected credentials, aborting run",
					"runId", runID, "entriesSkipped", len(entries)-i-1)
				return runID, results, err
			}
			ing.logger.Warnw("Roster entry failed", "runId", runID, "summoner", entry.SummonerName, "error", err)
			continue
		}

		results = append(results, models.RosterResult{
			Summoner:         entry.SummonerName,
			MatchesProcessed: processed,
			Status:           "success",
		})
	}

	return runID, results, nil
}

// IngestOne pulls and stores one page of match history for a known puuid.
func (ing *Ingester) IngestOne(ctx context.Context, puuid string, start, count int) (int, error) {
	if count <= 0 {
		count = ing.cfg.DefaultMatchCount
	}
	ids, err := ing.riot.MatchIDsByPUUID(ctx, puuid, start, count)
	if err != nil {
		return 0, fmt.Errorf("list match ids for %s: %w", puuid, err)
	}
	return ing.storeMatches(ctx, uuid.NewString(), ids)
}

// ResolveSummoner resolves a riot id (name + tag, tag defaulting to NA1) to
// its account and profile and refreshes the stored summoner row.
func (ing *Ingester) ResolveSummoner(ctx context.Context, name, tag string) (*riot.Account, *riot.Summoner, error) {
	if tag == "" {
		tag = defaultTagLine
	}

	account, err := ing.riot.AccountByRiotID(ctx, name, tag)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve account %s#%s: %w", name, tag, err)
	}

	summoner, err := ing.riot.SummonerByPUUID(ctx, account.Puuid)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve profile %s: %w", account.Puuid, err)
	}

	if err := ing.store.UpsertSummoner(ctx, models.Summoner{
		Puuid:         account.Puuid,
		SummonerName:  account.GameName,
		TagLine:       account.TagLine,
		SummonerLevel: summoner.SummonerLevel,
		ProfileIconID: summoner.ProfileIconID,
	}); err != nil {
		return nil, nil, err
	}

	return account, summoner, nil
}

func (ing *Ingester) ingestEntry(ctx context.Context, runID string, entry models.RosterEntry) (int, error) {
	account, _, err := ing.ResolveSummoner(ctx, entry.SummonerName, entry.TagLine)
	if err != nil {
		return 0, err
	}

	ids, err := ing.riot.MatchIDsByPUUID(ctx, account.Puuid, 0, ing.cfg.DefaultMatchCount)
	if err != nil {
		return 0, fmt.Errorf("list match ids for %s: %w", account.Puuid, err)
	}

	return ing.storeMatches(ctx, runID, ids)
}

// storeMatches fetches and stores match details with bounded concurrency.
// A single match failing is counted, logged and skipped; it will be picked
// up on the next ingestion pass. Auth failures cancel the group.
func (ing *Ingester) storeMatches(ctx context.Context, runID string, ids []string) (int, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ing.cfg.FetchConcurrency)

	var processed atomic.Int64
	for _, id := range ids {
		id := id
		g.Go(func() error {
			begin := time.Now()

			match, err := ing.riot.Match(gctx, id)
			if err != nil {
				if errors.Is(err, riot.ErrUnauthorized) {
					return err
				}
				matchesFailed.Inc()
				ing.logger.Warnw("Failed to fetch match, skipping", "runId", runID, "matchId", id, "error", err)
				return nil
			}

			m, participants := Normalize(match)
			if err := ing.store.UpsertMatch(gctx, m, participants); err != nil {
				matchesFailed.Inc()
				ing.logger.Warnw("Failed to store match, skipping", "runId", runID, "matchId", id, "error", err)
				return nil
			}

			matchesIngested.Inc()
			matchIngestDuration.Observe(time.Since(begin).Seconds())
			processed.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(processed.Load()), err
	}
	return int(processed.Load()), nil
}

// Normalize splits one fetched match payload into a match row and one
// participant row per player. Raw payload slices are attached for audit only.
func Normalize(match *riot.Match) (models.Match, []models.Participant) {
	m := models.Match{
		MatchID:      match.Metadata.MatchID,
		GameCreation: time.UnixMilli(match.Info.GameCreation).UTC(),
		GameDuration: match.Info.GameDuration,
		GameMode:     match.Info.GameMode,
		GameType:     match.Info.GameType,
		GameVersion:  match.Info.GameVersion,
		MapID:        match.Info.MapID,
		QueueID:      match.Info.QueueID,
		RawData:      match.Raw,
	}

	rawParticipants := rawParticipantPayloads(match.Raw, len(match.Info.Participants))

	participants := make([]models.Participant, 0, len(match.Info.Participants))
	for i, p := range match.Info.Participants {
		row := models.Participant{
			MatchID:          m.MatchID,
			Puuid:            p.Puuid,
			SummonerName:     p.SummonerName,
			ChampionID:       p.ChampionID,
			ChampionName:     p.ChampionName,
			TeamID:           p.TeamID,
			Position:         p.TeamPosition,
			Kills:            p.Kills,
			Deaths:           p.Deaths,
			Assists:          p.Assists,
			GoldEarned:       p.GoldEarned,
			TotalDamageDealt: p.TotalDamageDealtToChampions,
			VisionScore:      p.VisionScore,
			WardsPlaced:      p.WardsPlaced,
			WardsKilled:      p.WardsKilled,
			CS:               p.TotalMinionsKilled + p.NeutralMinionsKilled,
			Win:              p.Win,
			FirstBloodKill:   p.FirstBloodKill,
			FirstBloodAssist: p.FirstBloodAssist,
			PentaKills:       p.PentaKills,
			TimeSpentDead:    p.TotalTimeSpentDead,
			Summoner1ID:      p.Summoner1ID,
			Summoner2ID:      p.Summoner2ID,
		}
		if rawParticipants != nil {
			row.RawData = rawParticipants[i]
		}
		participants = append(participants, row)
	}

	return m, participants
}

// rawParticipantPayloads re-extracts the verbatim participant objects from
// the raw match body so each row keeps its own upstream-owned payload.
func rawParticipantPayloads(raw []byte, want int) []json.RawMessage {
	if raw == nil {
		return nil
	}
	var envelope struct {
		Info struct {
			Participants []json.RawMessage `json:"participants"`
		} `json:"info"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil
	}
	if len(envelope.Info.Participants) != want {
		return nil
	}
	return envelope.Info.Participants
}

// Package store persists normalized match data in Postgres. Every write is
// an upsert keyed by the row's unique key, so re-ingesting a match is a
// no-op in effect.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/AlexandForests/lolvsfriends/internal/models"
)

// DB is the slice of pgxpool.Pool the store uses, declared here so tests can
// substitute a mock.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
}

// PersistenceError marks a failed store write. Callers treat it as
// per-item: the item is skipped this run and retried on the next pass.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

type Store struct {
	db     DB
	logger *zap.SugaredLogger
}

func New(db DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger.Sugar()}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// UpsertSummoner writes or refreshes a roster member, last write wins.
func (s *Store) UpsertSummoner(ctx context.Context, sum models.Summoner) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO summoners (puuid, summoner_name, tag_line, summoner_level, profile_icon_id, last_updated)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (puuid) DO UPDATE SET
			summoner_name = EXCLUDED.summoner_name,
			tag_line = EXCLUDED.tag_line,
			summoner_level = EXCLUDED.summoner_level,
			profile_icon_id = EXCLUDED.profile_icon_id,
			last_updated = now()
	`, sum.Puuid, sum.SummonerName, sum.TagLine, sum.SummonerLevel, sum.ProfileIconID)
	if err != nil {
		return &PersistenceError{Op: "upsert summoner", Key: sum.Puuid, Err: err}
	}
	return nil
}

// UpsertMatch writes the match row and all of its participant rows in one
// transaction. A failure on any row rolls the whole match back so the match
// row never references a partial participant set.
func (s *Store) UpsertMatch(ctx context.Context, match models.Match, participants []models.Participant) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return &PersistenceError{Op: "begin match write", Key: match.MatchID, Err: err}
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO matches (match_id, game_creation, game_duration, game_mode, game_type,
			game_version, map_id, queue_id, raw_data, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		ON CONFLICT (match_id) DO UPDATE SET
			game_creation = EXCLUDED.game_creation,
			game_duration = EXCLUDED.game_duration,
			game_mode = EXCLUDED.game_mode,
			game_type = EXCLUDED.game_type,
			game_version = EXCLUDED.game_version,
			map_id = EXCLUDED.map_id,
			queue_id = EXCLUDED.queue_id,
			raw_data = EXCLUDED.raw_data,
			last_updated = now()
	`, match.MatchID, match.GameCreation, match.GameDuration, match.GameMode, match.GameType,
		match.GameVersion, match.MapID, match.QueueID, match.RawData)
	if err != nil {
		return &PersistenceError{Op: "upsert match", Key: match.MatchID, Err: err}
	}

	for _, p := range participants {
		_, err = tx.Exec(ctx, `
			INSERT INTO match_participants (match_id, puuid, summoner_name, champion_id, champion_name,
				team_id, position, kills, deaths, assists, gold_earned, total_damage_dealt,
				vision_score, wards_placed, wards_killed, cs, win, first_blood_kill,
				first_blood_assist, penta_kills, time_spent_dead, summoner1_id, summoner2_id,
				raw_data, last_updated)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
				$17, $18, $19, $20, $21, $22, $23, $24, now())
			ON CONFLICT (match_id, puuid) DO UPDATE SET
				summoner_name = EXCLUDED.summoner_name,
				champion_id = EXCLUDED.champion_id,
				champion_name = EXCLUDED.champion_name,
				team_id = EXCLUDED.team_id,
				position = EXCLUDED.position,
				kills = EXCLUDED.kills,
				deaths = EXCLUDED.deaths,
				assists = EXCLUDED.assists,
				gold_earned = EXCLUDED.gold_earned,
				total_damage_dealt = EXCLUDED.total_damage_dealt,
				vision_score = EXCLUDED.vision_score,
				wards_placed = EXCLUDED.wards_placed,
				wards_killed = EXCLUDED.wards_killed,
				cs = EXCLUDED.cs,
				win = EXCLUDED.win,
				first_blood_kill = EXCLUDED.first_blood_kill,
				first_blood_assist = EXCLUDED.first_blood_assist,
				penta_kills = EXCLUDED.penta_kills,
				time_spent_dead = EXCLUDED.time_spent_dead,
				summoner1_id = EXCLUDED.summoner1_id,
				summoner2_id = EXCLUDED.summoner2_id,
				raw_data = EXCLUDED.raw_data,
				last_updated = now()
		`, p.MatchID, p.Puuid, p.SummonerName, p.ChampionID, p.ChampionName, p.TeamID, p.Position,
			p.Kills, p.Deaths, p.Assists, p.GoldEarned, p.TotalDamageDealt, p.VisionScore,
			p.WardsPlaced, p.WardsKilled, p.CS, p.Win, p.FirstBloodKill, p.FirstBloodAssist,
			p.PentaKills, p.TimeSpentDead, p.Summoner1ID, p.Summoner2ID, p.RawData)
		if err != nil {
			return &PersistenceError{Op: "upsert participant", Key: match.MatchID + "/" + p.Puuid, Err: err}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return &PersistenceError{Op: "commit match write", Key: match.MatchID, Err: err}
	}
	return nil
}

// ParticipantRows returns every stored participant row joined with its
// summoner identity and parent match context. Only roster members appear:
// participants without a summoners row are other players in tracked games.
func (s *Store) ParticipantRows(ctx context.Context) ([]models.ParticipantRow, error) {
	rows, err := s.db.Query(ctx, `
		SELECT p.match_id, p.puuid, p.summoner_name, p.champion_id, p.champion_name,
			p.team_id, p.position, p.kills, p.deaths, p.assists, p.gold_earned,
			p.total_damage_dealt, p.vision_score, p.wards_placed, p.wards_killed, p.cs,
			p.win, p.first_blood_kill, p.first_blood_assist, p.penta_kills,
			p.time_spent_dead, p.summoner1_id, p.summoner2_id,
			s.tag_line, m.game_duration, m.game_mode, m.queue_id
		FROM match_participants p
		JOIN summoners s ON s.puuid = p.puuid
		JOIN matches m ON m.match_id = p.match_id
	`)
	if err != nil {
		return nil, fmt.Errorf("query participant rows: %w", err)
	}
	defer rows.Close()

	var out []models.ParticipantRow
	for rows.Next() {
		var r models.ParticipantRow
		if err := rows.Scan(
			&r.MatchID, &r.Puuid, &r.SummonerName, &r.ChampionID, &r.ChampionName,
			&r.TeamID, &r.Position, &r.Kills, &r.Deaths, &r.Assists, &r.GoldEarned,
			&r.TotalDamageDealt, &r.VisionScore, &r.WardsPlaced, &r.WardsKilled, &r.CS,
			&r.Win, &r.FirstBloodKill, &r.FirstBloodAssist, &r.PentaKills,
			&r.TimeSpentDead, &r.Summoner1ID, &r.Summoner2ID,
			&r.TagLine, &r.GameDuration, &r.GameMode, &r.QueueID,
		); err != nil {
			return nil, fmt.Errorf("scan participant row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RowSetVersion identifies the current participant row set: it changes
// whenever rows are added or overwritten, so cached derived views keyed by
// it can never silently diverge from the stored rows.
func (s *Store) RowSetVersion(ctx context.Context) (string, error) {
	var count int64
	var latest int64
	err := s.db.QueryRow(ctx, `
		SELECT count(*), COALESCE(extract(epoch FROM max(last_updated))::bigint, 0)
		FROM match_participants
	`).Scan(&count, &latest)
	if err != nil {
		return "", fmt.Errorf("query row set version: %w", err)
	}
	return fmt.Sprintf("%d-%d", count, latest), nil
}

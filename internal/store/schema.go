package store

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS summoners (
		puuid           TEXT PRIMARY KEY,
		summoner_name   TEXT NOT NULL,
		tag_line        TEXT NOT NULL DEFAULT 'NA1',
		summoner_level  BIGINT NOT NULL DEFAULT 0,
		profile_icon_id INT NOT NULL DEFAULT 0,
		last_updated    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		match_id      TEXT PRIMARY KEY,
		game_creation TIMESTAMPTZ NOT NULL,
		game_duration INT NOT NULL DEFAULT 0,
		game_mode     TEXT NOT NULL DEFAULT '',
		game_type     TEXT NOT NULL DEFAULT '',
		game_version  TEXT NOT NULL DEFAULT '',
		map_id        INT NOT NULL DEFAULT 0,
		queue_id      INT NOT NULL DEFAULT 0,
		raw_data      JSONB,
		last_updated  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS match_participants (
		match_id           TEXT NOT NULL REFERENCES matches(match_id),
		puuid              TEXT NOT NULL,
		summoner_name      TEXT NOT NULL DEFAULT '',
		champion_id        INT NOT NULL DEFAULT 0,
		champion_name      TEXT NOT NULL DEFAULT '',
		team_id            INT NOT NULL DEFAULT 0,
		position           TEXT NOT NULL DEFAULT '',
		kills              INT NOT NULL DEFAULT 0,
		deaths             INT NOT NULL DEFAULT 0,
		assists            INT NOT NULL DEFAULT 0,
		gold_earned        INT NOT NULL DEFAULT 0,
		total_damage_dealt INT NOT NULL DEFAULT 0,
		vision_score       INT NOT NULL DEFAULT 0,
		wards_placed       INT NOT NULL DEFAULT 0,
		wards_killed       INT NOT NULL DEFAULT 0,
		cs                 INT NOT NULL DEFAULT 0,
		win                BOOLEAN NOT NULL DEFAULT false,
		first_blood_kill   BOOLEAN NOT NULL DEFAULT false,
		first_blood_assist BOOLEAN NOT NULL DEFAULT false,
		penta_kills        INT NOT NULL DEFAULT 0,
		time_spent_dead    INT NOT NULL DEFAULT 0,
		summoner1_id       INT NOT NULL DEFAULT 0,
		summoner2_id       INT NOT NULL DEFAULT 0,
		raw_data           JSONB,
		last_updated       TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (match_id, puuid)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_match_participants_puuid ON match_participants (puuid)`,
}

// Migrate creates the schema if it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	s.logger.Info("Database schema ready")
	return nil
}

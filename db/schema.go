package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Cross-references are plain TEXT ids on purpose: referential integrity is
// the orchestrator's responsibility, not the database's.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		first_name    TEXT NOT NULL,
		last_name     TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		role          TEXT NOT NULL,
		team_id       TEXT,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS sports (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL UNIQUE,
		players_per_side INT  NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS pitches (
		id             TEXT PRIMARY KEY,
		owner_id       TEXT NOT NULL,
		name           TEXT NOT NULL,
		sport_id       TEXT NOT NULL,
		base_price     BIGINT NOT NULL,
		opening_hour   INT NOT NULL,
		closing_hour   INT NOT NULL,
		allow_post_pay BOOLEAN NOT NULL DEFAULT FALSE,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS promotions (
		id               TEXT PRIMARY KEY,
		pitch_id         TEXT NOT NULL,
		discount_percent INT NOT NULL,
		weekdays         INT[] NOT NULL DEFAULT '{}',
		hour_from        INT NOT NULL,
		hour_to          INT NOT NULL,
		start_date       TIMESTAMPTZ NOT NULL,
		end_date         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS teams (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		sport_id   TEXT NOT NULL,
		manager_id TEXT NOT NULL,
		wins       INT NOT NULL DEFAULT 0,
		losses     INT NOT NULL DEFAULT 0,
		draws      INT NOT NULL DEFAULT 0,
		form       TEXT[] NOT NULL DEFAULT '{}',
		badge_key  TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS team_players (
		team_id   TEXT NOT NULL,
		player_id TEXT NOT NULL,
		PRIMARY KEY (team_id, player_id)
	)`,
	`CREATE TABLE IF NOT EXISTS player_profiles (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL UNIQUE,
		name         TEXT NOT NULL,
		goals        INT NOT NULL DEFAULT 0,
		assists      INT NOT NULL DEFAULT 0,
		yellow_cards INT NOT NULL DEFAULT 0,
		red_cards    INT NOT NULL DEFAULT 0,
		wins         INT NOT NULL DEFAULT 0,
		losses       INT NOT NULL DEFAULT 0,
		draws        INT NOT NULL DEFAULT 0,
		form         TEXT[] NOT NULL DEFAULT '{}',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id             TEXT PRIMARY KEY,
		pitch_id       TEXT NOT NULL,
		date           TIMESTAMPTZ NOT NULL,
		hour           INT NOT NULL,
		actor_id       TEXT NOT NULL,
		actor_role     TEXT NOT NULL,
		status         TEXT NOT NULL,
		total_amount   BIGINT NOT NULL,
		payment_status TEXT NOT NULL DEFAULT 'pending',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id                     TEXT PRIMARY KEY,
		date                   TIMESTAMPTZ NOT NULL,
		hour                   INT NOT NULL,
		pitch_id               TEXT NOT NULL,
		sport_id               TEXT NOT NULL,
		reservation_id         TEXT,
		status                 TEXT NOT NULL,
		manager_id             TEXT NOT NULL,
		team_a_id              TEXT,
		team_b_id              TEXT,
		score_a                INT NOT NULL DEFAULT 0,
		score_b                INT NOT NULL DEFAULT 0,
		mvp_player_id          TEXT,
		allow_external_players BOOLEAN NOT NULL DEFAULT FALSE,
		allow_challenges       BOOLEAN NOT NULL DEFAULT FALSE,
		finalized_at           TIMESTAMPTZ,
		created_at             TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS match_players (
		match_id  TEXT NOT NULL,
		side      TEXT NOT NULL,
		player_id TEXT NOT NULL,
		PRIMARY KEY (match_id, player_id)
	)`,
	`CREATE TABLE IF NOT EXISTS match_applications (
		match_id  TEXT NOT NULL,
		player_id TEXT NOT NULL,
		PRIMARY KEY (match_id, player_id)
	)`,
	`CREATE TABLE IF NOT EXISTS match_events (
		id          TEXT PRIMARY KEY,
		match_id    TEXT NOT NULL,
		type        TEXT NOT NULL,
		player_id   TEXT NOT NULL,
		player_name TEXT NOT NULL,
		team_id     TEXT NOT NULL,
		minute      INT NOT NULL CHECK (minute >= 0),
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS mvp_votes (
		id         TEXT PRIMARY KEY,
		match_id   TEXT NOT NULL,
		voter_id   TEXT NOT NULL,
		player_id  TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (match_id, voter_id)
	)`,
	`CREATE TABLE IF NOT EXISTS player_invitations (
		id         TEXT PRIMARY KEY,
		match_id   TEXT NOT NULL,
		team_id    TEXT NOT NULL,
		player_id  TEXT NOT NULL,
		inviter_id TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS team_challenges (
		id            TEXT PRIMARY KEY,
		match_id      TEXT NOT NULL,
		team_id       TEXT NOT NULL,
		challenger_id TEXT NOT NULL,
		status        TEXT NOT NULL DEFAULT 'pending',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id             TEXT PRIMARY KEY,
		payer_id       TEXT NOT NULL,
		reservation_id TEXT NOT NULL,
		type           TEXT NOT NULL,
		amount         BIGINT NOT NULL,
		status         TEXT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id           TEXT PRIMARY KEY,
		recipient_id TEXT NOT NULL,
		message      TEXT NOT NULL,
		link         TEXT NOT NULL DEFAULT '',
		type         TEXT NOT NULL DEFAULT 'generic',
		payload      JSONB,
		read         BOOLEAN NOT NULL DEFAULT FALSE,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_pitch_date ON matches (pitch_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_match_events_match ON match_events (match_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_reservation ON payments (reservation_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_recipient ON notifications (recipient_id, created_at)`,
}

// EnsureSchema creates any missing tables. Statements are idempotent so the
// call is safe on every startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}

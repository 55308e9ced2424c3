package scenario

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo persists scenarios in Postgres. Exchange history lives in an
// append-only log keyed (scenario_id, turn_index), so concurrent turns on
// the same scenario append rather than overwrite each other.
//
// Schema assumption:
//
//	CREATE TABLE IF NOT EXISTS negotiation_scenarios (
//	  id BIGSERIAL PRIMARY KEY,
//	  topic TEXT NOT NULL,
//	  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
//	CREATE TABLE IF NOT EXISTS negotiation_exchanges (
//	  scenario_id BIGINT NOT NULL REFERENCES negotiation_scenarios(id),
//	  turn_index INT NOT NULL,
//	  user_offer TEXT NOT NULL,
//	  bot_response TEXT NOT NULL,
//	  PRIMARY KEY (scenario_id, turn_index)
//	);
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, topic string) (*Scenario, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	sc := &Scenario{Topic: topic}
	query := `INSERT INTO negotiation_scenarios (topic) VALUES ($1) RETURNING id`
	if err := r.pool.QueryRow(ctx, query, topic).Scan(&sc.ID); err != nil {
		return nil, fmt.Errorf("failed to create scenario: %w", err)
	}
	return sc, nil
}

func (r *Repo) Get(ctx context.Context, id int64) (*Scenario, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	sc := &Scenario{ID: id}
	err := r.pool.QueryRow(ctx, `SELECT topic FROM negotiation_scenarios WHERE id = $1`, id).Scan(&sc.Topic)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load scenario: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT user_offer, bot_response
		FROM negotiation_exchanges
		WHERE scenario_id = $1
		ORDER BY turn_index ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchanges: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var offer, response string
		if err := rows.Scan(&offer, &response); err != nil {
			return nil, fmt.Errorf("failed to scan exchange row: %w", err)
		}
		sc.UserOffers = append(sc.UserOffers, offer)
		sc.BotResponses = append(sc.BotResponses, response)
	}
	return sc, rows.Err()
}

func (r *Repo) AppendExchange(ctx context.Context, id int64, offer, response string) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	// Next turn index computed inside the insert keeps the log append-only;
	// a collision on (scenario_id, turn_index) surfaces as a conflict rather
	// than a silent lost update.
	query := `
		INSERT INTO negotiation_exchanges (scenario_id, turn_index, user_offer, bot_response)
		SELECT $1, COALESCE(MAX(turn_index) + 1, 0), $2, $3
		FROM negotiation_exchanges
		WHERE scenario_id = $1
	`
	if _, err := r.pool.Exec(ctx, query, id, offer, response); err != nil {
		return fmt.Errorf("failed to append exchange: %w", err)
	}
	return nil
}

var _ Store = (*Repo)(nil)

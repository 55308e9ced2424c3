package convo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo persists continuations in Postgres.
//
// Schema assumption:
//
//	CREATE TABLE IF NOT EXISTS conversation_continuations (
//	  conversation_id TEXT PRIMARY KEY,
//	  skill TEXT NOT NULL,
//	  stage TEXT NOT NULL,
//	  context JSONB,
//	  created_at TIMESTAMPTZ NOT NULL
//	);
type Repo struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool, ttl: DefaultTTL}
}

func (r *Repo) Put(ctx context.Context, c *Continuation) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not initialized")
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	ctxJSON, err := json.Marshal(c.Context)
	if err != nil {
		return fmt.Errorf("failed to marshal continuation context: %w", err)
	}

	query := `
		INSERT INTO conversation_continuations (conversation_id, skill, stage, context, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (conversation_id)
		DO UPDATE SET
			skill = EXCLUDED.skill,
			stage = EXCLUDED.stage,
			context = EXCLUDED.context,
			created_at = EXCLUDED.created_at;
	`
	if _, err := r.pool.Exec(ctx, query, c.ConversationID, c.Skill, c.Stage, ctxJSON, c.CreatedAt); err != nil {
		return fmt.Errorf("failed to save continuation: %w", err)
	}
	return nil
}

func (r *Repo) Take(ctx context.Context, conversationID string) (*Continuation, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `
		DELETE FROM conversation_continuations
		WHERE conversation_id = $1
		RETURNING skill, stage, context, created_at
	`
	c := &Continuation{ConversationID: conversationID}
	var ctxJSON []byte
	err := r.pool.QueryRow(ctx, query, conversationID).Scan(&c.Skill, &c.Stage, &ctxJSON, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to take continuation: %w", err)
	}

	if time.Since(c.CreatedAt) > r.ttl {
		return nil, nil
	}
	if len(ctxJSON) > 0 {
		if err := json.Unmarshal(ctxJSON, &c.Context); err != nil {
			return nil, fmt.Errorf("failed to unmarshal continuation context: %w", err)
		}
	}
	return c, nil
}

var _ Store = (*Repo)(nil)

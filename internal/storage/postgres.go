package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yourname/shammah/internal"
)

// Schema creates the tables PostgresStorage expects. Profiles are stored as one
// JSONB document per user, matching the single-document ownership model.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	id    TEXT PRIMARY KEY,
	token TEXT UNIQUE NOT NULL,
	name  TEXT NOT NULL,
	role  TEXT NOT NULL DEFAULT 'user'
);
CREATE TABLE IF NOT EXISTS profiles (
	user_id    TEXT PRIMARY KEY,
	data       JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS resources (
	id            BIGSERIAL PRIMARY KEY,
	title         TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	resource_type TEXT NOT NULL,
	link          TEXT NOT NULL DEFAULT '',
	content       JSONB NOT NULL DEFAULT '{}'
);`

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(ctx context.Context, dsn string, logger internal.Logger) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	if _, err := pool.Exec(ctx, Schema); err != nil {
		logger.Errorf("failed to apply schema: %v", err)
		pool.Close()
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

func notFound(what string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("storage: %s %w", what, internal.ErrNotFound)
	}
	return err
}

// --- UserRepository ---
func (p *PostgresStorage) GetUserByToken(ctx context.Context, token string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, token, name, role FROM users WHERE token = $1`, token)
	var u internal.User
	var role string
	if err := row.Scan(&u.ID, &u.Token, &u.Name, &role); err != nil {
		p.logger.Warnf("user not found: %v", err)
		return nil, notFound("user", err)
	}
	u.Role = internal.Role(role)
	return &u, nil
}

// --- ProfileRepository ---
func (p *PostgresStorage) GetProfile(ctx context.Context, userID string) (*internal.UserProfile, error) {
	var raw []byte
	err := p.pool.QueryRow(ctx, `SELECT data FROM profiles WHERE user_id = $1`, userID).Scan(&raw)
	if err != nil {
		return nil, notFound("profile", err)
	}
	var profile internal.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		p.logger.Errorf("failed to decode profile %s: %v", userID, err)
		return nil, err
	}
	return &profile, nil
}

func (p *PostgresStorage) CreateProfile(ctx context.Context, profile *internal.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	tag, err := p.pool.Exec(ctx, `INSERT INTO profiles (user_id, data) VALUES ($1, $2) ON CONFLICT (user_id) DO NOTHING`, profile.ID, raw)
	if err != nil {
		p.logger.Errorf("failed to insert profile: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("storage: profile %w", internal.ErrConflict)
	}
	return nil
}

// UpdateProfile locks the row for the duration of fn so concurrent requests for
// the same user apply one after another.
func (p *PostgresStorage) UpdateProfile(ctx context.Context, userID string, fn func(*internal.UserProfile) error) (*internal.UserProfile, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var raw []byte
	if err := tx.QueryRow(ctx, `SELECT data FROM profiles WHERE user_id = $1 FOR UPDATE`, userID).Scan(&raw); err != nil {
		return nil, notFound("profile", err)
	}
	var profile internal.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, err
	}
	if err := fn(&profile); err != nil {
		return nil, err
	}
	raw, err = json.Marshal(&profile)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(ctx, `UPDATE profiles SET data = $2, updated_at = now() WHERE user_id = $1`, userID, raw); err != nil {
		p.logger.Errorf("failed to update profile: %v", err)
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &profile, nil
}

// --- ResourceRepository ---
func (p *PostgresStorage) AddResource(ctx context.Context, r *internal.Resource) (int64, error) {
	content, err := json.Marshal(r.Content)
	if err != nil {
		return 0, err
	}
	var id int64
	err = p.pool.QueryRow(ctx, `INSERT INTO resources (title, description, resource_type, link, content) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		r.Title, r.Description, r.ResourceType, r.Link, content).Scan(&id)
	if err != nil {
		p.logger.Errorf("failed to insert resource: %v", err)
		return 0, err
	}
	return id, nil
}

func (p *PostgresStorage) UpdateResource(ctx context.Context, r *internal.Resource) error {
	content, err := json.Marshal(r.Content)
	if err != nil {
		return err
	}
	tag, err := p.pool.Exec(ctx, `UPDATE resources SET title = $2, description = $3, resource_type = $4, link = $5, content = $6 WHERE id = $1`,
		r.ID, r.Title, r.Description, r.ResourceType, r.Link, content)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("storage: resource %w", internal.ErrNotFound)
	}
	return nil
}

func (p *PostgresStorage) DeleteResource(ctx context.Context, id int64) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("storage: resource %w", internal.ErrNotFound)
	}
	return nil
}

func scanResource(row pgx.Row) (*internal.Resource, error) {
	var r internal.Resource
	var content []byte
	if err := row.Scan(&r.ID, &r.Title, &r.Description, &r.ResourceType, &r.Link, &content); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(content, &r.Content); err != nil {
		return nil, err
	}
	return &r, nil
}

func (p *PostgresStorage) GetResource(ctx context.Context, id int64) (*internal.Resource, error) {
	r, err := scanResource(p.pool.QueryRow(ctx, `SELECT id, title, description, resource_type, link, content FROM resources WHERE id = $1`, id))
	if err != nil {
		return nil, notFound("resource", err)
	}
	return r, nil
}

func (p *PostgresStorage) ListResources(ctx context.Context) ([]internal.Resource, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, title, description, resource_type, link, content FROM resources ORDER BY id`)
	if err != nil {
		p.logger.Errorf("failed to query resources: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []internal.Resource
	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// --- Compile-time assertions ---
var _ ProfileRepository = (*PostgresStorage)(nil)
var _ ResourceRepository = (*PostgresStorage)(nil)
var _ UserRepository = (*PostgresStorage)(nil)

package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"agrisphere/models"
)

// Timestamps are stored as unix seconds.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'farmer',
	created_at    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS refresh_tokens (
	token_hash TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	expires_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS predictions (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id    TEXT NOT NULL,
	request    TEXT NOT NULL,
	yield      TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
`

// SQLiteStore is the embedded Store used when no Postgres URL is set.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens dsn with the pure Go driver. A single connection is
// kept so ":memory:" databases survive across calls.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStore, error) {
	dsn = strings.TrimPrefix(dsn, "sqlite://")
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteSchema)
	return err
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() {
	s.db.Close()
}

func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User, passwordHash string) error {
	now := time.Now().UTC().Truncate(time.Second)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Email, passwordHash, user.Role, now.Unix(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	user.CreatedAt = now
	return nil
}

func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, string, error) {
	var user models.User
	var passwordHash string
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, role, created_at, password_hash FROM users WHERE email = ?`, email,
	).Scan(&user.ID, &user.Email, &user.Role, &createdAt, &passwordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to query user: %w", err)
	}
	user.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &user, passwordHash, nil
}

func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, role, created_at FROM users WHERE id = ?`, id,
	).Scan(&user.ID, &user.Email, &user.Role, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	user.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &user, nil
}

func (s *SQLiteStore) SaveRefreshToken(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO refresh_tokens (token_hash, user_id, expires_at) VALUES (?, ?, ?)`,
		tokenHash, userID, expiresAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ConsumeRefreshToken(ctx context.Context, tokenHash string) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var userID string
	var expiresAt int64
	err = tx.QueryRowContext(ctx,
		`SELECT user_id, expires_at FROM refresh_tokens WHERE token_hash = ?`, tokenHash,
	).Scan(&userID, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to query refresh token: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE token_hash = ?`, tokenHash); err != nil {
		return "", fmt.Errorf("failed to delete refresh token: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}

	if time.Now().Unix() > expiresAt {
		return "", ErrNotFound
	}
	return userID, nil
}

func (s *SQLiteStore) DeleteRefreshToken(ctx context.Context, tokenHash string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE token_hash = ?`, tokenHash)
	if err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LogPrediction(ctx context.Context, record models.PredictionRecord) error {
	request, err := json.Marshal(record.Request)
	if err != nil {
		return fmt.Errorf("failed to marshal prediction request: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO predictions (user_id, request, yield, created_at) VALUES (?, ?, ?, ?)`,
		record.UserID, string(request), record.Yield, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to log prediction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) CountPredictions(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM predictions WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count predictions: %w", err)
	}
	return count, nil
}

package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agrisphere/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Store is the persistence the gateway needs: accounts, refresh tokens and
// an append-only log of predictions served.
type Store interface {
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close()

	CreateUser(ctx context.Context, user *models.User, passwordHash string) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, string, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	SaveRefreshToken(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error
	// ConsumeRefreshToken deletes the token and returns its owner. Expired
	// tokens are deleted too but reported as ErrNotFound.
	ConsumeRefreshToken(ctx context.Context, tokenHash string) (string, error)
	DeleteRefreshToken(ctx context.Context, tokenHash string) error

	LogPrediction(ctx context.Context, record models.PredictionRecord) error
	CountPredictions(ctx context.Context, userID string) (int, error)
}

// DB is a global variable to hold the store opened at start-up.
var DB Store

// Open picks the backend from the URL scheme: postgres:// or postgresql://
// use pgx, anything else is treated as a SQLite DSN.
func Open(ctx context.Context, databaseURL string) (Store, error) {
	if isPostgres(databaseURL) {
		return OpenPostgres(ctx, databaseURL)
	}
	return OpenSQLite(ctx, databaseURL)
}

// Connect opens the store, applies the schema and assigns DB.
func Connect(ctx context.Context, databaseURL string) error {
	store, err := Open(ctx, databaseURL)
	if err != nil {
		return err
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	DB = store
	return nil
}

// Close closes the global store.
func Close() {
	if DB != nil {
		DB.Close()
		DB = nil
	}
}

// Backend names the driver Open would use, for logs.
func Backend(databaseURL string) string {
	if isPostgres(databaseURL) {
		return "postgres"
	}
	return "sqlite"
}

func isPostgres(databaseURL string) bool {
	u := strings.ToLower(databaseURL)
	return strings.HasPrefix(u, "postgres://") || strings.HasPrefix(u, "postgresql://")
}

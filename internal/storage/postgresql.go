package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Postgres хранит документы в таблице kv_documents (key TEXT PRIMARY KEY, value JSONB).
// Схема создаётся миграциями из каталога migrations.
type Postgres struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его.
func New(storageConnectionString string) (*Postgres, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Postgres{DB: db}, nil
}

// NewWithDB оборачивает уже открытое подключение.
func NewWithDB(db *sql.DB) *Postgres {
	return &Postgres{DB: db}
}

// CheckDatabaseReady проверяет, что миграции применены.
func CheckDatabaseReady(ctx context.Context, s *Postgres) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'kv_documents'
    )`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("required table kv_documents query error: %w", err)
	}
	if !exists {
		return errors.New("required table kv_documents missing")
	}
	return nil
}

// Get реализует Store.
func (s *Postgres) Get(ctx context.Context, key string, dst any) (bool, error) {
	const op = "storage.Postgres.Get"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var raw []byte
	err := s.DB.QueryRowContext(ctx, `SELECT value FROM kv_documents WHERE key = $1`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set реализует Store. Запись выполняется через upsert.
func (s *Postgres) Set(ctx context.Context, key string, value any) error {
	const op = "storage.Postgres.Set"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	query := `INSERT INTO kv_documents (key, value, updated_at)
			  VALUES ($1, $2, NOW())
			  ON CONFLICT (key) DO UPDATE
			  SET value = EXCLUDED.value, updated_at = NOW()`
	if _, err := s.DB.ExecContext(ctx, query, key, string(raw)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete реализует Store.
func (s *Postgres) Delete(ctx context.Context, key string) error {
	const op = "storage.Postgres.Delete"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM kv_documents WHERE key = $1`, key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Ping проверяет подключение.
func (s *Postgres) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// Close закрывает подключение.
func (s *Postgres) Close() error {
	return s.DB.Close()
}

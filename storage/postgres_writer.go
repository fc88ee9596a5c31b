package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"foodfindr/models"
)

const ratedColumnCount = 8

// PostgresWriter loads rated restaurants into PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL and waits until it answers.
func NewPostgresWriter(ctx context.Context, dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PostgresWriter{db: db}, nil
}

// NewPostgresWriterFromDB wraps an already opened database handle.
func NewPostgresWriterFromDB(db *sql.DB) *PostgresWriter {
	return &PostgresWriter{db: db}
}

func ping(ctx context.Context, db *sql.DB) error {
	var err error
	for i := 0; i < 10; i++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	return fmt.Errorf("postgres: ping failed after retries: %w", err)
}

// EnsureDatabase creates the named database unless it already exists.
// db must be connected to another database, usually "postgres".
func EnsureDatabase(ctx context.Context, db *sql.DB, name string) (created bool, err error) {
	var exists bool
	if err := db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, name,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres: check database %q: %w", name, err)
	}
	if exists {
		return false, nil
	}

	if _, err := db.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(name)); err != nil {
		return false, fmt.Errorf("postgres: create database %q: %w", name, err)
	}
	return true, nil
}

// Replace drops table if it exists, recreates it and inserts rows, all in one transaction.
func (pw *PostgresWriter) Replace(ctx context.Context, table string, rows []*models.RatedRestaurant) error {
	ident := pq.QuoteIdentifier(table)

	tx, err := pw.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+ident); err != nil {
		return fmt.Errorf("postgres: drop %s: %w", ident, err)
	}
	if _, err := tx.ExecContext(ctx, createRatedTable(ident)); err != nil {
		return fmt.Errorf("postgres: create %s: %w", ident, err)
	}

	const batchSize = 50
	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := insertBatch(ctx, tx, ident, rows[i:end]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func createRatedTable(ident string) string {
	return `CREATE TABLE ` + ident + ` (
		id           SERIAL PRIMARY KEY,
		name         TEXT NOT NULL,
		address      TEXT NOT NULL DEFAULT '',
		latitude     DOUBLE PRECISION,
		longitude    DOUBLE PRECISION,
		link         TEXT NOT NULL DEFAULT '',
		price        TEXT NOT NULL DEFAULT '',
		health_color TEXT NOT NULL DEFAULT '',
		special_diet TEXT NOT NULL DEFAULT ''
	)`
}

func insertBatch(ctx context.Context, tx *sql.Tx, ident string, batch []*models.RatedRestaurant) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*ratedColumnCount)

	for idx, r := range batch {
		base := idx * ratedColumnCount
		placeholders := make([]string, ratedColumnCount)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			r.Name, r.Address, nullFloat(r.Latitude), nullFloat(r.Longitude),
			r.Link, r.Price, r.HealthColor, r.SpecialDiet)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES %s`,
		ident, strings.Join(RatedColumns, ", "), strings.Join(valueStrings, ","))

	if _, err := tx.ExecContext(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert into %s: %w", ident, err)
	}
	return nil
}

// Count returns the number of rows in table.
func (pw *PostgresWriter) Count(ctx context.Context, table string) (int, error) {
	var n int
	err := pw.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+pq.QuoteIdentifier(table)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("postgres: count %s: %w", table, err)
	}
	return n, nil
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

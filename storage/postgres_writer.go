package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"immoweb-scraper/config"
	"immoweb-scraper/models"
	"immoweb-scraper/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresWriter struct {
	pool *pgxpool.Pool
}

func NewPostgresWriter(cfg *config.Config) (*PostgresWriter, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBSSLMode,
	)

	var pool *pgxpool.Pool
	err := utils.Retry(3, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		p, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return fmt.Errorf("failed to create postgres pool: %w", err)
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return fmt.Errorf("failed to connect postgres: %w", err)
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &PostgresWriter{pool: pool}, nil
}

func (w *PostgresWriter) Close() {
	if w.pool != nil {
		w.pool.Close()
	}
}

func (w *PostgresWriter) EnsureSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	sql := `
	CREATE TABLE IF NOT EXISTS properties (
		id BIGSERIAL PRIMARY KEY,
		type_of_sale TEXT,
		postal_code TEXT,
		street TEXT,
		house_number TEXT,
		box TEXT,
		locality TEXT,
		price TEXT,
		url TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_properties_postal_code ON properties(postal_code);
	CREATE INDEX IF NOT EXISTS idx_properties_type_of_sale ON properties(type_of_sale);
	`

	if _, err := w.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	return nil
}

func (w *PostgresWriter) WriteBatch(records []models.PropertyRecord) error {
	if len(records) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	batch := &pgx.Batch{}
	insertSQL := `
	INSERT INTO properties (type_of_sale, postal_code, street, house_number, box, locality, price, url)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (url) DO NOTHING;
	`

	enqueued := 0
	for _, r := range records {
		url := strings.TrimSpace(r.Fields["url"])
		if url == "" {
			continue
		}

		batch.Queue(
			insertSQL,
			r.Fields["typeOfSale"],
			r.Fields["postal_code"],
			r.Fields["street"],
			r.Fields["number"],
			r.Fields["box"],
			r.Fields["locality"],
			r.Fields["price"],
			url,
		)
		enqueued++
	}

	if enqueued == 0 {
		return nil
	}

	results := w.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < enqueued; i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch insert failed at row %d: %w", i, err)
		}
	}

	return nil
}

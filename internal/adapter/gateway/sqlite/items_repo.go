package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"marketwatch/internal/domain/items"
)

const schema = `
CREATE TABLE IF NOT EXISTS items (
	id              INTEGER PRIMARY KEY,
	name            TEXT NOT NULL DEFAULT '',
	market_data     TEXT NOT NULL,
	classification  TEXT NOT NULL,
	last_update     TEXT,
	next_update     TEXT
);
CREATE INDEX IF NOT EXISTS items_classification_idx ON items (classification);
CREATE INDEX IF NOT EXISTS items_next_update_idx ON items (next_update);
`

// ItemsRepo persists item records in the embedded database. Timestamps are
// stored as RFC3339 UTC strings so the next_update index compares
// lexicographically in time order.
type ItemsRepo struct {
	db  *sql.DB
	log *slog.Logger
}

var _ items.Repo = (*ItemsRepo)(nil)

func NewItemsRepo(ctx context.Context, db *sql.DB, log *slog.Logger) (*ItemsRepo, error) {
	if log == nil {
		log = slog.Default()
	}
	r := &ItemsRepo{db: db, log: log}
	if err := r.ensure(ctx); err != nil {
		return nil, fmt.Errorf("items schema: %w", err)
	}
	return r, nil
}

func (r *ItemsRepo) ensure(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

// withHeal gives a failed operation one schema reinitialization before
// giving up on it.
func (r *ItemsRepo) withHeal(ctx context.Context, op func() error) error {
	err := op()
	if err == nil {
		return nil
	}
	if herr := r.ensure(ctx); herr != nil {
		return err
	}
	r.log.Warn("items repo reinitialized after error", "err", err)
	return op()
}

func encodeTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func decodeTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ItemsRepo) Upsert(ctx context.Context, rec items.ItemRecord) error {
	blob, err := json.Marshal(rec.MarketData)
	if err != nil {
		return fmt.Errorf("encode market data: %w", err)
	}
	return r.withHeal(ctx, func() error {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO items (id, name, market_data, classification, last_update, next_update)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name           = excluded.name,
				market_data    = excluded.market_data,
				classification = excluded.classification,
				last_update    = excluded.last_update,
				next_update    = excluded.next_update
		`, rec.ID, rec.Name, string(blob), string(rec.Classification),
			encodeTime(rec.LastUpdate), encodeTime(rec.NextUpdate))
		return err
	})
}

const selectCols = `id, name, market_data, classification, last_update, next_update`

func (r *ItemsRepo) Get(ctx context.Context, id int64) (*items.ItemRecord, error) {
	var rec *items.ItemRecord
	err := r.withHeal(ctx, func() error {
		row := r.db.QueryRowContext(ctx, `SELECT `+selectCols+` FROM items WHERE id = ?`, id)
		got, err := scanRecord(row)
		if err == sql.ErrNoRows {
			rec = nil
			return nil
		}
		if err != nil {
			return err
		}
		rec = got
		return nil
	})
	return rec, err
}

func (r *ItemsRepo) IDs(ctx context.Context) ([]int64, error) {
	var out []int64
	err := r.withHeal(ctx, func() error {
		rows, err := r.db.QueryContext(ctx, `SELECT id FROM items ORDER BY id`)
		if err != nil {
			return err
		}
		defer rows.Close()
		out = out[:0]
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				return err
			}
			out = append(out, id)
		}
		return rows.Err()
	})
	return out, err
}

func (r *ItemsRepo) All(ctx context.Context) ([]items.ItemRecord, error) {
	return r.query(ctx, `SELECT `+selectCols+` FROM items ORDER BY id`)
}

func (r *ItemsRepo) QueryByTier(ctx context.Context, tier items.Tier) ([]items.ItemRecord, error) {
	return r.query(ctx, `SELECT `+selectCols+` FROM items WHERE classification = ? ORDER BY id`, string(tier))
}

func (r *ItemsRepo) QueryDue(ctx context.Context, now time.Time) ([]items.ItemRecord, error) {
	return r.query(ctx,
		`SELECT `+selectCols+` FROM items WHERE next_update IS NULL OR next_update <= ? ORDER BY id`,
		now.UTC().Format(time.RFC3339))
}

func (r *ItemsRepo) CountByTier(ctx context.Context) (map[items.Tier]int, error) {
	out := make(map[items.Tier]int, 3)
	err := r.withHeal(ctx, func() error {
		rows, err := r.db.QueryContext(ctx, `SELECT classification, COUNT(*) FROM items GROUP BY classification`)
		if err != nil {
			return err
		}
		defer rows.Close()
		clear(out)
		for rows.Next() {
			var tier string
			var n int
			if err := rows.Scan(&tier, &n); err != nil {
				return err
			}
			out[items.Tier(tier)] = n
		}
		return rows.Err()
	})
	return out, err
}

func (r *ItemsRepo) query(ctx context.Context, q string, args ...any) ([]items.ItemRecord, error) {
	var out []items.ItemRecord
	err := r.withHeal(ctx, func() error {
		rows, err := r.db.QueryContext(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out = out[:0]
		for rows.Next() {
			rec, err := scanRecord(rows)
			if err != nil {
				return err
			}
			out = append(out, *rec)
		}
		return rows.Err()
	})
	return out, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*items.ItemRecord, error) {
	var rec items.ItemRecord
	var blob, tier string
	var last, next sql.NullString
	if err := s.Scan(&rec.ID, &rec.Name, &blob, &tier, &last, &next); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(blob), &rec.MarketData); err != nil {
		return nil, fmt.Errorf("decode market data for %d: %w", rec.ID, err)
	}
	rec.Classification = items.Tier(tier)
	var err error
	if rec.LastUpdate, err = decodeTime(last); err != nil {
		return nil, fmt.Errorf("last_update for %d: %w", rec.ID, err)
	}
	if rec.NextUpdate, err = decodeTime(next); err != nil {
		return nil, fmt.Errorf("next_update for %d: %w", rec.ID, err)
	}
	return &rec, nil
}

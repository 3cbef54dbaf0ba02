package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariefcatur/go-seller-dashboard/internal/catalog"
	"github.com/ariefcatur/go-seller-dashboard/internal/store"
)

// NewPostgresRepository expects the schema from postgres.Migrate.
func NewPostgresRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		Products: &pgTable[catalog.Product]{db: db, table: "products"},
		Videos:   &pgTable[catalog.VideoContent]{db: db, table: "video_content"},
		Orders:   &pgTable[catalog.Order]{db: db, table: "orders"},
		Docs:     &pgDocs{db: db},
	}
}

// pgTable keeps each entity as a jsonb row; seq preserves insertion order.
type pgTable[T store.Entity] struct {
	db    *pgxpool.Pool
	table string
}

func (t *pgTable[T]) List(ctx context.Context, page, limit int) ([]T, int, error) {
	var total int
	if err := t.db.QueryRow(ctx, `SELECT count(*) FROM `+t.table).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT data FROM ` + t.table + ` ORDER BY seq`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, max(page-1, 0)*limit)
	}
	rows, err := t.db.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, 0, err
		}
		var it T
		if err := json.Unmarshal(raw, &it); err != nil {
			return nil, 0, fmt.Errorf("decode %s row: %w", t.table, err)
		}
		out = append(out, it)
	}
	return out, total, rows.Err()
}

func (t *pgTable[T]) Get(ctx context.Context, id string) (T, error) {
	return t.get(ctx, t.db, id, "")
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (t *pgTable[T]) get(ctx context.Context, q querier, id, suffix string) (T, error) {
	var zero, it T
	var raw []byte
	err := q.QueryRow(ctx, `SELECT data FROM `+t.table+` WHERE id=$1`+suffix, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, err
	}
	if err := json.Unmarshal(raw, &it); err != nil {
		return zero, fmt.Errorf("decode %s row: %w", t.table, err)
	}
	return it, nil
}

func (t *pgTable[T]) Insert(ctx context.Context, item T) error {
	b, err := json.Marshal(item)
	if err != nil {
		return err
	}
	tag, err := t.db.Exec(ctx, `INSERT INTO `+t.table+`(id, data) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, item.Key(), b)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyExists
	}
	return nil
}

// Update locks the row so concurrent patches apply one after another.
func (t *pgTable[T]) Update(ctx context.Context, id string, fn func(T) (T, error)) (T, error) {
	var zero T
	tx, err := t.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return zero, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cur, err := t.get(ctx, tx, id, " FOR UPDATE")
	if err != nil {
		return zero, err
	}
	next, err := fn(cur)
	if err != nil {
		return zero, err
	}
	b, err := json.Marshal(next)
	if err != nil {
		return zero, err
	}
	if _, err := tx.Exec(ctx, `UPDATE `+t.table+` SET data=$2 WHERE id=$1`, id, b); err != nil {
		return zero, err
	}
	if err := tx.Commit(ctx); err != nil {
		return zero, err
	}
	return next, nil
}

func (t *pgTable[T]) Delete(ctx context.Context, id string) error {
	tag, err := t.db.Exec(ctx, `DELETE FROM `+t.table+` WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type pgDocs struct{ db *pgxpool.Pool }

func (d *pgDocs) Load(ctx context.Context, name string, out any) error {
	var raw []byte
	err := d.db.QueryRow(ctx, `SELECT data FROM documents WHERE name=$1`, name).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("document %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (d *pgDocs) Save(ctx context.Context, name string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = d.db.Exec(ctx, `
		INSERT INTO documents(name, data) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`, name, b)
	return err
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/comitanigiacomo/kanso-lifesync/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Connect opens a database for the SQL gateways. driver is one of "pgx",
// "postgres" (lib/pq) or "sqlite" (modernc).
func Connect(driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

type documentRow struct {
	ID        string `db:"id"`
	Body      string `db:"body"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

// SQLGateway stores one kind as JSON documents in its own table. It works
// unchanged on Postgres and SQLite.
type SQLGateway[D domain.Document, P any] struct {
	db    *sqlx.DB
	table string
	now   func() time.Time
}

func NewSQLGateway[D domain.Document, P any](db *sqlx.DB, table string) *SQLGateway[D, P] {
	return &SQLGateway[D, P]{db: db, table: pq.QuoteIdentifier(table), now: time.Now}
}

// Migrate creates the table when it does not exist yet.
func (r *SQLGateway[D, P]) Migrate(ctx context.Context) error {
	query := fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            id         TEXT PRIMARY KEY,
            body       TEXT NOT NULL,
            created_at TEXT NOT NULL,
            updated_at TEXT NOT NULL
        )`, r.table)

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", r.table, err)
	}
	return nil
}

func (r *SQLGateway[D, P]) stamp() string {
	return r.now().UTC().Format(timestampLayout)
}

func (r *SQLGateway[D, P]) scan(row documentRow) (D, error) {
	var doc D
	if err := json.Unmarshal([]byte(row.Body), &doc); err != nil {
		return doc, fmt.Errorf("failed to decode %s %s: %w", r.table, row.ID, err)
	}
	return doc, nil
}

func (r *SQLGateway[D, P]) List(ctx context.Context) ([]D, error) {
	query := r.db.Rebind(fmt.Sprintf(`SELECT * FROM %s ORDER BY created_at ASC, id ASC`, r.table))

	var rows []documentRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	docs := make([]D, 0, len(rows))
	for _, row := range rows {
		doc, err := r.scan(row)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (r *SQLGateway[D, P]) Get(ctx context.Context, id string) (D, error) {
	return r.get(ctx, r.db, id)
}

func (r *SQLGateway[D, P]) get(ctx context.Context, q sqlx.QueryerContext, id string) (D, error) {
	query := r.db.Rebind(fmt.Sprintf(`SELECT * FROM %s WHERE id = ?`, r.table))

	var row documentRow
	if err := sqlx.GetContext(ctx, q, &row, query, id); err != nil {
		var zero D
		if errors.Is(err, sql.ErrNoRows) {
			return zero, domain.ErrEntityNotFound
		}
		return zero, fmt.Errorf("database scan error: %w", err)
	}
	return r.scan(row)
}

func (r *SQLGateway[D, P]) Create(ctx context.Context, draft D) (D, error) {
	doc, err := assignID(draft)
	if err != nil {
		return doc, err
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return doc, fmt.Errorf("failed to encode document: %w", err)
	}

	query := r.db.Rebind(fmt.Sprintf(`
        INSERT INTO %s (id, body, created_at, updated_at)
        VALUES (?, ?, ?, ?)`, r.table))

	now := r.stamp()
	if _, err := r.db.ExecContext(ctx, query, doc.DocumentID(), string(body), now, now); err != nil {
		if isUniqueViolation(err) {
			return doc, fmt.Errorf("document %s: %w", doc.DocumentID(), domain.ErrConflict)
		}
		return doc, fmt.Errorf("failed to insert into %s: %w", r.table, err)
	}
	return doc, nil
}

func (r *SQLGateway[D, P]) Update(ctx context.Context, id string, patch P) (D, error) {
	var out D
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return out, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	doc, err := r.get(ctx, tx, id)
	if err != nil {
		return out, err
	}
	next, err := mergePatch(doc, patch)
	if err != nil {
		return out, err
	}
	if err := r.write(ctx, tx, next); err != nil {
		return out, err
	}
	if err := tx.Commit(); err != nil {
		return out, fmt.Errorf("failed to commit update: %w", err)
	}
	return next, nil
}

func (r *SQLGateway[D, P]) Put(ctx context.Context, doc D) (D, error) {
	if err := r.write(ctx, r.db, doc); err != nil {
		var zero D
		return zero, err
	}
	return doc, nil
}

func (r *SQLGateway[D, P]) write(ctx context.Context, e sqlx.ExecerContext, doc D) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	query := r.db.Rebind(fmt.Sprintf(`UPDATE %s SET body = ?, updated_at = ? WHERE id = ?`, r.table))

	res, err := e.ExecContext(ctx, query, string(body), r.stamp(), doc.DocumentID())
	if err != nil {
		return fmt.Errorf("update query failed: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEntityNotFound
	}
	return nil
}

func (r *SQLGateway[D, P]) Delete(ctx context.Context, id string) error {
	query := r.db.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.table))

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrEntityNotFound
	}
	return nil
}

// isUniqueViolation recognises a duplicate key from any supported driver.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

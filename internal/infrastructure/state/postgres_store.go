package state

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"ListingsMonitor/internal/domain"
	"ListingsMonitor/internal/ports"
)

// PostgresStore keeps the seen-listing set in a seen_listings table, for
// deployments where several hosts share one state.
//
// Schema:
//
//	CREATE TABLE seen_listings (
//	    listing_id    TEXT PRIMARY KEY,
//	    first_seen_at TIMESTAMPTZ NOT NULL
//	);
type PostgresStore struct {
	db      *sql.DB
	builder sq.StatementBuilderType
	logger  *slog.Logger
}

var _ ports.SeenStore = (*PostgresStore)(nil)

// Open connects to Postgres using the configured DSN.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// NewPostgresStore wires a sql.DB implementation.
func NewPostgresStore(db *sql.DB, log *slog.Logger) *PostgresStore {
	return &PostgresStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger:  log,
	}
}

// Load reads every known id. Any query failure yields an empty state; the
// run proceeds and re-reports at worst.
func (p *PostgresStore) Load(ctx context.Context) *domain.SeenState {
	query, args, err := p.builder.
		Select("listing_id").
		From("seen_listings").
		ToSql()
	if err != nil {
		p.logger.Error("build load query", "error", err)
		return domain.NewSeenState(nil)
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		p.logger.Error("load seen listings", "error", err)
		return domain.NewSeenState(nil)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			p.logger.Error("scan listing id", "error", err)
			return domain.NewSeenState(nil)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("iterate seen listings", "error", err)
		return domain.NewSeenState(nil)
	}

	return domain.NewSeenState(ids)
}

// Save upserts every known id; rows already present keep their original
// first_seen_at.
func (p *PostgresStore) Save(ctx context.Context, state *domain.SeenState) error {
	ids := state.IDs()
	if len(ids) == 0 {
		return nil
	}

	insert := p.builder.
		Insert("seen_listings").
		Columns("listing_id", "first_seen_at")

	now := time.Now()
	for _, id := range ids {
		insert = insert.Values(id, now)
	}

	query, args, err := insert.
		Suffix("ON CONFLICT (listing_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build save query: %w", err)
	}

	if _, err := p.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save seen listings: %w", err)
	}

	return nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"

	"tally/internal/election/models"
	"tally/internal/election/store/migrations"
	"tally/pkg/platform/sentinel"
)

// PostgresStore persists the snapshot as a single JSONB row. Winners are
// mirrored into a bigint[] column for ad-hoc reporting queries.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects through the pgx database/sql driver.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// NewPostgres applies the schema and returns a store over db.
func NewPostgres(ctx context.Context, db *sql.DB) (*PostgresStore, error) {
	if err := applyMigrations(ctx, db, migrations.Postgres, "postgres", dollarPlaceholder); err != nil {
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Save(ctx context.Context, snap models.Snapshot) error {
	data, err := encode(snap)
	if err != nil {
		return err
	}
	winners := make([]int64, 0, len(snap.WinnerIDs))
	for _, id := range snap.WinnerIDs {
		winners = append(winners, int64(id))
	}
	query := `
		INSERT INTO election_snapshots (id, revision, finalized, winner_ids, document, taken_at)
		VALUES (1, $1, $2, $3::text::bigint[], $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			revision = EXCLUDED.revision,
			finalized = EXCLUDED.finalized,
			winner_ids = EXCLUDED.winner_ids,
			document = EXCLUDED.document,
			taken_at = EXCLUDED.taken_at
	`
	_, err = s.db.ExecContext(ctx, query, int64(snap.Revision), snap.Finalized, pq.Array(winners), string(data), snap.TakenAt)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (models.Snapshot, error) {
	var (
		document string
		winners  pq.Int64Array
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT document::text, winner_ids::text FROM election_snapshots WHERE id = 1`,
	).Scan(&document, &winners)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Snapshot{}, sentinel.ErrNotFound
	}
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	snap, err := decode([]byte(document))
	if err != nil {
		return models.Snapshot{}, err
	}
	stored := make([]int64, 0, len(snap.WinnerIDs))
	for _, id := range snap.WinnerIDs {
		stored = append(stored, int64(id))
	}
	if !slices.Equal(stored, []int64(winners)) {
		return models.Snapshot{}, fmt.Errorf("%w: winner column disagrees with document", sentinel.ErrCorrupt)
	}
	return snap, nil
}

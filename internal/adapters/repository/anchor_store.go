// Package repository persists the verification shell's record of
// previously-validated zone keys, the way the teacher's PostgresRepository
// persists zones and records.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresAnchorStore implements ports.AnchorStore using PostgreSQL,
// remembering the last verdict reached for a given (zone, key tag,
// algorithm) triple so a resolver can skip re-verifying an unchanged
// delegation on every query.
type PostgresAnchorStore struct {
	db *sql.DB
}

// NewPostgresAnchorStore creates a PostgresAnchorStore backed by db.
func NewPostgresAnchorStore(db *sql.DB) *PostgresAnchorStore {
	return &PostgresAnchorStore{db: db}
}

// SaveVerifiedKey records the verdict reached for a zone's DNSKEY,
// overwriting any prior verdict for the same (zone, key_tag, algorithm).
func (r *PostgresAnchorStore) SaveVerifiedKey(ctx context.Context, zone string, keyTag uint16, algorithm uint8, verdict string) error {
	const query = `
		INSERT INTO verified_anchors (zone, key_tag, algorithm, verdict, updated_at)
		VALUES (LOWER($1), $2, $3, $4, now())
		ON CONFLICT (zone, key_tag, algorithm)
		DO UPDATE SET verdict = EXCLUDED.verdict, updated_at = now()`

	if _, err := r.db.ExecContext(ctx, query, zone, keyTag, algorithm, verdict); err != nil {
		return fmt.Errorf("save verified key: %w", err)
	}
	return nil
}

// LastVerdict returns the most recently recorded verdict for the given
// (zone, key tag, algorithm) triple, if any.
func (r *PostgresAnchorStore) LastVerdict(ctx context.Context, zone string, keyTag uint16, algorithm uint8) (string, bool, error) {
	const query = `
		SELECT verdict FROM verified_anchors
		WHERE zone = LOWER($1) AND key_tag = $2 AND algorithm = $3`

	var verdict string
	err := r.db.QueryRowContext(ctx, query, zone, keyTag, algorithm).Scan(&verdict)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("last verdict: %w", err)
	}
	return verdict, true, nil
}

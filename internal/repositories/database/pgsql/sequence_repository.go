package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/core/ports/gateways"
)

// PgxSequenceRepository hands out references from per-code counters in reference_sequences.
type PgxSequenceRepository struct {
	BaseRepository
}

func newPgxSequenceRepository(base BaseRepository) *PgxSequenceRepository {
	return &PgxSequenceRepository{BaseRepository: base}
}

var _ gateways.SequenceGenerator = (*PgxSequenceRepository)(nil)

func (r *PgxSequenceRepository) NextReference(ctx context.Context, code domain.SequenceCode) (string, error) {
	query := `
		INSERT INTO reference_sequences (code, last_value) VALUES ($1, 1)
		ON CONFLICT (code) DO UPDATE SET last_value = reference_sequences.last_value + 1
		RETURNING last_value;`
	var n int64
	if err := r.db(ctx).QueryRow(ctx, query, string(code)).Scan(&n); err != nil {
		return "", fmt.Errorf("failed to advance sequence %s: %w", code, err)
	}
	return code.FormatReference(n), nil
}

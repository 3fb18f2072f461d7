package gateways

import (
	"context"

	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
)

// SequenceGenerator hands out unique human-readable references.
type SequenceGenerator interface {
	NextReference(ctx context.Context, code domain.SequenceCode) (string, error)
}

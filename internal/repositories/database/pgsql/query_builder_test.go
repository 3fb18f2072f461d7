package pgsql

import (
	"testing"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhereClause_NumbersPlaceholdersInOrder(t *testing.T) {
	var w whereClause
	w.addIf("member_id = ?", "m-1")
	w.addIf("plan_id = ?", "")
	w.add("occurred_at >= ?", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	limit := w.next(21)

	assert.Equal(t, " WHERE member_id = $1 AND occurred_at >= $2", w.String())
	assert.Equal(t, "$3", limit)
	assert.Len(t, w.args, 3)
}

func TestWhereClause_EmptyHasNoWhere(t *testing.T) {
	var w whereClause
	assert.Equal(t, "", w.String())
}

func TestWhereClause_Keyset(t *testing.T) {
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	token := pagination.EncodeToken(at, "id-9")

	var w whereClause
	limit, err := w.keyset("created_at", "membership_id", 0, &token)

	require.NoError(t, err)
	assert.Equal(t, " WHERE (created_at, membership_id) < ($1, $2)", w.String())
	assert.Equal(t, "$3", limit)
	assert.Equal(t, []any{at, "id-9", 21}, w.args)
}

func TestWhereClause_KeysetRejectsBadToken(t *testing.T) {
	bad := "not-a-token!"
	var w whereClause

	_, err := w.keyset("created_at", "lead_id", 10, &bad)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestTrimPage(t *testing.T) {
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	key := func(s string) (time.Time, string) { return at, s }

	items, next := trimPage([]string{"c", "b", "a"}, 2, key)
	assert.Equal(t, []string{"c", "b"}, items)
	require.NotNil(t, next)
	cursor, err := pagination.DecodeToken(*next)
	require.NoError(t, err)
	assert.Equal(t, "b", cursor.ID)

	items, next = trimPage([]string{"c", "b"}, 2, key)
	assert.Len(t, items, 2)
	assert.Nil(t, next)
}

func TestLedgerWhere(t *testing.T) {
	since := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	asOf := time.Date(2026, 3, 15, 17, 30, 0, 0, time.UTC)

	w := ledgerWhere(domain.LedgerFilter{
		MemberID:      "m-1",
		Entitlement:   domain.EntitlementCredits,
		Kinds:         []domain.LedgerEntryKind{domain.LedgerUsed, domain.LedgerRefund},
		Since:         &since,
		IgnoreExpired: true,
		AsOf:          asOf,
	})

	assert.Equal(t,
		" WHERE member_id = $1 AND entitlement = $2 AND kind = ANY($3) AND occurred_at >= $4 AND (expires_on IS NULL OR expires_on >= $5)",
		w.String())
	assert.Equal(t, []string{"used", "refund"}, w.args[2])
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), w.args[4])
}

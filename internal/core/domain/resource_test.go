package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResource_ReserveOccupyRelease(t *testing.T) {
	desk := domain.Resource{ResourceID: "d-1", Kind: domain.ResourceDesk, State: domain.ResourceAvailable}
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, desk.Reserve("member-1", "m-1", start, start.AddDate(0, 0, 30)))
	assert.Equal(t, domain.ResourceReserved, desk.State)
	assert.True(t, desk.IsBound())
	assert.Nil(t, desk.DateEnd)

	err := desk.Reserve("member-2", "m-2", start, start)
	assert.ErrorIs(t, err, apperrors.ErrResourceUnavailable)

	desk.Occupy()
	assert.Equal(t, domain.ResourceOccupied, desk.State)

	desk.Release()
	assert.Equal(t, domain.ResourceAvailable, desk.State)
	assert.False(t, desk.IsBound())
	assert.Nil(t, desk.MemberID)
}

func TestResource_ExclusiveFloor(t *testing.T) {
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)
	shared := domain.Resource{ResourceID: "f-1", Kind: domain.ResourceFloor, State: domain.ResourceAvailable}
	exclusive := domain.Resource{ResourceID: "f-2", Kind: domain.ResourceFloor, State: domain.ResourceAvailable, IsExclusive: true}

	assert.ErrorIs(t, shared.Reserve("member-1", "m-1", start, end), apperrors.ErrResourceUnavailable)

	require.NoError(t, exclusive.Reserve("member-1", "m-1", start, end))
	assert.Equal(t, domain.ResourceRented, exclusive.State)
	assert.Equal(t, end, *exclusive.DateEnd)

	exclusive.Occupy()
	assert.Equal(t, domain.ResourceRented, exclusive.State)

	exclusive.Release()
	assert.Equal(t, domain.ResourceAvailable, exclusive.State)
	assert.Nil(t, exclusive.DateStart)
	assert.Nil(t, exclusive.DateEnd)
}

func TestValidResourceType(t *testing.T) {
	assert.True(t, domain.ValidResourceType(domain.ResourceDesk, domain.DeskHotDesk))
	assert.False(t, domain.ValidResourceType(domain.ResourceDesk, domain.BedBunk))
	assert.True(t, domain.ValidResourceType(domain.ResourceFloor, ""))
	assert.False(t, domain.ValidResourceType(domain.ResourceFloor, domain.DeskFlexible))
}

package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Sapuran-Berperan/bus-admin-backend/internal/model"
)

func TestTracker_NewerFetchSupersedesOlder(t *testing.T) {
	tracker := NewTracker()
	key := Key("buses", "admin-1")

	oldCtx, oldTicket := tracker.Begin(context.Background(), key)
	newCtx, newTicket := tracker.Begin(context.Background(), key)

	require.Error(t, oldCtx.Err(), "older fetch should be cancelled")
	assert.ErrorIs(t, context.Cause(oldCtx), ErrSuperseded)
	assert.True(t, IsSuperseded(oldCtx, nil))
	assert.NoError(t, newCtx.Err())

	assert.False(t, oldTicket.Done(), "superseded fetch must not apply its result")
	assert.Equal(t, 1, tracker.InFlight())
	assert.True(t, newTicket.Done())
	assert.Equal(t, 0, tracker.InFlight())
	assert.Error(t, newCtx.Err(), "context is released once done")
}

func TestTracker_OlderFinishingLateDoesNotEvictNewer(t *testing.T) {
	tracker := NewTracker()
	key := Key("users", "admin-1")

	_, first := tracker.Begin(context.Background(), key)
	_, second := tracker.Begin(context.Background(), key)
	_, third := tracker.Begin(context.Background(), key)

	assert.False(t, second.Done())
	assert.False(t, first.Done())
	assert.Equal(t, 1, tracker.InFlight())
	assert.True(t, third.Done())
}

func TestTracker_IndependentKeys(t *testing.T) {
	tracker := NewTracker()

	busCtx, busTicket := tracker.Begin(context.Background(), Key("buses", "admin-1"))
	userCtx, userTicket := tracker.Begin(context.Background(), Key("users", "admin-1"))
	otherCtx, otherTicket := tracker.Begin(context.Background(), Key("buses", "admin-2"))

	assert.NoError(t, busCtx.Err())
	assert.NoError(t, userCtx.Err())
	assert.NoError(t, otherCtx.Err())
	assert.Equal(t, 3, tracker.InFlight())

	assert.True(t, busTicket.Done())
	assert.True(t, userTicket.Done())
	assert.True(t, otherTicket.Done())
}

func TestTracker_EmptyKeyIsNeverSuperseded(t *testing.T) {
	tracker := NewTracker()
	assert.Equal(t, "", Key("buses", ""))

	firstCtx, first := tracker.Begin(context.Background(), "")
	_, second := tracker.Begin(context.Background(), "")

	assert.NoError(t, firstCtx.Err())
	assert.Equal(t, 0, tracker.InFlight())
	assert.True(t, first.Done())
	assert.True(t, second.Done())
}

func TestTracker_ParentCancellationIsNotSupersession(t *testing.T) {
	tracker := NewTracker()
	parent, cancel := context.WithCancel(context.Background())

	ctx, ticket := tracker.Begin(parent, Key("cities", "admin-1"))
	cancel()

	require.Error(t, ctx.Err())
	assert.False(t, IsSuperseded(ctx, ctx.Err()))
	assert.True(t, ticket.Done())
}

func TestFetchPage(t *testing.T) {
	logger := zap.NewNop()

	page, err := FetchPage(context.Background(), logger, 2, func(ctx context.Context) ([]model.User, int, error) {
		return []model.User{{Name: "Asha"}}, 4, nil
	})
	require.NoError(t, err)
	assert.False(t, page.NoData)
	assert.Equal(t, 4, page.TotalPages)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Items, 1)

	page, err = FetchPage(context.Background(), logger, 2, func(ctx context.Context) ([]model.User, int, error) {
		return nil, 0, errors.New("backend down")
	})
	require.NoError(t, err)
	assert.True(t, page.NoData)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)

	cities, err := FetchPage(context.Background(), logger, 1, func(ctx context.Context) ([]model.City, int, error) {
		return nil, 0, nil
	})
	require.NoError(t, err)
	assert.False(t, cities.NoData)
	assert.NotNil(t, cities.Items)
	assert.Empty(t, cities.Items)
}

func TestFetchPage_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancelCause(context.Background())
	cancel(ErrSuperseded)

	page, err := FetchPage(ctx, nil, 1, func(ctx context.Context) ([]model.City, int, error) {
		return nil, 0, ctx.Err()
	})
	assert.ErrorIs(t, err, ErrSuperseded)
	assert.True(t, page.NoData)
}

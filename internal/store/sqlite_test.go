package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtrack-dev/subtrack/internal/model"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	st, err := OpenSQLite(filepath.Join(t.TempDir(), "subtrack.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func spotifyInput() model.SubscriptionInput {
	return model.SubscriptionInput{
		Merchant:     "Spotify",
		Amount:       dec("9.99"),
		Period:       model.PeriodMonthly,
		NextBillDate: "2025-11-14",
		Notes:        "imported",
	}
}

func TestCreateAndGet(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	created, err := st.Create(ctx, "alex", spotifyInput())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "alex", created.OwnerID)
	assert.Equal(t, model.StatusActive, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := st.Get(ctx, "alex", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spotify", got.Merchant)
	assert.True(t, got.Amount.Equal(dec("9.99")))
	assert.Equal(t, model.PeriodMonthly, got.Period)
	assert.Equal(t, "2025-11-14", got.NextBillDate)
	assert.Equal(t, "imported", got.Notes)
}

func TestGet_NotFound(t *testing.T) {
	st := openTestStore(t)
	_, err := st.Get(context.Background(), "alex", "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_OrderedByMerchant(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for _, merchant := range []string{"netflix", "Spotify", "Adobe"} {
		in := spotifyInput()
		in.Merchant = merchant
		_, err := st.Create(ctx, "alex", in)
		require.NoError(t, err)
	}

	subs, err := st.List(ctx, "alex")
	require.NoError(t, err)
	require.Len(t, subs, 3)
	assert.Equal(t, "Adobe", subs[0].Merchant)
	assert.Equal(t, "netflix", subs[1].Merchant)
	assert.Equal(t, "Spotify", subs[2].Merchant)
}

func TestOwnerPartitioning(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	mine, err := st.Create(ctx, "alex", spotifyInput())
	require.NoError(t, err)
	_, err = st.Create(ctx, "blair", spotifyInput())
	require.NoError(t, err)

	subs, err := st.List(ctx, "alex")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, mine.ID, subs[0].ID)

	// Another owner cannot see, update, or delete the row.
	_, err = st.Get(ctx, "blair", mine.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	err = st.Delete(ctx, "blair", mine.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_Partial(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	created, err := st.Create(ctx, "alex", spotifyInput())
	require.NoError(t, err)

	amount := dec("11.99")
	updated, err := st.Update(ctx, "alex", created.ID, UpdatePatch{Amount: &amount})
	require.NoError(t, err)

	assert.True(t, updated.Amount.Equal(dec("11.99")))
	// Untouched fields survive.
	assert.Equal(t, "Spotify", updated.Merchant)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestUpdate_NotFound(t *testing.T) {
	st := openTestStore(t)
	notes := "x"
	_, err := st.Update(context.Background(), "alex", "no-such-id", UpdatePatch{Notes: &notes})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	created, err := st.Create(ctx, "alex", spotifyInput())
	require.NoError(t, err)

	require.NoError(t, st.Delete(ctx, "alex", created.ID))
	_, err = st.Get(ctx, "alex", created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, st.Delete(ctx, "alex", created.ID), ErrNotFound)
}

func TestSetStatus(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	created, err := st.Create(ctx, "alex", spotifyInput())
	require.NoError(t, err)

	canceled, err := st.SetStatus(ctx, "alex", created.ID, model.StatusCanceled)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCanceled, canceled.Status)

	got, err := st.Get(ctx, "alex", created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCanceled, got.Status)
}

func TestReopenPreservesData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subtrack.db")
	ctx := context.Background()

	st, err := OpenSQLite(path)
	require.NoError(t, err)
	created, err := st.Create(ctx, "alex", spotifyInput())
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st2, err := OpenSQLite(path)
	require.NoError(t, err)
	defer st2.Close()

	got, err := st2.Get(ctx, "alex", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spotify", got.Merchant)
}

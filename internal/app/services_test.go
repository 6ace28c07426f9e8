package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/feeportal/internal/config"
	"github.com/zjrosen/feeportal/internal/submit"
)

const fixtureYAML = `payments:
  - id: a
    date: 2024-02-01
    amount: "10.50"
    description: Locker Rental
    status: completed
    method: Bank Transfer
    transactionId: TXN-T-1
`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payments.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixtureYAML), 0o644))
	return path
}

func TestNewBackend_DefaultsToSeed(t *testing.T) {
	b, err := NewBackend(t.Context(), config.Defaults())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, b.Close()) })

	records, err := b.Services.Payments.Records(t.Context())
	require.NoError(t, err)
	require.Len(t, records, 5)
	require.Nil(t, b.Watcher)
	require.Empty(t, b.Options())
	require.Equal(t, submit.DefaultDelays(), b.Services.Submit)
}

func TestNewBackend_SQLiteSeededFromFixture(t *testing.T) {
	cfg := config.Defaults()
	cfg.Data.Source = config.SourceSQLite
	cfg.Data.Fixture = writeFixture(t)

	b, err := NewBackend(t.Context(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, b.Close()) })

	records, err := b.Services.Payments.Records(t.Context())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "TXN-T-1", records[0].TransactionID)
}

func TestNewBackend_SQLiteBadFixture(t *testing.T) {
	cfg := config.Defaults()
	cfg.Data.Source = config.SourceSQLite
	cfg.Data.Fixture = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := NewBackend(t.Context(), cfg)
	require.ErrorContains(t, err, "loading sqlite seed")
}

func TestNewBackend_WatchReloadsAfterInvalidate(t *testing.T) {
	cfg := config.Defaults()
	cfg.Data.Fixture = writeFixture(t)
	cfg.Data.Watch = true
	cfg.Data.CacheTTL = 0

	b, err := NewBackend(t.Context(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	require.NotNil(t, b.Watcher)
	require.Len(t, b.Options(), 1)

	records, err := b.Services.Payments.Records(t.Context())
	require.NoError(t, err)
	require.Len(t, records, 1)

	updated := fixtureYAML + `  - id: b
    date: 2024-02-02
    amount: 20
    description: ID Card Replacement
    status: failed
    method: Credit Card
    transactionId: TXN-T-2
`
	require.NoError(t, os.WriteFile(cfg.Data.Fixture, []byte(updated), 0o644))

	select {
	case <-b.Watcher.Changes():
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}

	// Cached until invalidated.
	records, err = b.Services.Payments.Records(t.Context())
	require.NoError(t, err)
	require.Len(t, records, 1)

	b.Cache.Invalidate()
	records, err = b.Services.Payments.Records(t.Context())
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestBackend_CloseIsIdempotent(t *testing.T) {
	cfg := config.Defaults()
	cfg.Data.Source = config.SourceSQLite
	b, err := NewBackend(t.Context(), cfg)
	require.NoError(t, err)
	require.NoError(t, b.Close())
	require.NoError(t, b.Close())
}

package payments

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestSeedRecords(t *testing.T) {
	records := SeedRecords()
	require.Len(t, records, 5)

	first := records[0]
	require.Equal(t, "1", first.ID)
	require.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), first.Date)
	require.Equal(t, Amount(250000), first.Amount)
	require.Equal(t, "Spring Semester Tuition", first.Description)
	require.Equal(t, StatusCompleted, first.Status)
	require.Equal(t, "Credit Card", first.Method)
	require.Equal(t, "TXN-2024-001", first.TransactionID)
}

func TestFixtureProvider_Embedded(t *testing.T) {
	got, err := NewFixtureProvider("").Records(context.Background())
	require.NoError(t, err)
	if diff := cmp.Diff(SeedRecords(), got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestFixtureProvider_File(t *testing.T) {
	got, err := NewFixtureProvider(filepath.Join("testdata", "two.yaml")).Records(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, Amount(1050), got[0].Amount)
	require.Equal(t, Amount(2000), got[1].Amount)
	require.Equal(t, StatusFailed, got[1].Status)
}

func TestFixtureProvider_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewFixtureProvider(filepath.Join("testdata", "missing.yaml")).Records(ctx)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewFixtureProvider(filepath.Join("testdata", "bad_status.yaml")).Records(ctx)
	require.ErrorContains(t, err, `unknown status "refunded"`)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = NewFixtureProvider("").Records(cancelled)
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseFixture_RejectsUnknownKeysAndDuplicates(t *testing.T) {
	_, err := ParseFixture([]byte("payments:\n  - id: a\n    status: failed\n    colour: red\n"))
	require.Error(t, err)

	_, err = ParseFixture([]byte("payments:\n  - id: a\n    status: failed\n  - id: a\n    status: pending\n"))
	require.ErrorContains(t, err, "duplicate record id")
}

func TestSQLiteProvider_MatchesSeed(t *testing.T) {
	ctx := context.Background()
	p, err := NewSQLiteProvider(ctx, SeedRecords())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	got, err := p.Records(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(SeedRecords(), got); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}

	// Derived values are the same whichever provider supplies the records.
	require.Equal(t, NewView(SeedRecords()).TotalPaid(), NewView(got).TotalPaid())
}

func TestSQLiteProvider_IsReadOnly(t *testing.T) {
	ctx := context.Background()
	p, err := NewSQLiteProvider(ctx, SeedRecords())
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	_, err = p.db.ExecContext(ctx, "DELETE FROM payments")
	require.Error(t, err)
}

func TestSQLiteProvider_RejectsInvalidSeed(t *testing.T) {
	_, err := NewSQLiteProvider(context.Background(), []PaymentRecord{{ID: "x", Status: "refunded"}})
	require.Error(t, err)
}

type countingProvider struct {
	calls int
	err   error
}

func (c *countingProvider) Records(context.Context) ([]PaymentRecord, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return SeedRecords(), nil
}

func TestCachedProvider(t *testing.T) {
	ctx := context.Background()
	next := &countingProvider{}
	c := NewCachedProvider(next, time.Minute)

	first, err := c.Records(ctx)
	require.NoError(t, err)
	first[0].Description = "mutated"

	second, err := c.Records(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, next.calls)
	require.Equal(t, "Spring Semester Tuition", second[0].Description)

	c.Invalidate()
	_, err = c.Records(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, next.calls)
}

func TestCachedProvider_NoTTL(t *testing.T) {
	next := &countingProvider{}
	c := NewCachedProvider(next, 0)
	for range 3 {
		_, err := c.Records(context.Background())
		require.NoError(t, err)
	}
	require.Equal(t, 1, next.calls)
}

func TestCachedProvider_ErrorsAreNotCached(t *testing.T) {
	boom := errors.New("boom")
	next := &countingProvider{err: boom}
	c := NewCachedProvider(next, time.Minute)

	_, err := c.Records(context.Background())
	require.ErrorIs(t, err, boom)

	next.err = nil
	_, err = c.Records(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, next.calls)
}

func TestStaticProvider(t *testing.T) {
	s := StaticProvider(SeedRecords()[:2])
	got, err := s.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
}

package payments

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func transactionIDs(records []PaymentRecord) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.TransactionID
	}
	return ids
}

func TestView_TotalPaid_Seed(t *testing.T) {
	v := NewView(SeedRecords())
	require.Equal(t, Amount(515000), v.TotalPaid())
	require.Equal(t, "5150.00", v.TotalPaid().String())
}

func TestView_TotalPaid_IndependentOfFilter(t *testing.T) {
	v := NewView(SeedRecords())
	for _, f := range Filters {
		_ = v.Filtered(f)
		require.Equal(t, Amount(515000), v.TotalPaid(), "filter %s", f)
	}
}

func TestView_Filtered_Seed(t *testing.T) {
	v := NewView(SeedRecords())

	tests := []struct {
		filter Filter
		want   []string
	}{
		{FilterAll, []string{"TXN-2024-001", "TXN-2023-089", "TXN-2023-067", "TXN-2023-045", "TXN-2023-023"}},
		{FilterCompleted, []string{"TXN-2024-001", "TXN-2023-089", "TXN-2023-067"}},
		{FilterPending, []string{"TXN-2023-045"}},
		{FilterFailed, []string{"TXN-2023-023"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			require.Equal(t, tt.want, transactionIDs(v.Filtered(tt.filter)))
		})
	}
}

func TestView_FilteredDoesNotAlias(t *testing.T) {
	v := NewView(SeedRecords())
	all := v.Filtered(FilterAll)
	all[0].Description = "changed"

	require.Equal(t, "Spring Semester Tuition", v.Filtered(FilterAll)[0].Description)
}

func TestView_Empty(t *testing.T) {
	v := NewView(nil)
	require.Empty(t, v.Filtered(FilterAll))
	require.Empty(t, v.Filtered(FilterPending))
	require.Equal(t, Amount(0), v.TotalPaid())
}

func TestView_Counts(t *testing.T) {
	counts := NewView(SeedRecords()).Counts()
	require.Equal(t, map[Filter]int{
		FilterAll:       5,
		FilterCompleted: 3,
		FilterPending:   1,
		FilterFailed:    1,
	}, counts)
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("pending")
	require.NoError(t, err)
	require.Equal(t, FilterPending, f)

	_, err = ParseFilter("refunded")
	require.Error(t, err)
}

func TestFilter_Label(t *testing.T) {
	require.Equal(t, "All", FilterAll.Label())
	require.Equal(t, "Completed", FilterCompleted.Label())
	require.Equal(t, "Pending", FilterPending.Label())
	require.Equal(t, "Failed", FilterFailed.Label())
}

// Property-based tests using rapid

func genRecords(t *rapid.T) []PaymentRecord {
	statuses := []Status{StatusCompleted, StatusPending, StatusFailed}
	n := rapid.IntRange(0, 20).Draw(t, "n")
	records := make([]PaymentRecord, n)
	for i := range records {
		records[i] = PaymentRecord{
			ID:            rapid.StringMatching(`[a-z]{4}`).Draw(t, "id"),
			Amount:        Amount(rapid.Int64Range(0, 1_000_000).Draw(t, "amount")),
			Status:        rapid.SampledFrom(statuses).Draw(t, "status"),
			TransactionID: rapid.StringMatching(`TXN-[0-9]{3}`).Draw(t, "txn"),
		}
	}
	return records
}

func TestPropertyFilteredPartitionsAll(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		records := genRecords(t)
		v := NewView(records)

		total := 0
		for _, f := range Filters[1:] {
			got := v.Filtered(f)
			for _, r := range got {
				require.Equal(t, Status(f), r.Status)
			}
			total += len(got)
		}
		require.Equal(t, len(records), total)
		require.Equal(t, records, v.Filtered(FilterAll))
	})
}

func TestPropertyFilteredPreservesOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		records := genRecords(t)
		f := rapid.SampledFrom(Filters).Draw(t, "filter")

		var want []PaymentRecord
		for _, r := range records {
			if f.Matches(r) {
				want = append(want, r)
			}
		}
		got := NewView(records).Filtered(f)
		require.Equal(t, len(want), len(got))
		for i := range want {
			require.Equal(t, want[i], got[i])
		}
	})
}

func TestPropertyTotalPaidEqualsCompletedSum(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := NewView(genRecords(t))
		var sum Amount
		for _, r := range v.Filtered(FilterCompleted) {
			sum += r.Amount
		}
		require.Equal(t, sum, v.TotalPaid())
	})
}

package payments

import (
	"fmt"
	"slices"
)

// Filter narrows the history to one status, or shows everything.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterCompleted Filter = "completed"
	FilterPending   Filter = "pending"
	FilterFailed    Filter = "failed"
)

// Filters lists the history tabs in display order.
var Filters = []Filter{FilterAll, FilterCompleted, FilterPending, FilterFailed}

// Label returns the tab label.
func (f Filter) Label() string {
	if f == FilterAll {
		return "All"
	}
	return Status(f).Label()
}

// ParseFilter maps a tab identifier to a Filter.
func ParseFilter(s string) (Filter, error) {
	f := Filter(s)
	if slices.Contains(Filters, f) {
		return f, nil
	}
	return FilterAll, fmt.Errorf("unknown filter %q (want one of all, completed, pending, failed)", s)
}

// Matches reports whether r passes the filter.
func (f Filter) Matches(r PaymentRecord) bool {
	return f == FilterAll || Status(f) == r.Status
}

// View derives the filtered list and paid total from a fixed set of records.
// It holds no state besides the records, so results are a pure function of
// the records and the filter passed in.
type View struct {
	records []PaymentRecord
}

// NewView builds a view over records. The slice is copied.
func NewView(records []PaymentRecord) View {
	return View{records: slices.Clone(records)}
}

// Len returns the number of underlying records.
func (v View) Len() int {
	return len(v.records)
}

// Filtered returns the records matching f in source order.
func (v View) Filtered(f Filter) []PaymentRecord {
	if f == FilterAll {
		return slices.Clone(v.records)
	}
	out := make([]PaymentRecord, 0, len(v.records))
	for _, r := range v.records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// TotalPaid sums completed payments. It ignores any active filter.
func (v View) TotalPaid() Amount {
	var total Amount
	for _, r := range v.records {
		if r.Status == StatusCompleted {
			total += r.Amount
		}
	}
	return total
}

// Counts returns the number of records per filter tab.
func (v View) Counts() map[Filter]int {
	counts := make(map[Filter]int, len(Filters))
	counts[FilterAll] = len(v.records)
	for _, r := range v.records {
		counts[Filter(r.Status)]++
	}
	return counts
}

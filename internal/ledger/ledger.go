package ledger

import "sort"

// Ledger is an append-only, insertion-ordered sequence of transaction records
// owned by exactly one wallet. Aggregates are derived on demand, never stored.
type Ledger struct {
	records []*TransactionRecord
}

func New() *Ledger {
	return &Ledger{}
}

// Restore rebuilds a ledger from persisted records, preserving their order.
func Restore(records []*TransactionRecord) *Ledger {
	l := &Ledger{records: make([]*TransactionRecord, len(records))}
	copy(l.records, records)
	return l
}

// Append inserts the record at the end. No validation happens here.
func (l *Ledger) Append(r *TransactionRecord) {
	l.records = append(l.records, r)
}

// Remove deletes the first record identical (same instance) to r and reports
// whether a removal happened. It exists for corrective flows only; the normal
// income/expense/transfer paths never call it.
func (l *Ledger) Remove(r *TransactionRecord) bool {
	for i, rec := range l.records {
		if rec == r {
			l.records = append(l.records[:i], l.records[i+1:]...)
			return true
		}
	}
	return false
}

func (l *Ledger) Len() int {
	return len(l.records)
}

// Records returns a copy of the record sequence in insertion order.
func (l *Ledger) Records() []*TransactionRecord {
	out := make([]*TransactionRecord, len(l.records))
	copy(out, l.records)
	return out
}

// TotalByKind sums the amounts of all records with the given kind.
func (l *Ledger) TotalByKind(kind Kind) float64 {
	var total float64
	for _, r := range l.records {
		if r.Kind == kind {
			total += r.Amount
		}
	}
	return total
}

// GroupByCategory sums amounts per category, restricted to the given kind.
// Categories with no matching records are absent from the result.
func (l *Ledger) GroupByCategory(kind Kind) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range l.records {
		if r.Kind == kind {
			out[r.Category] += r.Amount
		}
	}
	return out
}

// FilterByKind returns the matching records in insertion order.
func (l *Ledger) FilterByKind(kind Kind) []*TransactionRecord {
	var out []*TransactionRecord
	for _, r := range l.records {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// FilterByCategory returns the matching records in insertion order.
func (l *Ledger) FilterByCategory(category string) []*TransactionRecord {
	var out []*TransactionRecord
	for _, r := range l.records {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// Recent returns up to n records ordered newest-first by creation time.
// Timestamp ties break toward the most recently inserted record.
func (l *Ledger) Recent(n int) []*TransactionRecord {
	idx := make([]int, len(l.records))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		a, b := l.records[idx[i]], l.records[idx[j]]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return idx[i] > idx[j]
	})
	if n < 0 {
		n = 0
	}
	if n > len(idx) {
		n = len(idx)
	}
	out := make([]*TransactionRecord, n)
	for i := 0; i < n; i++ {
		out[i] = l.records[idx[i]]
	}
	return out
}

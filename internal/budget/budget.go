// Package budget tracks per-category spending caps and classifies spending
// against them.
package budget

import (
	"sort"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// nearThreshold is the fraction of a cap past which spending counts as "near".
const nearThreshold = 0.8

// Level classifies spending against a category cap.
type Level int8

const (
	LevelNormal Level = iota
	LevelNear
	LevelExceeded
)

func (l Level) String() string {
	switch l {
	case LevelNormal:
		return "normal"
	case LevelNear:
		return "near"
	case LevelExceeded:
		return "exceeded"
	default:
		return "unknown"
	}
}

// Alert reports the spending state of one capped category.
type Alert struct {
	Category string
	Level    Level
	Cap      float64
	Spent    float64
}

// Tracker holds at most one spending cap per category.
type Tracker struct {
	caps map[string]float64
}

func NewTracker() *Tracker {
	return &Tracker{caps: make(map[string]float64)}
}

// Restore rebuilds a tracker from persisted caps.
func Restore(caps map[string]float64) *Tracker {
	t := NewTracker()
	for category, cap := range caps {
		t.caps[category] = cap
	}
	return t
}

// Set inserts or overwrites the cap for a category. A cap that is not
// strictly positive is rejected and leaves the tracker unchanged.
func (t *Tracker) Set(category string, cap float64) error {
	if cap <= 0 {
		return ledger.ErrInvalidAmount
	}
	t.caps[category] = cap
	return nil
}

// Remove deletes the cap for a category and reports whether one existed.
func (t *Tracker) Remove(category string) bool {
	if _, ok := t.caps[category]; !ok {
		return false
	}
	delete(t.caps, category)
	return true
}

// Cap returns the cap for a category and whether one is set.
func (t *Tracker) Cap(category string) (float64, bool) {
	cap, ok := t.caps[category]
	return cap, ok
}

// Caps returns a copy of the category-to-cap mapping.
func (t *Tracker) Caps() map[string]float64 {
	out := make(map[string]float64, len(t.caps))
	for category, cap := range t.caps {
		out[category] = cap
	}
	return out
}

// Remaining returns cap minus the ledger's expense sum for the category,
// or 0 when no cap is set. Use Cap to distinguish "no cap" from "nothing left".
func (t *Tracker) Remaining(category string, l *ledger.Ledger) float64 {
	cap, ok := t.caps[category]
	if !ok {
		return 0
	}
	spent := spentByCategory(l, category)
	return cap - spent
}

// Evaluate classifies every capped category against the ledger's expenses.
// The result covers all capped categories, ordered by category name, and the
// call never mutates tracker or ledger state.
func (t *Tracker) Evaluate(l *ledger.Ledger) []Alert {
	if len(t.caps) == 0 {
		return nil
	}
	expenses := l.GroupByCategory(ledger.Expense)
	alerts := make([]Alert, 0, len(t.caps))
	for category, cap := range t.caps {
		spent := expenses[category]
		level := LevelNormal
		switch {
		case spent > cap:
			level = LevelExceeded
		case spent > cap*nearThreshold:
			level = LevelNear
		}
		alerts = append(alerts, Alert{Category: category, Level: level, Cap: cap, Spent: spent})
	}
	sort.Slice(alerts, func(i, j int) bool { return alerts[i].Category < alerts[j].Category })
	return alerts
}

func spentByCategory(l *ledger.Ledger, category string) float64 {
	var total float64
	for _, r := range l.FilterByCategory(category) {
		if r.Kind == ledger.Expense {
			total += r.Amount
		}
	}
	return total
}

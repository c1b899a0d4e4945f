// Package logs turns joined users/exercise rows into the public log shape.
package logs

import (
	"sort"

	"github.com/crucial707/exercise-tracker/internal/dates"
	"github.com/crucial707/exercise-tracker/internal/models"
	"github.com/crucial707/exercise-tracker/internal/query"
)

// CountMode selects what LogResult.Count reports.
type CountMode int

const (
	// CountTotal reports every matching row, ignoring the limit.
	CountTotal CountMode = iota
	// CountReturned reports the length of the returned logs.
	CountReturned
)

// ParseCountMode maps the configuration value ("total" or "returned") to a CountMode.
func ParseCountMode(s string) CountMode {
	if s == "returned" {
		return CountReturned
	}
	return CountTotal
}

// Assembler sorts, filters, limits and reshapes log rows.
type Assembler struct {
	Mode       CountMode
	HumanDates bool
}

// NewAssembler returns an Assembler that renders human-readable dates.
func NewAssembler(mode CountMode) *Assembler {
	return &Assembler{Mode: mode, HumanDates: true}
}

// Assemble applies the log policy to rows: ascending by date (exerciseId on
// ties), then the inclusive date range, then the limit. total is the storage
// match count when the rows were filtered in storage; when absent the
// pre-limit length of the filtered rows is used.
func (a *Assembler) Assemble(rows []models.LogRow, f query.Filter, total query.Optional[int]) models.LogResult {
	sorted := make([]models.LogRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].ExerciseID < sorted[j].ExerciseID
	})

	filtered := sorted[:0]
	for _, row := range sorted {
		if inRange(row.Date, f) {
			filtered = append(filtered, row)
		}
	}

	matched, ok := total.Get()
	if !ok {
		matched = len(filtered)
	}

	if limit, ok := f.Limit.Get(); ok && limit >= 0 && limit < len(filtered) {
		filtered = filtered[:limit]
	}

	out := make([]models.Log, 0, len(filtered))
	for _, row := range filtered {
		l := models.Log{
			UserID:      row.UserID,
			ExerciseID:  row.ExerciseID,
			Duration:    row.Duration,
			Description: row.Description,
			Date:        row.Date,
		}
		if a.HumanDates {
			l.DateHuman = dates.Human(row.Date)
		}
		out = append(out, l)
	}

	count := matched
	if a.Mode == CountReturned {
		count = len(out)
	}
	return models.LogResult{Count: count, Logs: out}
}

func inRange(date string, f query.Filter) bool {
	if from, ok := f.FromDate.Get(); ok && date < from {
		return false
	}
	if to, ok := f.ToDate.Get(); ok && date > to {
		return false
	}
	return true
}

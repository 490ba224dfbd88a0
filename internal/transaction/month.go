package transaction

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the textual form of dateOfSale that month patterns are matched against.
const DateLayout = "2006-01-02T15:04:05Z"

var monthLayouts = []string{
	"2006-01",
	time.DateOnly,
	time.RFC3339,
	"January 2006",
	"Jan 2006",
	"2006/01",
}

// Month is the half-open range [Start, End) covering one calendar month in UTC.
type Month struct {
	Start time.Time
	End   time.Time
}

// ParseMonth resolves a month selector such as "2024-03" or "March 2024".
func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Month{}, fmt.Errorf("%w: empty selector", ErrInvalidMonth)
	}

	for _, layout := range monthLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}

		return MonthOf(t), nil
	}

	return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
}

// MonthOf returns the calendar month containing t, as written in t's own location.
func MonthOf(t time.Time) Month {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Month{Start: start, End: start.AddDate(0, 1, 0)}
}

func (m Month) Contains(t time.Time) bool {
	return !t.Before(m.Start) && t.Before(m.End)
}

func (m Month) Next() Month { return MonthOf(m.End) }
func (m Month) Prev() Month { return MonthOf(m.Start.AddDate(0, -1, 0)) }

func (m Month) String() string {
	return m.Start.Format("2006-01")
}

// FormatDate renders t the way the listing month pattern sees it.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

package recurrence

import (
	"time"

	"github.com/JosephSijo/finhub/internal/ledger"
)

// maxSteps bounds the projection loop so a malformed rule can never spin
// forever. A rule that would exceed it yields an empty sequence.
const maxSteps = 10000

// Rule describes one recurring cadence to be expanded into concrete dates.
type Rule struct {
	Start              time.Time
	End                *time.Time
	Frequency          ledger.Frequency
	CustomIntervalDays int
	DayOfMonth         int // 0 anchors to Start's day of month
}

// RuleFor extracts the projection rule from a recurring commitment.
func RuleFor(c ledger.RecurringCommitment) Rule {
	return Rule{
		Start:              c.StartDate,
		End:                c.EndDate,
		Frequency:          c.Frequency,
		CustomIntervalDays: c.CustomIntervalDays,
		DayOfMonth:         c.DayOfMonth,
	}
}

// Project expands the rule into its occurrence dates inside the half-open
// window [from, to). Dates are strictly increasing, de-duplicated, never
// before the rule's start and never after its end date. A custom rule with
// a non-positive interval is malformed and yields nil.
func Project(rule Rule, from, to time.Time) []time.Time {
	if rule.Frequency == ledger.FreqCustom && rule.CustomIntervalDays <= 0 {
		return nil
	}

	start := dateOnly(rule.Start)
	windowFrom := dateOnly(from)
	windowTo := dateOnly(to)

	var end *time.Time
	if rule.End != nil {
		e := dateOnly(*rule.End)
		end = &e
	}

	targetDay := rule.DayOfMonth
	if targetDay <= 0 {
		targetDay = start.Day()
	}

	cursor := start
	if rule.Frequency == ledger.FreqMonthly {
		// Align to the anchored day within the start month, clamped to the
		// month's length. Roll forward one month if that lands before start.
		aligned := clampToMonth(start.Year(), start.Month(), targetDay)
		if aligned.Before(start) {
			aligned = nextMonth(aligned, targetDay)
		}

		cursor = aligned
	}

	var dates []time.Time

	for steps := 0; ; steps++ {
		if steps >= maxSteps {
			// A rule that needs this many steps is malformed input.
			return nil
		}

		if !cursor.Before(windowTo) {
			break
		}

		if end != nil && cursor.After(*end) {
			break
		}

		if !cursor.Before(windowFrom) && !cursor.Before(start) {
			if len(dates) == 0 || cursor.After(dates[len(dates)-1]) {
				dates = append(dates, cursor)
			}
		}

		cursor = advance(cursor, rule, targetDay)
	}

	return dates
}

func advance(cursor time.Time, rule Rule, targetDay int) time.Time {
	switch rule.Frequency {
	case ledger.FreqDaily:
		return cursor.AddDate(0, 0, 1)
	case ledger.FreqWeekly:
		return cursor.AddDate(0, 0, 7)
	case ledger.FreqYearly:
		return cursor.AddDate(1, 0, 0)
	case ledger.FreqCustom:
		return cursor.AddDate(0, 0, rule.CustomIntervalDays)
	default:
		return nextMonth(cursor, targetDay)
	}
}

// nextMonth moves the cursor to the anchored day of the following month,
// clamping to the last day when the month is shorter (Jan 31 -> Feb 28).
func nextMonth(cursor time.Time, targetDay int) time.Time {
	first := time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, time.UTC)
	first = first.AddDate(0, 1, 0)

	return clampToMonth(first.Year(), first.Month(), targetDay)
}

func clampToMonth(year int, month time.Month, day int) time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		day = last
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

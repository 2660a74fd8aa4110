package billing

import (
	"time"

	"github.com/imobo/imobo/internal/contract"
	"github.com/imobo/imobo/internal/payment"
)

// maxCycles caps a single schedule at five years of monthly cycles. A
// contract spanning longer than that (usually a data-entry error) gets a
// truncated schedule rather than an unbounded loop.
const maxCycles = 60

// BuildSchedule computes the full monthly payment schedule for a contract,
// one payment per billing cycle from the first cycle on or after the start
// date through the end date, in ascending due-date order. Nothing is
// persisted. The second return value reports whether the schedule was cut
// off at the cycle cap.
//
// Each due date is anchored to the contract's billing day. When the anchor
// day does not exist in a target month the date is clamped to that month's
// last day (Jan 31 + 1 month is Feb 29, not Mar 3).
//
// Overdue classification compares calendar year-month against today, not
// the exact day: a cycle due on the 31st of the current month is still
// pending on the 10th. That coarse granularity is a business rule, payments
// only become overdue in the following calendar month.
func BuildSchedule(c *contract.Contract, today time.Time) ([]*payment.Payment, bool) {
	anchor := c.BillingDay()
	start := dateOnly(c.StartDate)
	end := dateOnly(c.EndDate)

	year, month := start.Year(), start.Month()
	cursor := cycleDate(year, month, anchor)

	// Upstream date normalization can place the in-month anchor before the
	// contract begins; never bill a cycle due before the start date.
	if cursor.Before(start) {
		year, month = nextMonth(year, month)
		cursor = cycleDate(year, month, anchor)
	}

	var schedule []*payment.Payment

	for !cursor.After(end) {
		if len(schedule) == maxCycles {
			return schedule, true
		}

		schedule = append(schedule, &payment.Payment{
			ContractID: c.ID,
			Amount:     c.RentAmount,
			DueDate:    cursor,
			Status:     classify(cursor, today),
		})

		year, month = nextMonth(year, month)
		cursor = cycleDate(year, month, anchor)
	}

	return schedule, false
}

// cycleDate returns the due date for the cycle anchored at day within the
// given month. Anchor days past the month's length clamp to its last day
// instead of rolling over into the next month.
func cycleDate(year int, month time.Month, day int) time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Month() != month {
		// Rolled over: last day of the intended month.
		d = time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	}

	return d
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}

	return year, month + 1
}

func classify(due, today time.Time) payment.Status {
	if due.Year() < today.Year() ||
		(due.Year() == today.Year() && due.Month() < today.Month()) {
		return payment.StatusOverdue
	}

	return payment.StatusPending
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

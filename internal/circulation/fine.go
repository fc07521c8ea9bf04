package circulation

import "time"

const (
	// LoanPeriodDays is added to the issue date to fix the due date.
	LoanPeriodDays = 14

	// DefaultFineRatePerDay is charged per whole day past the due date.
	DefaultFineRatePerDay = 10
)

// CalculateFine reports how many whole days reference lies past dueDate and
// the fine owed at ratePerDay. Both dates are truncated to calendar days in
// UTC, so a return any time on the due date itself costs nothing. Returns
// (0, 0) whenever reference is on or before the due date.
func CalculateFine(dueDate, reference time.Time, ratePerDay int) (daysOverdue, fine int) {
	due := truncateToDay(dueDate)
	ref := truncateToDay(reference)
	if !ref.After(due) {
		return 0, 0
	}
	daysOverdue = int(ref.Sub(due) / (24 * time.Hour))
	return daysOverdue, daysOverdue * ratePerDay
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

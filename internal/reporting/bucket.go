package reporting

import "time"

// MonthSlot is one calendar month of the trailing window, [Start, End)
type MonthSlot struct {
	Start time.Time
	End   time.Time
	Label string
}

// MonthWindow returns n month slots ending with the month containing now,
// oldest first. Boundaries are midnight on the first of each month in loc.
func MonthWindow(now time.Time, loc *time.Location, n int) []MonthSlot {
	if n < 1 {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	local := now.In(loc)
	current := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	first := current.AddDate(0, -(n - 1), 0)

	slots := make([]MonthSlot, n)
	for i := range slots {
		start := first.AddDate(0, i, 0)
		slots[i] = MonthSlot{
			Start: start,
			End:   start.AddDate(0, 1, 0),
			Label: start.Format("Jan"),
		}
	}
	return slots
}

// slotIndex returns the position of t in the window, or -1 when t falls outside it
func slotIndex(window []MonthSlot, t time.Time) int {
	if len(window) == 0 {
		return -1
	}

	first := window[0].Start
	local := t.In(first.Location())
	if local.Before(first) || !local.Before(window[len(window)-1].End) {
		return -1
	}

	return (local.Year()-first.Year())*12 + int(local.Month()) - int(first.Month())
}

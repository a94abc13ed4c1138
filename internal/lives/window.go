package lives

import "time"

// IsAccepting reports whether reservations are open at the given instant.
// A nil bound means that side of the window is unrestricted.
func (l *Live) IsAccepting(now time.Time) bool {
	if l.AcceptStart != nil && now.Before(*l.AcceptStart) {
		return false
	}
	if l.AcceptEnd != nil && now.After(*l.AcceptEnd) {
		return false
	}
	return true
}

// IsUpcoming reports whether the show date is still ahead of the given day.
// Comparison is by calendar date so the show still counts on the day itself.
func (l *Live) IsUpcoming(now time.Time) bool {
	showDay := time.Date(l.Date.Year(), l.Date.Month(), l.Date.Day(), 0, 0, 0, 0, l.Date.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !showDay.Before(today)
}

// DaysUntil returns the number of whole days until the show date.
// Returns a negative count for past shows.
func (l *Live) DaysUntil(now time.Time) int {
	showDay := time.Date(l.Date.Year(), l.Date.Month(), l.Date.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(showDay.Sub(today).Hours() / 24)
}

package promo

import "time"

// Royal posting schedule. Queens and Kings carry a recurring engagement
// schedule; everyone else may post any day. The schedule is a reminder,
// not a hard gate on intake.
var (
	queenDays = []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	kingDays  = []time.Weekday{time.Tuesday, time.Thursday, time.Saturday}
	allDays   = []time.Weekday{
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	}
)

// PostingDays returns the weekdays assigned to a rank label
func PostingDays(rank string) []time.Weekday {
	switch rank {
	case "Queen":
		return queenDays
	case "King":
		return kingDays
	default:
		return allDays
	}
}

// IsPostingDay reports whether day falls on the rank's schedule
func IsPostingDay(rank string, day time.Time) bool {
	for _, wd := range PostingDays(rank) {
		if day.Weekday() == wd {
			return true
		}
	}
	return false
}

// NextPostingDay returns the next scheduled date on or after now
func NextPostingDay(rank string, now time.Time) time.Time {
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, i)
		if IsPostingDay(rank, day) {
			return day
		}
	}
	return now
}

// DayWindow returns the local midnight-to-midnight window containing now
func DayWindow(now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

// Streak counts consecutive calendar days with at least one submission,
// walking back from today. A streak survives until a full day is missed,
// so a promoter who posted yesterday but not yet today still has theirs.
func Streak(submittedAt []time.Time, now time.Time) int {
	days := make(map[string]bool, len(submittedAt))
	for _, ts := range submittedAt {
		days[ts.In(now.Location()).Format("2006-01-02")] = true
	}

	today, _ := DayWindow(now)
	cursor := today
	if !days[cursor.Format("2006-01-02")] {
		cursor = cursor.AddDate(0, 0, -1)
	}

	streak := 0
	for days[cursor.Format("2006-01-02")] {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

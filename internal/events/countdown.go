package events

import "time"

type Status string

const (
	StatusPast     Status = "past"
	StatusToday    Status = "today"
	StatusUpcoming Status = "upcoming"
)

type Urgency string

const (
	UrgencyFar       Urgency = "far"
	UrgencyNear      Urgency = "near"
	UrgencyClose     Urgency = "close"
	UrgencyImmediate Urgency = "immediate"
)

// Countdown describes how far a date is from a reference instant.
// Urgency is only meaningful for today and upcoming; past dates carry far.
type Countdown struct {
	Days    int     `json:"days"`
	Status  Status  `json:"status"`
	Urgency Urgency `json:"urgency"`
}

const day = 24 * time.Hour

// Classify places target relative to now. The today/past split uses calendar
// days in now's location; day counts are whole wall-clock days.
func Classify(now, target time.Time) Countdown {
	target = target.In(now.Location())
	today := startOfDay(now)

	if target.Before(today) {
		return Countdown{Days: wholeDays(target, now), Status: StatusPast, Urgency: UrgencyFar}
	}
	if sameDay(now, target) {
		return Countdown{Days: 0, Status: StatusToday, Urgency: UrgencyImmediate}
	}

	days := wholeDays(now, target)
	return Countdown{Days: days, Status: StatusUpcoming, Urgency: urgencyFor(days)}
}

func urgencyFor(days int) Urgency {
	switch {
	case days > 30:
		return UrgencyFar
	case days > 14:
		return UrgencyNear
	case days > 7:
		return UrgencyClose
	default:
		return UrgencyImmediate
	}
}

// wholeDays counts complete days from from to to on the wall clock of
// from's location, so a daylight saving shift does not cost a day.
func wholeDays(from, to time.Time) int {
	to = to.In(from.Location())
	days := calendarDays(from, to)
	if clock(to) < clock(from) {
		days--
	}
	if days < 0 {
		return 0
	}
	return days
}

func calendarDays(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / day)
}

func clock(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second + time.Duration(t.Nanosecond())
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

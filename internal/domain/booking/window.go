package booking

import (
	"time"

	"github.com/trimlylabs/trimly-api/internal/models"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// AtTime anchors an "HH:MM" time-of-day onto the given calendar date.
func AtTime(date time.Time, hm string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, hm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), nil
}

// WindowFromOverride builds the day's working window from a positive
// override, which fully replaces the weekly rule for that date.
func WindowFromOverride(date time.Time, ov models.ScheduleOverride) (Window, bool) {
	start, err := AtTime(date, ov.StartTime)
	if err != nil {
		return Window{}, false
	}
	end, err := AtTime(date, ov.EndTime)
	if err != nil {
		return Window{}, false
	}

	slot := ov.SlotMinutes
	if slot <= 0 {
		slot = DefaultSlotMinutes
	}
	return Window{Start: start, End: end, SlotMinutes: slot}, true
}

// WindowFromWeekly builds the day's working window from the recurring
// rule, or reports false on a day off.
func WindowFromWeekly(date time.Time, rule models.WeeklyAvailability) (Window, bool) {
	if !rule.Available || rule.StartTime == "" || rule.EndTime == "" {
		return Window{}, false
	}

	start, err := AtTime(date, rule.StartTime)
	if err != nil {
		return Window{}, false
	}
	end, err := AtTime(date, rule.EndTime)
	if err != nil {
		return Window{}, false
	}

	return Window{Start: start, End: end, SlotMinutes: DefaultSlotMinutes}, true
}

// BlockersForDay merges the two blocker kinds: active reservations and
// negative overrides (explicit time-off inside an open day).
func BlockersForDay(date time.Time, reservations []models.Reservation, overrides []models.ScheduleOverride) []Interval {
	var blockers []Interval

	for _, r := range reservations {
		blockers = append(blockers, Interval{Start: r.StartTime, End: r.EndTime})
	}

	for _, ov := range overrides {
		if ov.IsAvailable {
			continue
		}
		start, err := AtTime(date, ov.StartTime)
		if err != nil {
			continue
		}
		end, err := AtTime(date, ov.EndTime)
		if err != nil {
			continue
		}
		blockers = append(blockers, Interval{Start: start, End: end})
	}

	return blockers
}

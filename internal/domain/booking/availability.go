package booking

import "time"

const DefaultSlotMinutes = 30

// Window is a barber's working interval for one calendar day together
// with the slot granularity used to step through it.
type Window struct {
	Start       time.Time
	End         time.Time
	SlotMinutes int
}

// Valid rejects zero-length and inverted windows. Such rows are a
// configuration error caught at write time; the resolver just yields
// nothing for them.
func (w Window) Valid() bool {
	return w.Start.Before(w.End) && w.SlotMinutes > 0
}

// Interval is a half-open [Start, End) blocker: an active reservation
// or an explicit time-off override.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps uses half-open interval semantics: back-to-back bookings
// (one ending exactly when the next starts) do not collide.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// ResolveSlots generates the ordered bookable start times inside the
// window: steps of w.SlotMinutes, keeping only candidates whose full
// duration fits before the window end and which touch no blocker.
func ResolveSlots(w Window, duration time.Duration, blockers []Interval) []time.Time {
	if !w.Valid() || duration <= 0 {
		return nil
	}

	step := time.Duration(w.SlotMinutes) * time.Minute
	var slots []time.Time

	for cur := w.Start; !cur.Add(duration).After(w.End); cur = cur.Add(step) {
		slotStart := cur
		slotEnd := cur.Add(duration)

		blocked := false
		for _, b := range blockers {
			if Overlaps(slotStart, slotEnd, b.Start, b.End) {
				blocked = true
				break
			}
		}

		if !blocked {
			slots = append(slots, slotStart)
		}
	}

	return slots
}

// ContainsSlot reports whether start is one of the resolved candidates.
func ContainsSlot(slots []time.Time, start time.Time) bool {
	for _, s := range slots {
		if s.Equal(start) {
			return true
		}
	}
	return false
}

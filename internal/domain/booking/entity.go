package booking

import (
	"time"

	"github.com/trimlylabs/trimly-api/internal/httperr"
	"github.com/trimlylabs/trimly-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// SnapshotService copies price and duration from the service type onto
// the reservation unless they were explicitly supplied. The snapshot is
// immutable afterward even if the service type changes.
func SnapshotService(res *models.Reservation, svc *models.ServiceType) {
	if res.Price == 0 {
		res.Price = svc.Price
	}
	if res.DurationMin == 0 {
		res.DurationMin = svc.DurationMin
	}
}

// CanCancel reports whether the reservation is still editable by its
// customer: non-terminal and strictly before the appointment start.
// There is no advance-notice cutoff.
func CanCancel(res *models.Reservation, now time.Time) error {
	if IsTerminal(Status(res.Status)) {
		return httperr.ErrState("invalid_state", "reservation is already closed")
	}
	if !now.Before(res.StartTime) {
		return httperr.ErrState("appointment_started", "appointment time has passed")
	}
	return nil
}

// Cancel records the cancellation with actor, reason and timestamp.
func Cancel(res *models.Reservation, now time.Time, actorID uint, reason string) error {
	if err := CanCancel(res, now); err != nil {
		return err
	}

	res.Status = string(StatusCancelled)
	res.CancelledAt = &now
	res.CancelledByID = &actorID
	res.CancellationReason = reason
	return nil
}

// Reschedule overwrites the appointment time in place. Status is left
// unchanged; the caller must have validated the new slot first.
func Reschedule(res *models.Reservation, now, newStart time.Time) error {
	if err := CanCancel(res, now); err != nil {
		return err
	}

	res.StartTime = newStart
	res.EndTime = newStart.Add(time.Duration(res.DurationMin) * time.Minute)
	return nil
}

// ApplyStatus performs a barber/admin status change after checking the
// machine and the actor's role.
func ApplyStatus(res *models.Reservation, role Role, to Status, now time.Time, actorID uint, reason string) error {
	if err := CheckTransition(role, Status(res.Status), to); err != nil {
		return err
	}

	res.Status = string(to)

	switch to {
	case StatusCompleted:
		res.CompletedAt = &now
	case StatusCancelled, StatusRejected:
		res.CancelledAt = &now
		res.CancelledByID = &actorID
		if reason == "" {
			reason = "Cancelled by " + string(role) + "."
		}
		res.CancellationReason = reason
	}
	return nil
}

// Rate sets the one-time rating on a completed reservation.
func Rate(res *models.Reservation, rating int, feedback string) error {
	if rating < 1 || rating > 5 {
		return httperr.ErrValidation("invalid_rating", "rating must be between 1 and 5")
	}
	if Status(res.Status) != StatusCompleted {
		return httperr.ErrState("not_completed", "only completed appointments can be rated")
	}
	if res.Rating != nil {
		return httperr.ErrState("already_rated", "appointment has already been rated")
	}

	res.Rating = &rating
	res.Feedback = feedback
	return nil
}

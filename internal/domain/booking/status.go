package booking

import "github.com/trimlylabs/trimly-api/internal/httperr"

// ===============================
// Reservation Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusRejected   Status = "rejected"
	StatusNoShow     Status = "no_show"
)

// ActiveStatuses are the statuses that block a slot for new bookings.
var ActiveStatuses = []string{
	string(StatusPending),
	string(StatusConfirmed),
	string(StatusInProgress),
}

var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted},
}

func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusRejected, StatusNoShow:
		return true
	}
	return false
}

func IsTerminal(s Status) bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusRejected, StatusNoShow:
		return true
	}
	return false
}

func IsActive(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress:
		return true
	}
	return false
}

// CanTransition reports whether the status machine permits from -> to.
func CanTransition(from, to Status) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Roles
// ===============================

type Role string

const (
	RoleCustomer Role = "customer"
	RoleBarber   Role = "barber"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCustomer, RoleBarber, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

var barberTargets = map[Status]bool{
	StatusConfirmed: true,
	StatusCancelled: true,
	StatusCompleted: true,
	StatusNoShow:    true,
	StatusRejected:  true,
}

// RoleAllowsTarget reports whether the actor's role may set the target
// status at all. Admins may set any valid status; barbers only the
// subset they manage; customers go through the cancel flow instead.
func RoleAllowsTarget(role Role, to Status) bool {
	switch role {
	case RoleAdmin:
		return IsValidStatus(to)
	case RoleBarber:
		return barberTargets[to]
	}
	return false
}

// CheckTransition combines machine legality and role legality.
func CheckTransition(role Role, from, to Status) error {
	if !IsValidStatus(to) {
		return httperr.ErrValidation("invalid_status", "unknown status value")
	}
	if !RoleAllowsTarget(role, to) {
		return httperr.ErrAuthorization("status_not_allowed_for_role", "actor may not set this status")
	}
	if !CanTransition(from, to) {
		return httperr.ErrState("illegal_transition", "status change not permitted from current state")
	}
	return nil
}

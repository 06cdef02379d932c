package notify

import (
	"context"

	"github.com/trimlylabs/trimly-api/internal/models"
)

// Notifier is the email collaborator. Sends are best-effort: a failure
// never rolls back or fails the booking operation that triggered it.
type Notifier interface {
	SendConfirmation(ctx context.Context, res *models.Reservation, email string) error
	SendCancellation(ctx context.Context, res *models.Reservation, email string) error
}

type Kind string

const (
	KindConfirmation Kind = "confirmation"
	KindCancellation Kind = "cancellation"
)

type Event struct {
	Kind        Kind
	Reservation models.Reservation
	Email       string
}

package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/trimlylabs/trimly-api/internal/models"
)

// Mailer sends multipart text+HTML appointment emails over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *Mailer) SendConfirmation(ctx context.Context, res *models.Reservation, email string) error {
	subject := fmt.Sprintf("Appointment Confirmation - %s", res.StartTime.Format("January 2, 2006"))
	return m.send(ctx, email, subject, res, "has been received and is awaiting confirmation")
}

func (m *Mailer) SendCancellation(ctx context.Context, res *models.Reservation, email string) error {
	subject := fmt.Sprintf("Appointment Cancelled - %s", res.StartTime.Format("January 2, 2006"))
	return m.send(ctx, email, subject, res, "has been cancelled")
}

func (m *Mailer) send(ctx context.Context, to, subject string, res *models.Reservation, verb string) error {
	text := fmt.Sprintf(
		"Your appointment on %s at %s %s.\nBooking code: %s\nDuration: %d minutes\nPrice: %.2f\n",
		res.StartTime.Format("January 2, 2006"),
		res.StartTime.Format("3:04 PM"),
		verb,
		res.Code,
		res.DurationMin,
		res.Price,
	)

	html := fmt.Sprintf(
		`<p>Your appointment on <strong>%s</strong> at <strong>%s</strong> %s.</p>
<ul>
  <li>Booking code: %s</li>
  <li>Duration: %d minutes</li>
  <li>Price: %.2f</li>
</ul>`,
		res.StartTime.Format("January 2, 2006"),
		res.StartTime.Format("3:04 PM"),
		verb,
		res.Code,
		res.DurationMin,
		res.Price,
	)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", text)
	msg.AddAlternative("text/html", html)

	// gomail has no context support; honour cancellation around the dial
	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ Notifier = (*Mailer)(nil)

// NoopNotifier is used when SMTP is not configured.
type NoopNotifier struct{}

func (NoopNotifier) SendConfirmation(context.Context, *models.Reservation, string) error {
	return nil
}

func (NoopNotifier) SendCancellation(context.Context, *models.Reservation, string) error {
	return nil
}

package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gustavopolonio/nlw-journey/internal/domain"
	"github.com/gustavopolonio/nlw-journey/internal/mail"
	"github.com/gustavopolonio/nlw-journey/internal/metrics"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"date": formatDate,
}).ParseFS(templateFS, "templates/*.html"))

const (
	mailKindTripConfirmation = "trip_confirmation"
	mailKindInvitation       = "invitation"
)

// Notifier renders and sends the emails of the trip lifecycle. Delivery
// failures are logged and counted; they never fail the calling operation.
type Notifier struct {
	mailer      mail.Mailer
	log         *slog.Logger
	apiBaseURL  string
	concurrency int
}

// NewNotifier returns a Notifier whose confirmation links point at apiBaseURL.
// concurrency bounds the number of invitations sent at once; values below 1
// are treated as 1.
func NewNotifier(mailer mail.Mailer, log *slog.Logger, apiBaseURL string, concurrency int) *Notifier {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Notifier{
		mailer:      mailer,
		log:         log,
		apiBaseURL:  strings.TrimRight(apiBaseURL, "/"),
		concurrency: concurrency,
	}
}

type tripMailData struct {
	Trip        domain.Trip
	Name        string
	ConfirmLink string
}

// TripCreated asks the owner to confirm the new trip.
func (n *Notifier) TripCreated(ctx context.Context, trip domain.Trip, owner domain.Participant) {
	name := ""
	if owner.Name != nil {
		name = *owner.Name
	}
	n.send(ctx, mailKindTripConfirmation, owner, "trip_confirmation.html",
		fmt.Sprintf("Confirm your trip to %s on %s", trip.Destination, formatDate(trip.StartsAt)),
		tripMailData{
			Trip:        trip,
			Name:        name,
			ConfirmLink: fmt.Sprintf("%s/trips/%s/confirm", n.apiBaseURL, trip.ID),
		})
}

// Invite sends one invitation per guest concurrently and returns once every
// send has finished.
func (n *Notifier) Invite(ctx context.Context, trip domain.Trip, guests []domain.Participant) {
	var g errgroup.Group
	g.SetLimit(n.concurrency)
	for _, guest := range guests {
		g.Go(func() error {
			n.send(ctx, mailKindInvitation, guest, "invitation.html",
				fmt.Sprintf("You were invited to a trip to %s on %s", trip.Destination, formatDate(trip.StartsAt)),
				tripMailData{
					Trip:        trip,
					ConfirmLink: fmt.Sprintf("%s/participants/%s/confirm", n.apiBaseURL, guest.ID),
				})
			return nil
		})
	}
	_ = g.Wait()
}

func (n *Notifier) send(ctx context.Context, kind string, to domain.Participant, tmpl, subject string, data tripMailData) {
	log := n.log.With("kind", kind, "participant_id", to.ID, "trip_id", data.Trip.ID)

	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, tmpl, data); err != nil {
		metrics.MailDeliveries.WithLabelValues(kind, metrics.ResultFailure).Inc()
		log.ErrorContext(ctx, "render email", "error", err)
		return
	}

	receipt, err := n.mailer.Send(ctx, mail.Message{
		To:      to.Email,
		Subject: subject,
		HTML:    body.String(),
	})
	if err != nil {
		metrics.MailDeliveries.WithLabelValues(kind, metrics.ResultFailure).Inc()
		log.ErrorContext(ctx, "send email", "error", err)
		return
	}
	metrics.MailDeliveries.WithLabelValues(kind, metrics.ResultSuccess).Inc()
	log.InfoContext(ctx, "email sent", "message_id", receipt.MessageID)
}

func formatDate(t time.Time) string {
	return t.UTC().Format("January 2, 2006")
}

package pushnotification

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/way2b1/nextgen-onboarding/internal/pushsubscription"
)

// Notification is the payload the service worker renders.
type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
}

// Sender delivers web push notifications to every stored subscription. With
// no VAPID keys configured it becomes a no-op, so the rest of the app never
// has to care whether push is set up.
type Sender struct {
	repo       pushsubscription.Repository
	publicKey  string
	privateKey string
	contact    string
}

func NewSender(repo pushsubscription.Repository, publicKey, privateKey, contact string) *Sender {
	return &Sender{
		repo:       repo,
		publicKey:  publicKey,
		privateKey: privateKey,
		contact:    contact,
	}
}

func (s *Sender) Enabled() bool {
	return s.publicKey != "" && s.privateKey != ""
}

// Broadcast sends the notification to all subscriptions. Endpoints that the
// push service reports as gone are deleted. Individual delivery failures are
// logged and skipped; the broadcast itself only fails when the subscription
// list cannot be read.
func (s *Sender) Broadcast(ctx context.Context, n Notification) error {
	if !s.Enabled() {
		return nil
	}
	subs, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		return nil
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	for _, sub := range subs {
		s.send(ctx, sub, payload)
	}
	return nil
}

func (s *Sender) send(ctx context.Context, sub *pushsubscription.Subscription, payload []byte) {
	resp, err := webpush.SendNotification(payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      s.contact,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             3600,
	})
	if err != nil {
		slog.Warn("failed to send push notification", "endpoint", sub.Endpoint, "error", err)
		return
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusGone, http.StatusNotFound:
		// The push service no longer knows this endpoint.
		if err := s.repo.DeleteByEndpoint(ctx, sub.Endpoint); err != nil {
			slog.Warn("failed to delete expired push subscription", "endpoint", sub.Endpoint, "error", err)
		}
	default:
		if resp.StatusCode >= 400 {
			slog.Warn("push service rejected notification", "endpoint", sub.Endpoint, "status", resp.StatusCode)
		}
	}
}

// Package notify pushes booking updates to the user's realtime channel.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	pubnub "github.com/pubnub/go"

	"luxetickets/models"
	"luxetickets/utils"
)

const (
	TypeBookingConfirmed = "booking_confirmed"
	TypeBookingCancelled = "booking_cancelled"
)

type Publisher interface {
	Publish(ctx context.Context, channel string, message any) error
}

type PubNubPublisher struct {
	pn *pubnub.PubNub
}

func NewPubNubPublisher(publishKey, subscribeKey, secretKey string) *PubNubPublisher {
	config := pubnub.NewConfig()
	config.PublishKey = publishKey
	config.SubscribeKey = subscribeKey
	config.SecretKey = secretKey

	return &PubNubPublisher{pn: pubnub.NewPubNub(config)}
}

func (p *PubNubPublisher) Publish(_ context.Context, channel string, message any) error {
	_, _, err := p.pn.Publish().
		Channel(channel).
		Message(message).
		Execute()
	return err
}

// BookingNotifier publishes booking events. Publishing goes through a
// circuit breaker so a PubNub outage cannot slow checkouts down.
type BookingNotifier struct {
	publisher Publisher
	breaker   *utils.CircuitBreaker
	now       func() time.Time
}

func NewBookingNotifier(publisher Publisher, breaker *utils.CircuitBreaker) *BookingNotifier {
	if breaker == nil {
		breaker = utils.NewCircuitBreaker("pubnub")
	}
	return &BookingNotifier{publisher: publisher, breaker: breaker, now: time.Now}
}

func UserChannel(userID string) string {
	return fmt.Sprintf("user-%s", userID)
}

func (n *BookingNotifier) BookingConfirmed(ctx context.Context, booking models.Booking) error {
	return n.publish(ctx, TypeBookingConfirmed, booking)
}

func (n *BookingNotifier) BookingCancelled(ctx context.Context, booking models.Booking) error {
	return n.publish(ctx, TypeBookingCancelled, booking)
}

func (n *BookingNotifier) publish(ctx context.Context, kind string, booking models.Booking) error {
	message := map[string]any{
		"type":         kind,
		"booking_id":   booking.ID,
		"status":       string(booking.Status),
		"final_amount": booking.FinalAmount.String(),
		"seats":        booking.SeatCount(),
		"qr_code":      booking.QRCode,
		"timestamp":    n.now().Unix(),
	}

	_, err := n.breaker.Execute(func() (any, error) {
		return nil, n.publisher.Publish(ctx, UserChannel(booking.UserID), message)
	})
	if err != nil {
		slog.Warn("Booking notification not delivered",
			"error", err,
			"type", kind,
			"booking_id", booking.ID,
			"breaker_state", n.breaker.State().String(),
		)
		return err
	}
	return nil
}

package payment

import (
	"context"
	"fmt"
	"time"

	"luxetickets/internal/status"
	"luxetickets/models"
)

// Registry routes a payment to the gateway for its method.
type Registry struct {
	gateways map[models.PaymentMethod]Gateway
}

func NewRegistry(gateways ...Gateway) *Registry {
	r := &Registry{gateways: make(map[models.PaymentMethod]Gateway)}
	for _, g := range gateways {
		r.Register(g)
	}
	return r
}

// NewSimulatedRegistry wires the UPI, card and wallet gateways used by the
// storefront, all sharing the same simulated settlement delay.
func NewSimulatedRegistry(delay time.Duration) *Registry {
	return NewRegistry(
		NewSimulatedGateway(models.PaymentUPI, delay),
		NewSimulatedGateway(models.PaymentCard, delay),
		NewSimulatedGateway(models.PaymentWallet, delay),
	)
}

func (r *Registry) Register(g Gateway) {
	r.gateways[g.Method()] = g
}

func (r *Registry) Gateway(method models.PaymentMethod) (Gateway, error) {
	g, ok := r.gateways[method]
	if !ok {
		return nil, fmt.Errorf("%w: %q", status.ErrInvalidPaymentMethod, method)
	}
	return g, nil
}

// Validate checks details against the gateway of their method.
func (r *Registry) Validate(details models.PaymentDetails) error {
	g, err := r.Gateway(details.Method)
	if err != nil {
		return err
	}
	return g.Validate(details)
}

func (r *Registry) Charge(ctx context.Context, req ChargeRequest) (*Receipt, error) {
	g, err := r.Gateway(req.Details.Method)
	if err != nil {
		return nil, err
	}
	return g.Charge(ctx, req)
}

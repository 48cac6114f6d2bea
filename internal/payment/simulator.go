package payment

import (
	"context"
	"time"

	"github.com/chickorder/web/pkg/config"
	"github.com/chickorder/web/pkg/errors"
)

// Confirmer approves or rejects a mobile money PIN entry.
type Confirmer interface {
	Confirm(ctx context.Context, pin string) error
}

// SimulatedConfirmer stands in for a real mobile money operator. It checks
// the PIN shape locally and sleeps for the configured delay to mimic the
// operator round trip. No network call is made and the PIN goes nowhere.
type SimulatedConfirmer struct {
	delay time.Duration
}

// NewSimulatedConfirmer builds the simulator from payment config.
func NewSimulatedConfirmer(cfg config.PaymentConfig) *SimulatedConfirmer {
	delay := cfg.MobileMoneyConfirmDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}
	return &SimulatedConfirmer{delay: delay}
}

// Confirm validates the PIN and waits out the simulated processing delay.
func (s *SimulatedConfirmer) Confirm(ctx context.Context, pin string) error {
	if !validPIN(pin) {
		return errors.New(errors.CodeValidation, "PIN must be exactly 4 digits")
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func validPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Package payment implements the simulated card-payment step. It checks card
// field formats only (no Luhn, no settlement) and waits a configured delay to
// imitate a gateway round trip. Its confirmation ID gates order submission.
package payment

import (
	"context"
	"crypto/rand"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tavolo/ordering-gateway/internal/core/domain"
	"github.com/tavolo/ordering-gateway/internal/core/ports"
)

var (
	cardNumberRe = regexp.MustCompile(`^\d{13,19}$`)
	expiryRe     = regexp.MustCompile(`^(\d{2})/(\d{2})$`)
	cvvRe        = regexp.MustCompile(`^\d{3,4}$`)
)

// Simulator is a PaymentProcessor that approves every well-formed card.
type Simulator struct {
	delay time.Duration
	now   func() time.Time
}

func NewSimulator(delay time.Duration) *Simulator {
	return &Simulator{delay: delay, now: time.Now}
}

// Charge validates the card format, sleeps the configured delay and returns a
// confirmation ID. Cancellation of ctx aborts the wait.
func (s *Simulator) Charge(ctx context.Context, card ports.CardDetails, amount float64) (string, error) {
	if err := s.checkCard(card); err != nil {
		return "", err
	}

	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.delay):
		}
	}

	return generateConfirmation(), nil
}

func (s *Simulator) checkCard(card ports.CardDetails) error {
	number := strings.ReplaceAll(strings.ReplaceAll(card.Number, " ", ""), "-", "")
	if !cardNumberRe.MatchString(number) {
		return fmt.Errorf("%w: card number must be 13-19 digits", domain.ErrPaymentDeclined)
	}
	if !cvvRe.MatchString(card.CVV) {
		return fmt.Errorf("%w: cvv must be 3 or 4 digits", domain.ErrPaymentDeclined)
	}

	m := expiryRe.FindStringSubmatch(card.Expiry)
	if m == nil {
		return fmt.Errorf("%w: expiry must be MM/YY", domain.ErrPaymentDeclined)
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: expiry month out of range", domain.ErrPaymentDeclined)
	}

	// End of the expiry month, 21st century assumed.
	expiresAt := time.Date(2000+year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	if !s.now().Before(expiresAt) {
		return fmt.Errorf("%w: card is expired", domain.ErrPaymentDeclined)
	}
	return nil
}

// generateConfirmation returns a confirmation ID in the format PAY-XXXXXXXX.
func generateConfirmation() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("PAY-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("PAY-%08X", b)
}

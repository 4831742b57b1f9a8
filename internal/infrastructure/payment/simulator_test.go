package payment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tavolo/ordering-gateway/internal/core/domain"
	"github.com/tavolo/ordering-gateway/internal/core/ports"
)

func fixedNow() time.Time {
	return time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
}

func testSimulator() *Simulator {
	s := NewSimulator(0)
	s.now = fixedNow
	return s
}

func TestSimulator_ApprovesWellFormedCard(t *testing.T) {
	s := testSimulator()
	confirm, err := s.Charge(context.Background(), ports.CardDetails{
		Number: "4111 1111 1111 1111",
		Expiry: "12/29",
		CVV:    "123",
	}, 25.50)
	if err != nil {
		t.Fatalf("Charge: %v", err)
	}
	if !strings.HasPrefix(confirm, "PAY-") {
		t.Fatalf("unexpected confirmation id %q", confirm)
	}
}

func TestSimulator_DeclinesBadFormats(t *testing.T) {
	cases := []struct {
		name string
		card ports.CardDetails
	}{
		{"short number", ports.CardDetails{Number: "4111", Expiry: "12/29", CVV: "123"}},
		{"letters in number", ports.CardDetails{Number: "4111abcd11111111", Expiry: "12/29", CVV: "123"}},
		{"bad expiry format", ports.CardDetails{Number: "4111111111111111", Expiry: "2029-12", CVV: "123"}},
		{"month out of range", ports.CardDetails{Number: "4111111111111111", Expiry: "13/29", CVV: "123"}},
		{"expired card", ports.CardDetails{Number: "4111111111111111", Expiry: "08/26", CVV: "123"}},
		{"bad cvv", ports.CardDetails{Number: "4111111111111111", Expiry: "12/29", CVV: "12"}},
	}

	s := testSimulator()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.Charge(context.Background(), tc.card, 10); !errors.Is(err, domain.ErrPaymentDeclined) {
				t.Fatalf("expected ErrPaymentDeclined, got %v", err)
			}
		})
	}
}

func TestSimulator_CurrentExpiryMonthStillValid(t *testing.T) {
	s := testSimulator()
	if _, err := s.Charge(context.Background(), ports.CardDetails{
		Number: "4111111111111111",
		Expiry: "09/26",
		CVV:    "123",
	}, 10); err != nil {
		t.Fatalf("card expiring this month must still be accepted: %v", err)
	}
}

func TestSimulator_ChargeHonoursCancellation(t *testing.T) {
	s := NewSimulator(5 * time.Second)
	s.now = fixedNow

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Charge(ctx, ports.CardDetails{Number: "4111111111111111", Expiry: "12/29", CVV: "123"}, 10)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

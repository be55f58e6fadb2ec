// Package notify holds the delivery seams for client-facing communication.
// Real email and OTP delivery are out of scope for this system: both are
// explicitly mocked, but live behind interfaces so a real provider can be
// dropped in without touching workflow code.
package notify

import (
	"context"
	"log/slog"
)

// OfferSender delivers an offer notification to a client.
type OfferSender interface {
	SendOffer(ctx context.Context, clientID, offerID string) error
}

// OTPVerifier confirms a client's one-time passcode during acceptance.
type OTPVerifier interface {
	Verify(ctx context.Context, clientID string) (bool, error)
}

// LogSender is the mock delivery channel: it logs instead of emailing.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) SendOffer(ctx context.Context, clientID, offerID string) error {
	s.logger.InfoContext(ctx, "offer email sent (simulated)",
		"client_id", clientID,
		"offer_id", offerID,
	)
	return nil
}

// MockOTPVerifier simulates OTP verification and always succeeds.
type MockOTPVerifier struct{}

func (MockOTPVerifier) Verify(_ context.Context, _ string) (bool, error) {
	return true, nil
}

package alerts

import (
	"context"
	"strings"
	"testing"
)

func TestSMTPSenderNoRecipients(t *testing.T) {
	s := NewSMTPSender("localhost", 587, "user", "pass", "from@example.com", nil)

	// Must surface as an error, never a panic out of Send.
	if err := s.Send(context.Background(), testPayload()); err == nil {
		t.Error("expected an error with an empty recipient list")
	}
}

func TestBuildEmailBody(t *testing.T) {
	s := NewSMTPSender("localhost", 587, "user", "pass", "from@example.com", []string{"to@example.com"})

	body := s.buildEmailBody(testPayload())

	for _, want := range []string{
		"WALLETWATCH ALERT - BUY",
		"Whale One",
		"Net SOL:        -2.000",
		"Largest In:     150000.000 (MintAddr)",
		"Score:          6",
		"Signature:      sig123",
		"https://solscan.io/tx/sig123",
		"Environment: test",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}

	if strings.Contains(body, "Largest Out:") {
		t.Error("missing out leg should not render a line")
	}
}

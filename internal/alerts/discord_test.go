package alerts

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testPayload() *AlertPayload {
	return &AlertPayload{
		DisplayName: "Whale One",
		Icon:        "🐋",
		Actor:       "So11111111111111111111111111111111111111112",
		ActorShort:  "So11..1112",
		Action:      ActionBuy,
		EventType:   "SWAP",
		NativeDelta: -2.0,
		StableDelta: 4000,
		LargestIn:   &TokenLeg{Mint: "MintAddr", Amount: 150000},
		Score:       6,
		Signature:   "sig123",
		SigShort:    "sig123",
		Timestamp:   time.Unix(1_700_000_000, 0),
		Environment: "test",
	}
}

func TestDiscordSenderSend(t *testing.T) {
	var captured map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := NewDiscordSender(srv.URL, 100)
	if err := s.Send(context.Background(), testPayload()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	embeds, ok := captured["embeds"].([]any)
	if !ok || len(embeds) != 1 {
		t.Fatalf("expected one embed, got %v", captured["embeds"])
	}
	if _, hasContent := captured["content"]; hasContent {
		t.Error("non-escalated alert should carry no content mention")
	}

	embed := embeds[0].(map[string]any)
	title, _ := embed["title"].(string)
	if title != "🟢 Whale One BUY" {
		t.Errorf("title: got %q", title)
	}
	if embed["url"] != "https://solscan.io/tx/sig123" {
		t.Errorf("url: got %v", embed["url"])
	}
}

func TestDiscordSenderEscalationMentions(t *testing.T) {
	var captured map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &captured)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	payload := testPayload()
	payload.Escalate = true

	s := NewDiscordSender(srv.URL, 100)
	if err := s.Send(context.Background(), payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured["content"] != "@here" {
		t.Errorf("escalated alert should mention @here, got %v", captured["content"])
	}
}

func TestDiscordSenderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := NewDiscordSender(srv.URL, 100)
	if err := s.Send(context.Background(), testPayload()); err == nil {
		t.Error("expected an error on a 429 response")
	}
}

func TestDiscordSenderContextCancelled(t *testing.T) {
	s := NewDiscordSender("http://127.0.0.1:0", 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Send(ctx, testPayload()); err == nil {
		t.Error("expected an error with a cancelled context")
	}
}

func TestBuildEmbedSwapColor(t *testing.T) {
	s := NewDiscordSender("unused", 1)

	payload := testPayload()
	payload.Action = ActionSwap
	payload.NativeDelta = 0

	embed := s.buildEmbed(payload)
	if embed["color"] != 0x3498DB {
		t.Errorf("swap color: got %v", embed["color"])
	}
}

package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/solwatch/walletwatch/internal/ratelimit"
)

// DiscordSender sends alerts to Discord via webhook. Sends are paced through
// a token bucket so a burst of alerts stays under the webhook rate limit.
type DiscordSender struct {
	webhookURL string
	httpClient *http.Client
	limiter    *ratelimit.Limiter
}

// NewDiscordSender creates a new Discord sender.
func NewDiscordSender(webhookURL string, sendRPS float64) *DiscordSender {
	return &DiscordSender{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    ratelimit.New(sendRPS),
	}
}

// Send sends the alert to Discord.
func (s *DiscordSender) Send(ctx context.Context, payload *AlertPayload) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	webhookPayload := map[string]interface{}{
		"embeds": []interface{}{s.buildEmbed(payload)},
	}
	if payload.Escalate {
		webhookPayload["content"] = "@here"
	}

	body, err := json.Marshal(webhookPayload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return nil
}

func (s *DiscordSender) buildEmbed(payload *AlertPayload) map[string]interface{} {
	var emoji string
	var color int
	switch payload.Action {
	case ActionBuy:
		emoji = "🟢"
		color = 0x2ECC71
	case ActionSell:
		emoji = "🔴"
		color = 0xE74C3C
	default:
		emoji = "🔄"
		color = 0x3498DB
	}

	title := fmt.Sprintf("%s %s %s", emoji, truncate(payload.DisplayName, 80), payload.Action)

	description := fmt.Sprintf("%s **%s SOL** net · score **%d**",
		payload.Icon,
		FormatAmount(payload.NativeDelta),
		payload.Score,
	)

	fields := []map[string]interface{}{
		{
			"name":   "Wallet",
			"value":  fmt.Sprintf("`%s`", payload.ActorShort),
			"inline": true,
		},
		{
			"name":   "Action",
			"value":  fmt.Sprintf("%s (%s)", payload.Action, payload.EventType),
			"inline": true,
		},
		{
			"name":   "Net SOL",
			"value":  FormatAmount(payload.NativeDelta),
			"inline": true,
		},
		{
			"name":   "Net Stable",
			"value":  FormatAmount(payload.StableDelta),
			"inline": true,
		},
		{
			"name":   "Largest In",
			"value":  formatLeg(payload.LargestIn),
			"inline": true,
		},
		{
			"name":   "Largest Out",
			"value":  formatLeg(payload.LargestOut),
			"inline": true,
		},
		{
			"name":   "Tx",
			"value":  fmt.Sprintf("`%s`", payload.SigShort),
			"inline": true,
		},
	}

	footer := map[string]interface{}{
		"text": fmt.Sprintf("walletwatch • %s • %s", payload.Environment, payload.Timestamp.UTC().Format("2006-01-02 15:04:05 UTC")),
	}

	embed := map[string]interface{}{
		"title":       title,
		"description": description,
		"color":       color,
		"fields":      fields,
		"footer":      footer,
		"timestamp":   payload.Timestamp.Format(time.RFC3339),
	}
	if url := TxURL(payload.Signature); url != "" {
		embed["url"] = url
	}

	return embed
}

package alerts

import (
	"context"
	"time"
)

// Action classifies the direction of a wallet's net movement.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionSwap Action = "SWAP"
)

// TokenLeg is the largest single token transfer in one direction.
type TokenLeg struct {
	Mint   string
	Amount float64
}

// AlertPayload contains all information for an alert. It is a pure value:
// senders render it but never mutate it.
type AlertPayload struct {
	DisplayName string
	Icon        string
	Actor       string
	ActorShort  string // shortened for display
	Action      Action
	EventType   string
	NativeDelta float64
	StableDelta float64
	LargestIn   *TokenLeg
	LargestOut  *TokenLeg
	Score       int
	Escalate    bool
	Signature   string
	SigShort    string // shortened for display
	Timestamp   time.Time
	Environment string
}

// Sender defines the interface for alert senders.
type Sender interface {
	Send(ctx context.Context, payload *AlertPayload) error
}

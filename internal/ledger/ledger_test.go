package ledger

import (
	"testing"

	"github.com/solwatch/walletwatch/internal/event"
)

const (
	usdcMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	memeMint = "MemeCoinMintAddress1111111111111111111111111"
)

func newTestAccountant() *Accountant {
	return New(9, []string{usdcMint})
}

func TestAccountEmptyTransfers(t *testing.T) {
	a := newTestAccountant()

	mv := a.Account(event.Event{}, "W1")

	if mv.NativeDelta != 0 {
		t.Errorf("native delta: got %f, want 0", mv.NativeDelta)
	}
	if mv.StableDelta != 0 {
		t.Errorf("stable delta: got %f, want 0", mv.StableDelta)
	}
	if mv.LargestIn != nil {
		t.Errorf("largest in: got %+v, want nil", mv.LargestIn)
	}
	if mv.LargestOut != nil {
		t.Errorf("largest out: got %+v, want nil", mv.LargestOut)
	}
}

func TestAccountNativeDelta(t *testing.T) {
	a := newTestAccountant()

	tests := []struct {
		name      string
		transfers []event.NativeTransfer
		want      float64
	}{
		{
			name: "outbound two SOL",
			transfers: []event.NativeTransfer{
				{From: "W1", To: "X", Amount: 2_000_000_000},
			},
			want: -2.0,
		},
		{
			name: "inbound half SOL",
			transfers: []event.NativeTransfer{
				{From: "X", To: "W1", Amount: 500_000_000},
			},
			want: 0.5,
		},
		{
			name: "mixed directions net out",
			transfers: []event.NativeTransfer{
				{From: "W1", To: "X", Amount: 3_000_000_000},
				{From: "Y", To: "W1", Amount: 1_000_000_000},
			},
			want: -2.0,
		},
		{
			name: "zero amount records ignored",
			transfers: []event.NativeTransfer{
				{From: "W1", To: "X", Amount: 0},
				{From: "W1", To: "X", Amount: 1_000_000_000},
			},
			want: -1.0,
		},
		{
			name: "unrelated parties",
			transfers: []event.NativeTransfer{
				{From: "A", To: "B", Amount: 9_000_000_000},
			},
			want: 0,
		},
		{
			name: "native self transfer nets to zero",
			transfers: []event.NativeTransfer{
				{From: "W1", To: "W1", Amount: 1_000_000_000},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mv := a.Account(event.Event{NativeTransfers: tt.transfers}, "W1")
			if mv.NativeDelta != tt.want {
				t.Errorf("native delta: got %f, want %f", mv.NativeDelta, tt.want)
			}
		})
	}
}

func TestAccountStableDelta(t *testing.T) {
	a := newTestAccountant()

	ev := event.Event{
		TokenTransfers: []event.TokenTransfer{
			{Mint: usdcMint, From: "X", To: "W1", Amount: 1500},
			{Mint: usdcMint, From: "W1", To: "Y", Amount: 400},
			{Mint: memeMint, From: "W1", To: "Y", Amount: 99999}, // not stable, excluded from delta
		},
	}

	mv := a.Account(ev, "W1")
	if mv.StableDelta != 1100 {
		t.Errorf("stable delta: got %f, want 1100", mv.StableDelta)
	}
}

func TestAccountLargestLegs(t *testing.T) {
	a := newTestAccountant()

	ev := event.Event{
		TokenTransfers: []event.TokenTransfer{
			{Mint: memeMint, From: "X", To: "W1", Amount: 100},
			{Mint: usdcMint, From: "Y", To: "W1", Amount: 2500},
			{Mint: memeMint, From: "W1", To: "Z", Amount: 50},
		},
	}

	mv := a.Account(ev, "W1")

	if mv.LargestIn == nil || mv.LargestIn.Amount != 2500 || mv.LargestIn.Mint != usdcMint {
		t.Errorf("largest in: got %+v, want {%s 2500}", mv.LargestIn, usdcMint)
	}
	if mv.LargestOut == nil || mv.LargestOut.Amount != 50 || mv.LargestOut.Mint != memeMint {
		t.Errorf("largest out: got %+v, want {%s 50}", mv.LargestOut, memeMint)
	}
}

func TestAccountLargestLegTieKeepsFirst(t *testing.T) {
	a := newTestAccountant()

	ev := event.Event{
		TokenTransfers: []event.TokenTransfer{
			{Mint: "first", From: "X", To: "W1", Amount: 100},
			{Mint: "second", From: "Y", To: "W1", Amount: 100},
		},
	}

	mv := a.Account(ev, "W1")
	if mv.LargestIn == nil || mv.LargestIn.Mint != "first" {
		t.Errorf("tie should keep first-seen record, got %+v", mv.LargestIn)
	}
}

func TestAccountSelfTransferCountsBothSides(t *testing.T) {
	a := newTestAccountant()

	ev := event.Event{
		TokenTransfers: []event.TokenTransfer{
			{Mint: memeMint, From: "W1", To: "W1", Amount: 100},
		},
	}

	mv := a.Account(ev, "W1")

	if mv.LargestIn == nil || mv.LargestIn.Amount != 100 {
		t.Errorf("largest in: got %+v, want amount 100", mv.LargestIn)
	}
	if mv.LargestOut == nil || mv.LargestOut.Amount != 100 {
		t.Errorf("largest out: got %+v, want amount 100", mv.LargestOut)
	}
}

func TestAccountZeroAmountTokenTransferStillRegistersLeg(t *testing.T) {
	a := newTestAccountant()

	ev := event.Event{
		TokenTransfers: []event.TokenTransfer{
			{Mint: memeMint, From: "X", To: "W1", Amount: 0},
		},
	}

	mv := a.Account(ev, "W1")

	if mv.LargestIn == nil || mv.LargestIn.Amount != 0 || mv.LargestIn.Mint != memeMint {
		t.Errorf("largest in: got %+v, want zero-amount leg for %s", mv.LargestIn, memeMint)
	}
	if mv.StableDelta != 0 {
		t.Errorf("stable delta: got %f, want 0", mv.StableDelta)
	}
}

func TestAccountStableSelfTransferNetsToZero(t *testing.T) {
	a := newTestAccountant()

	ev := event.Event{
		TokenTransfers: []event.TokenTransfer{
			{Mint: usdcMint, From: "W1", To: "W1", Amount: 300},
		},
	}

	mv := a.Account(ev, "W1")
	if mv.StableDelta != 0 {
		t.Errorf("stable delta: got %f, want 0", mv.StableDelta)
	}
}

func TestLargestLeg(t *testing.T) {
	tests := []struct {
		name string
		mv   NetMovement
		want float64
	}{
		{"no legs", NetMovement{}, 0},
		{"in only", NetMovement{LargestIn: &Leg{Amount: 5}}, 5},
		{"out only", NetMovement{LargestOut: &Leg{Amount: 7}}, 7},
		{"out bigger", NetMovement{LargestIn: &Leg{Amount: 5}, LargestOut: &Leg{Amount: 7}}, 7},
		{"in bigger", NetMovement{LargestIn: &Leg{Amount: 9}, LargestOut: &Leg{Amount: 7}}, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mv.LargestLeg(); got != tt.want {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestAccountSubdivisionFactor(t *testing.T) {
	// 6 decimals instead of lamports' 9
	a := New(6, nil)

	ev := event.Event{
		NativeTransfers: []event.NativeTransfer{
			{From: "X", To: "W1", Amount: 1_500_000},
		},
	}

	mv := a.Account(ev, "W1")
	if mv.NativeDelta != 1.5 {
		t.Errorf("native delta: got %f, want 1.5", mv.NativeDelta)
	}
}

package event

// TypeUnknown is the sentinel classification for events whose source did not
// carry a type label.
const TypeUnknown = "UNKNOWN"

// NativeTransfer is a single SOL movement in lamports.
type NativeTransfer struct {
	From   string
	To     string
	Amount int64 // lamports
}

// TokenTransfer is a single SPL token movement in display units.
type TokenTransfer struct {
	Mint   string
	From   string
	To     string
	Amount float64
}

// Event is the canonical form of one webhook notification. Every field is
// always populated; absent source fields map to the zero value or the
// documented sentinel.
type Event struct {
	Signature       string
	Type            string
	Actor           string
	NativeTransfers []NativeTransfer
	TokenTransfers  []TokenTransfer
}

package alerts

import "fmt"

const explorerBaseURL = "https://solscan.io"

// ShortenAddress truncates a wallet address to a short display form.
func ShortenAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:4] + ".." + addr[len(addr)-4:]
}

// ShortenSignature truncates a transaction signature to a short display form.
func ShortenSignature(sig string) string {
	if len(sig) <= 16 {
		return sig
	}
	return sig[:8] + ".." + sig[len(sig)-8:]
}

// FormatAmount renders a signed decimal with fixed precision.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%+.3f", v)
}

// TxURL builds an explorer link from a transaction signature. The "n/a"
// sentinel from normalization yields no link.
func TxURL(sig string) string {
	if sig == "" || sig == "n/a" {
		return ""
	}
	return fmt.Sprintf("%s/tx/%s", explorerBaseURL, sig)
}

// TokenURL builds an explorer link for a token mint.
func TokenURL(mint string) string {
	if mint == "" {
		return ""
	}
	return fmt.Sprintf("%s/token/%s", explorerBaseURL, mint)
}

func formatLeg(leg *TokenLeg) string {
	if leg == nil {
		return "—"
	}
	if url := TokenURL(leg.Mint); url != "" {
		return fmt.Sprintf("%.3f [%s](%s)", leg.Amount, ShortenAddress(leg.Mint), url)
	}
	return fmt.Sprintf("%.3f %s", leg.Amount, ShortenAddress(leg.Mint))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

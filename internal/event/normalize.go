package event

import "strings"

// Normalize extracts a canonical Event from a loosely-typed webhook record.
// Enhanced-transaction payloads have shifted field names across provider
// versions, so every field is probed through an ordered list of alternates.
// Normalize is total: it never panics and never returns an error, no matter
// how malformed the input is.
func Normalize(raw map[string]any) Event {
	ev := Event{
		Signature: resolveSignature(raw),
		Type:      resolveType(raw),
		Actor:     resolveActor(raw),
	}

	ev.NativeTransfers = parseNativeTransfers(listField(raw, "nativeTransfers"))
	tokens := listField(raw, "tokenTransfers")
	if tokens == nil {
		tokens = listField(raw, "fungibleTransfers")
	}
	ev.TokenTransfers = parseTokenTransfers(tokens)

	return ev
}

func resolveType(raw map[string]any) string {
	if s := stringField(raw, "type"); s != "" {
		return strings.ToUpper(s)
	}
	return TypeUnknown
}

// resolveActor tries, in priority order: the explicit top-level fee payer
// field, the first entry of the accountData list, and the first account key
// of the embedded transaction message. First non-empty match wins.
func resolveActor(raw map[string]any) string {
	if s := stringField(raw, "feePayer", "accountAddress"); s != "" {
		return s
	}

	if accounts := listField(raw, "accountData"); len(accounts) > 0 {
		if m, ok := accounts[0].(map[string]any); ok {
			if s := stringField(m, "account"); s != "" {
				return s
			}
		}
	}

	if msg := mapField(mapField(raw, "transaction"), "message"); msg != nil {
		if keys := listField(msg, "accountKeys"); len(keys) > 0 {
			switch k := keys[0].(type) {
			case string:
				return k
			case map[string]any:
				return stringField(k, "pubkey")
			}
		}
	}

	return ""
}

func resolveSignature(raw map[string]any) string {
	if s := stringField(raw, "signature", "txSignature"); s != "" {
		return s
	}
	if tx := mapField(raw, "transaction"); tx != nil {
		if sigs := listField(tx, "signatures"); len(sigs) > 0 {
			if s, ok := sigs[0].(string); ok && s != "" {
				return s
			}
		}
	}
	return "n/a"
}

func parseNativeTransfers(items []any) []NativeTransfer {
	var out []NativeTransfer
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, NativeTransfer{
			From:   stringField(m, "fromUserAccount", "from"),
			To:     stringField(m, "toUserAccount", "to"),
			Amount: int64(numberField(m, "amount")),
		})
	}
	return out
}

func parseTokenTransfers(items []any) []TokenTransfer {
	var out []TokenTransfer
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, TokenTransfer{
			Mint:   stringField(m, "mint", "tokenAddress", "assetId"),
			From:   stringField(m, "fromUserAccount", "from"),
			To:     stringField(m, "toUserAccount", "to"),
			Amount: numberField(m, "tokenAmount", "amount"),
		})
	}
	return out
}

// stringField returns the first non-empty string value among the given keys.
func stringField(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// numberField returns the first numeric value among the given keys. JSON
// decoding yields float64 but some producers emit integers through typed
// encoders, so both are accepted.
func numberField(m map[string]any, keys ...string) float64 {
	for _, key := range keys {
		switch v := m[key].(type) {
		case float64:
			return v
		case int64:
			return float64(v)
		case int:
			return float64(v)
		}
	}
	return 0
}

func mapField(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	sub, _ := m[key].(map[string]any)
	return sub
}

func listField(m map[string]any, key string) []any {
	if m == nil {
		return nil
	}
	list, _ := m[key].([]any)
	return list
}

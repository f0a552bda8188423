package normalizer

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Yield renders the model's Yield field. Numbers are rounded to two
// decimals, a one-element array is unwrapped, and anything absent or
// unrecognised renders as "N/A".
func Yield(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return notAvailable
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return formatNumber(n)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
		return notAvailable
	}

	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil && len(arr) == 1 {
		return Yield(arr[0])
	}
	return notAvailable
}

package gateway

import (
	"net/url"
	"sort"
	"strings"
)

// EncodeParams serializes params in the gateway's canonical form: entries
// with empty values are dropped, the rest are sorted by key in byte-wise
// ascending order and percent-encoded, then joined as k=v pairs with '&'.
// The gateway recomputes the signature over this exact string on its side,
// so the ordering and escaping here are part of the wire contract.
func EncodeParams(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escape(k))
		b.WriteByte('=')
		b.WriteString(escape(params[k]))
	}
	return b.String()
}

// escape percent-encodes with space as %20, never '+'. The signed string and
// the outbound query must use the same escaping or signatures stop matching
// on any value containing reserved characters.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

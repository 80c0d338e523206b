// Package jsonio implements the JSON-ready export/import shapes: node-link
// and edge-list graph codecs (thin aliases over digraph's own exporters,
// which already produce the deterministic JSON-ready shape), plus the
// higher-level result codecs — FlowSummary, CapacityEnvelope,
// FailurePatternResult — with canonical numeric-key round-tripping so a
// map[float64]... value survives a JSON encode/decode cycle bit-for-bit.
//
// Encoding uses stdlib encoding/json throughout; nothing about these
// shapes calls for a third-party codec.
package jsonio

import "strconv"

// formatKey renders v as the shortest decimal string that parses back to
// the exact same float64 bit pattern (strconv's 'g'/-1 precision is
// correctly rounded), so float64-keyed maps survive a string-keyed JSON
// round trip bit-for-bit.
func formatKey(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseKey(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// EncodeFloat64Float64Map renders a map[float64]float64 with canonical
// string keys, suitable for json.Marshal.
func EncodeFloat64Float64Map(m map[float64]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[formatKey(k)] = v
	}
	return out
}

// DecodeFloat64Float64Map is the inverse of EncodeFloat64Float64Map.
func DecodeFloat64Float64Map(m map[string]float64) (map[float64]float64, error) {
	out := make(map[float64]float64, len(m))
	for k, v := range m {
		f, err := parseKey(k)
		if err != nil {
			return nil, err
		}
		out[f] = v
	}
	return out, nil
}

// EncodeFloat64Int64Map renders a map[float64]int64 (a frequency
// histogram) with canonical string keys.
func EncodeFloat64Int64Map(m map[float64]int64) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[formatKey(k)] = v
	}
	return out
}

// DecodeFloat64Int64Map is the inverse of EncodeFloat64Int64Map.
func DecodeFloat64Int64Map(m map[string]int64) (map[float64]int64, error) {
	out := make(map[float64]int64, len(m))
	for k, v := range m {
		f, err := parseKey(k)
		if err != nil {
			return nil, err
		}
		out[f] = v
	}
	return out, nil
}

package handler

// PARAMETER COERCION:
// The core only accepts typed values, so the adapter converts path segments,
// query strings and JSON fields here. A value that is missing or has the
// wrong shape is NOT rejected here. It becomes a value the core is certain
// to refuse (0 for an id, -1 for an index, "" for a label), and the core
// reports it with the same ordered error it would give any other bad input.
// That keeps a single source of truth for which error wins.

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Out-of-domain stand-ins for malformed input.
const (
	invalidID    int64 = 0
	invalidIndex       = -1
)

// parseID converts a path or query id. Anything that is not a base-10
// integer becomes invalidID.
func parseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return invalidID
	}
	return id
}

// jsonInt reads raw as an integral JSON number. Strings, booleans, null,
// fractions and missing fields all report ok=false. 2.0 counts as 2.
func jsonInt(raw json.RawMessage) (int64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' {
		return 0, false
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil || n == "" {
		return 0, false
	}
	if i, err := n.Int64(); err == nil {
		return i, true
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// jsonID reads an id field, falling back to invalidID.
func jsonID(raw json.RawMessage) int64 {
	if id, ok := jsonInt(raw); ok {
		return id
	}
	return invalidID
}

// jsonIndex reads an option index, falling back to invalidIndex. Values too
// large for an int are out of range for any poll, so they map to invalidIndex
// as well.
func jsonIndex(raw json.RawMessage) int {
	i, ok := jsonInt(raw)
	if !ok || i > math.MaxInt32 || i < math.MinInt32 {
		return invalidIndex
	}
	return int(i)
}

// jsonString reads a string field, falling back to "".
func jsonString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// jsonStrings reads an array of labels. A non-array yields nil (no options);
// a non-string element yields "" in its slot so the label check trips on it.
func jsonStrings(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = jsonString(item)
	}
	return out
}

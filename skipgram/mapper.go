package skipgram

import (
	"fmt"
	"strings"
)

// UnknownCodePolicy decides how codes missing from the vocabulary are indexed.
type UnknownCodePolicy string

const (
	// PolicyFirstEntry maps unknown codes to index 0. This collides with the first
	// vocabulary entry and is kept for compatibility with existing vocab.tsv exports.
	PolicyFirstEntry UnknownCodePolicy = "first-entry"
	// PolicyReject fails on the first unknown code.
	PolicyReject UnknownCodePolicy = "reject"
	// PolicySentinel maps unknown codes to Dictionary.Len(), one past the last index.
	PolicySentinel UnknownCodePolicy = "sentinel"
)

// ParseUnknownCodePolicy accepts the policy names case-insensitively.
func ParseUnknownCodePolicy(s string) (UnknownCodePolicy, error) {
	switch p := UnknownCodePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyFirstEntry, nil
	case PolicyFirstEntry, PolicyReject, PolicySentinel:
		return p, nil
	default:
		return "", fmt.Errorf("unknown code policy %q (want %s, %s or %s)", s, PolicyFirstEntry, PolicyReject, PolicySentinel)
	}
}

// MapToIndices replaces every code with its dictionary index.
func MapToIndices(codes []string, dict *Dictionary, policy UnknownCodePolicy) ([]int, error) {
	policy, err := ParseUnknownCodePolicy(string(policy))
	if err != nil {
		return nil, err
	}
	fallback := 0
	switch policy {
	case PolicySentinel:
		fallback = dict.Len()
	case PolicyReject:
		fallback = -1
	}
	out := make([]int, len(codes))
	for i, code := range codes {
		if idx, ok := dict.Index(code); ok {
			out[i] = idx
			continue
		}
		if fallback < 0 {
			return nil, &UnknownCodeError{Code: code, Position: i}
		}
		out[i] = fallback
	}
	return out, nil
}

// IndexRecords attaches an index to each record under the given policy.
func IndexRecords(records []Record, dict *Dictionary, policy UnknownCodePolicy) ([]IndexedRecord, error) {
	codes := make([]string, len(records))
	for i, rec := range records {
		codes[i] = rec.Code
	}
	indices, err := MapToIndices(codes, dict, policy)
	if err != nil {
		return nil, err
	}
	out := make([]IndexedRecord, len(records))
	for i, rec := range records {
		out[i] = IndexedRecord{Record: rec, Index: indices[i]}
	}
	return out, nil
}

// CountUnknown reports how many records carry a code missing from dict.
func CountUnknown(records []Record, dict *Dictionary) int {
	n := 0
	for _, rec := range records {
		if _, ok := dict.Index(rec.Code); !ok {
			n++
		}
	}
	return n
}

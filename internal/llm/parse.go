package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Greedy on purpose: first '{' to last '}'.
var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

type keywordPayload struct {
	Primary   *[]string `json:"primary"`
	Secondary *[]string `json:"secondary"`
}

// ParseKeywords extracts the keyword object from a model reply. Both arrays
// must be present. Entries are trimmed, blanks and case-insensitive duplicates
// dropped, and each list cut to the requested size.
func ParseKeywords(raw string, primary, secondary int) ([]string, []string, error) {
	fragment := jsonObject.FindString(raw)
	if fragment == "" {
		return nil, nil, fmt.Errorf("%w: no json object found", ErrMalformedReply)
	}
	var p keywordPayload
	if err := json.Unmarshal([]byte(fragment), &p); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	if p.Primary == nil {
		return nil, nil, fmt.Errorf("%w: primary missing", ErrMalformedReply)
	}
	if p.Secondary == nil {
		return nil, nil, fmt.Errorf("%w: secondary missing", ErrMalformedReply)
	}
	return normalizeKeywords(*p.Primary, primary), normalizeKeywords(*p.Secondary, secondary), nil
}

func normalizeKeywords(in []string, limit int) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, kw := range in {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		key := strings.ToLower(kw)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, kw)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

package domain

import (
	"fmt"
	"strings"
)

// Flag is a tri-state yes/no attribute. Unset and Negative score the same
// everywhere except rules that key off an explicit "no".
type Flag int

const (
	FlagUnset Flag = iota
	FlagAffirmative
	FlagNegative
)

// Accepted literal tokens. Matching is exact after trimming whitespace.
var (
	affirmativeTokens = map[string]bool{"yes": true, "是": true}
	negativeTokens    = map[string]bool{"no": true, "否": true}
)

// ParseFlag maps a raw cell value onto a Flag. Anything that is not an exact
// affirmative or negative token is FlagUnset.
func ParseFlag(raw string) Flag {
	s := strings.TrimSpace(raw)
	switch {
	case affirmativeTokens[s]:
		return FlagAffirmative
	case negativeTokens[s]:
		return FlagNegative
	default:
		return FlagUnset
	}
}

// FlagFromValue parses any cell value by its string form.
func FlagFromValue(v any) Flag {
	switch t := v.(type) {
	case nil:
		return FlagUnset
	case Flag:
		return t
	case string:
		return ParseFlag(t)
	default:
		return ParseFlag(fmt.Sprint(t))
	}
}

func (f Flag) IsAffirmative() bool { return f == FlagAffirmative }

func (f Flag) IsNegative() bool { return f == FlagNegative }

// String returns the canonical storage token: "yes", "no" or "".
func (f Flag) String() string {
	switch f {
	case FlagAffirmative:
		return "yes"
	case FlagNegative:
		return "no"
	default:
		return ""
	}
}

package aggregate

import (
	"fmt"
	"strings"
)

// Mode controls how duplicate attempts at the same question fold into
// statistics.
type Mode string

const (
	// ModeAll counts every record; duplicates inflate counts on purpose,
	// which measures how often a model was re-asked the same question.
	ModeAll Mode = "all"
	// ModeUnique counts exactly one record per (model, question) bucket:
	// the last one in traversal order.
	ModeUnique Mode = "unique"
	// ModeIntersection behaves like unique but keeps only questions every
	// model present has attempted.
	ModeIntersection Mode = "intersection"
)

// DefaultMode is applied when a request does not name a mode.
const DefaultMode = ModeUnique

// ParseMode validates a caller-supplied mode string, mapping the empty
// string to the default.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultMode, nil
	case ModeAll:
		return ModeAll, nil
	case ModeUnique:
		return ModeUnique, nil
	case ModeIntersection:
		return ModeIntersection, nil
	default:
		return "", fmt.Errorf("invalid mode %q (expected all|unique|intersection)", s)
	}
}

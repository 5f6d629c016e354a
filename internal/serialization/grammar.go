package serialization

import (
	"strconv"
	"strings"
)

// pluralize appends a naive "s" when count > 1. Irregular plurals are not
// handled.
func pluralize(count int, noun string) string {
	if count > 1 {
		return noun + "s"
	}
	return noun
}

// countPhrase renders "2 chairs" / "1 desk".
func countPhrase(count int, noun string) string {
	return strconv.Itoa(count) + " " + pluralize(count, noun)
}

// joinList joins items for prose: "a", "a and b", "a, b, and c".
func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

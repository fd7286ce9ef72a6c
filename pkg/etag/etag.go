package etag

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Generate returns a weak ETag (W/"<hash>") for a serialized representation.
func Generate(payload []byte) string {
	sum := xxhash.Sum64(payload)
	return `W/"` + strconv.FormatUint(sum, 16) + `"`
}

// Parse extracts the opaque value from a strong ("v") or weak (W/"v") ETag.
func Parse(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "W/")
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		return value[1 : len(value)-1]
	}
	return value
}

// NoneMatch reports whether the request should be served in full, i.e. none of the
// tags listed in the If-None-Match header match current. Comparison is weak.
func NoneMatch(ifNoneMatch, current string) bool {
	ifNoneMatch = strings.TrimSpace(ifNoneMatch)
	if ifNoneMatch == "" {
		return true
	}
	if ifNoneMatch == "*" {
		return current == ""
	}

	want := Parse(current)
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		if Parse(candidate) == want {
			return false
		}
	}
	return true
}

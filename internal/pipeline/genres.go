package pipeline

import (
	"fmt"
	"strings"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// DecodeGenres turns a genre list cell into a comma-joined tag string.
//
// The cell is decoded as a JSON5 array of strings. That covers JSON arrays
// (["Fiction","Drama"]) and the single-quoted form used by the source dataset
// (['Fiction', 'Drama']), including \' escapes, mixed quote styles and a
// trailing comma. Anything that is not an array of strings is
// ErrMalformedGenres. A list that joins to the empty string is ErrEmptyGenres.
func DecodeGenres(raw string) (string, error) {
	var tags []string
	if err := json5.Unmarshal([]byte(raw), &tags); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedGenres, err)
	}
	// null decodes without error but is not a list
	if tags == nil {
		return "", fmt.Errorf("%w: %q is not a list", ErrMalformedGenres, raw)
	}

	joined := strings.Join(tags, ",")
	if joined == "" {
		return "", fmt.Errorf("%w: %q", ErrEmptyGenres, raw)
	}
	return joined, nil
}

// Package youtube normalises YouTube links into bare video identifiers.
package youtube

import "regexp"

// idLength is the fixed length of a YouTube video identifier.
const idLength = 11

// linkPattern matches watch, short, embed, /v/ and channel-qualified
// URL forms. Group 2 carries the candidate identifier; anything after a
// '#', '&' or '?' is excluded so trailing query parameters are ignored.
var linkPattern = regexp.MustCompile(`^.*(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)

// ExtractID pulls the 11-character video identifier out of an arbitrary
// YouTube URL. The second return value is false when the input carries no
// valid identifier; candidates of any other length are rejected outright,
// never truncated or padded.
func ExtractID(url string) (string, bool) {
	m := linkPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	if len(m[2]) != idLength {
		return "", false
	}
	return m[2], true
}

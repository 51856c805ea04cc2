package sanitize

// Policy controls where an allow-listed character may survive inside a token.
type Policy uint8

const (
	KeepAtHead Policy = 1 << iota
	KeepAtBody
	KeepAtTail
)

const (
	// KeepEverywhere is used when sanitizing a whole string rather than a token.
	KeepEverywhere = KeepAtHead | KeepAtBody | KeepAtTail

	// FirstToken keeps a leading dot (hidden files) and interior punctuation.
	FirstToken = KeepAtHead | KeepAtBody

	// NextToken drops punctuation at both ends so separators don't pile up at
	// word boundaries.
	NextToken = KeepAtBody
)

type position int

const (
	head position = iota
	body
	tail
)

// positionOf resolves index i of a token of length n. Index 0 is checked
// first, so a single-character token is always a head.
func positionOf(i, n int) position {
	switch {
	case i == 0:
		return head
	case i == n-1:
		return tail
	default:
		return body
	}
}

func (p Policy) allows(pos position) bool {
	switch pos {
	case head:
		return p&KeepAtHead != 0
	case tail:
		return p&KeepAtTail != 0
	default:
		return p&KeepAtBody != 0
	}
}

package model

// SegmentKind tags an extended summary segment.
type SegmentKind string

const (
	SegmentText    SegmentKind = "text"
	SegmentAddress SegmentKind = "address"
	SegmentToken   SegmentKind = "token"
)

// Segment is one piece of a structured summary line.
type Segment struct {
	Kind    SegmentKind `json:"type"`
	Text    string      `json:"text,omitempty"`
	Address *AddressRef `json:"address,omitempty"`
	Token   *TokenRef   `json:"token,omitempty"`
}

// AddressRef is an address with its resolved display name.
type AddressRef struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// TokenRef references a token and, optionally, a raw integer amount of it.
// Known is false when no metadata was available, in which case Decimals is
// meaningless and Symbol holds the best name found for the address.
type TokenRef struct {
	Address   string `json:"address"`
	Amount    string `json:"amount,omitempty"`
	Decimals  uint8  `json:"decimals"`
	Symbol    string `json:"symbol"`
	Precision int    `json:"precision,omitempty"`
	Known     bool   `json:"known"`
}

// Action is one statement of intent, e.g. a single approval.
type Action struct {
	Kind     string    `json:"kind"`
	Segments []Segment `json:"segments"`
}

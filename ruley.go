package ruley

import "fmt"

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a window of an input message. A span
// denotes a start position and the position just behind the end, i.e. it is
// half-open. Spans never own the characters they cover; they are always
// interpreted relative to a message string held by the caller.
type Span [2]int // (x…y)

// SpanOf returns a span covering all of input.
func SpanOf(input string) Span {
	return Span{0, len(input)}
}

// From returns the start value of a span.
func (s Span) From() int {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() int {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() int {
	return s[1] - s[0]
}

// IsNull is a predicate: does s cover no characters at all?
func (s Span) IsNull() bool {
	return s[1] <= s[0]
}

// Sub returns a sub-span of s, given offsets relative to the start of s.
func (s Span) Sub(from, to int) Span {
	return Span{s[0] + from, s[0] + to}
}

// Within is a predicate: is s completely contained in outer?
func (s Span) Within(outer Span) bool {
	return s[0] >= outer[0] && s[1] <= outer[1]
}

// Text returns the characters of input covered by s. No copy is made.
func (s Span) Text(input string) string {
	return input[s[0]:s[1]]
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. Token categories are defined by
// scanners.
type TokType int

// Token represents an input token of rule definitions.
//
// An example would be a token for a rule number:
//
//    TokType = Number      // identifier for this kind of tokens
//    Lexeme  = "42"        // lexeme how it appeared in the input line
//    Span    = 4…6         // occured from position 4 in the input line
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Span() Span
}

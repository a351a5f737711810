package scanner

import (
	"fmt"

	"github.com/npillmayer/ruley"
)

// Token categories of rule definitions.
const (
	EOF    ruley.TokType = -1
	Number ruley.TokType = iota
	Char
	Colon
	Pipe
)

// TokenName returns a readable name for a token category.
func TokenName(typ ruley.TokType) string {
	switch typ {
	case EOF:
		return "end of line"
	case Number:
		return "number"
	case Char:
		return "quoted character"
	case Colon:
		return "':'"
	case Pipe:
		return "'|'"
	}
	return fmt.Sprintf("token(%d)", int(typ))
}

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() ruley.Token
	SetErrorHandler(func(error))
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used by the LexMachine
// scanner.
type DefaultToken struct {
	kind   ruley.TokType
	lexeme string
	span   ruley.Span
}

// MakeDefaultToken creates a token.
func MakeDefaultToken(typ ruley.TokType, lexeme string, span ruley.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() ruley.TokType {
	return t.kind
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() ruley.Span {
	return t.span
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("%s %q @%v", TokenName(t.kind), t.lexeme, t.span)
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

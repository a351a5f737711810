package scanner

import (
	"strings"
	"sync"

	"github.com/npillmayer/ruley"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals (':', '|', …) and a map for translating token strings to
// their values.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, tokenIds map[string]ruley.TokType) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	init(adapter.Lexer)
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{s, logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
}

var _ Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// NextToken is part of the Tokenizer interface.
// Unconsumable input is reported to the error handler and skipped.
func (lms *LMScanner) NextToken() ruley.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		ui, is := err.(*machines.UnconsumedInput)
		if !is {
			eof = true
			break
		}
		next := ui.FailTC
		if next <= lms.scanner.TC { // always make progress
			next = lms.scanner.TC + 1
		}
		if next > len(lms.scanner.Text) {
			next = len(lms.scanner.Text)
		}
		lms.scanner.TC = next
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return MakeDefaultToken(EOF, "", ruley.Span{lms.scanner.TC, lms.scanner.TC})
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("token %d | %q", token.Type, token.Lexeme)
	return MakeDefaultToken(
		ruley.TokType(token.Type),
		string(token.Lexeme),
		ruley.Span{token.TC, token.TC + len(token.Lexeme)},
	)
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id ruley.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(id), string(m.Bytes), m), nil
	}
}

// --- Rule definitions ------------------------------------------------------

var ruleLexer struct {
	once    sync.Once
	adapter *LMAdapter
	err     error
}

var ruleLiterals = []string{":", "|"}

var ruleTokenIds = map[string]ruley.TokType{
	"NUM":  Number,
	"CHAR": Char,
	":":    Colon,
	"|":    Pipe,
}

// RuleLexer returns a lexmachine adapter for rule definitions. The DFA is
// compiled on first use.
func RuleLexer() (*LMAdapter, error) {
	ruleLexer.once.Do(func() {
		init := func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte(`[0-9]+`), MakeToken("NUM", ruleTokenIds["NUM"]))
			lexer.Add([]byte(`\"[^"]\"`), MakeToken("CHAR", ruleTokenIds["CHAR"]))
			lexer.Add([]byte(`( |\t|\r|\n)+`), Skip)
		}
		ruleLexer.adapter, ruleLexer.err = NewLMAdapter(init, ruleLiterals, ruleTokenIds)
	})
	return ruleLexer.adapter, ruleLexer.err
}

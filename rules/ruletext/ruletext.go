/*
Package ruletext reads rule tables and messages from text.

Input consists of rule definitions, a blank line, and messages, one per line:

    0: 4 1 5
    1: 2 3 | 3 2
    4: "a"
    5: "b"
    …

    ababbb
    bababa

Rule definitions are tokenized using package scanner, which is backed by
lexmachine.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ruletext

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/ruley"
	"github.com/npillmayer/ruley/rules"
	"github.com/npillmayer/ruley/rules/scanner"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ruley.rules'.
func tracer() tracing.Trace {
	return tracing.Select("ruley.rules")
}

// ErrSyntax is returned for rule definitions which are neither of the form
// `id: "c"` nor of the form `id: n1 n2 … | m1 m2 …`.
var ErrSyntax = errors.New("syntax error in rule definition")

// Input is the content of an input text: a rule table and the messages to
// match.
type Input struct {
	Rules    *rules.Table
	Messages []string
}

// ReadFile reads an input file. See Read.
func ReadFile(path string) (*Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read reads rule definitions up to the first blank line, then messages up to
// the next blank line or the end of input. Rule references are not checked.
func Read(r io.Reader) (*Input, error) {
	lines := bufio.NewScanner(r)
	b := rules.NewTableBuilder()
	lineno := 0
	for lines.Scan() {
		lineno++
		line := strings.TrimSpace(lines.Text())
		if line == "" {
			break
		}
		id, rule, err := ParseRule(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		b.Define(id, rule)
	}
	table, err := b.Table()
	if err != nil {
		return nil, err
	}
	input := &Input{Rules: table}
	for lines.Scan() {
		lineno++
		line := strings.TrimSpace(lines.Text())
		if line == "" {
			break
		}
		input.Messages = append(input.Messages, line)
	}
	if err := lines.Err(); err != nil {
		return nil, err
	}
	tracer().Infof("read %d rules and %d messages", table.Size(), len(input.Messages))
	return input, nil
}

// ParseRules creates a rule table from a list of rule definitions.
func ParseRules(lines ...string) (*rules.Table, error) {
	b := rules.NewTableBuilder()
	for _, line := range lines {
		id, rule, err := ParseRule(line)
		if err != nil {
			return nil, err
		}
		b.Define(id, rule)
	}
	return b.Table()
}

// ParsePatch parses a rule definition into a patch for a table.
func ParsePatch(line string) (rules.Patch, error) {
	id, rule, err := ParseRule(line)
	return rules.Patch{ID: id, Rule: rule}, err
}

// ParseRule parses a single rule definition of one of the forms
//
//    id: "c"
//    id: n1 n2 … | m1 m2 … | …
//
func ParseRule(line string) (rules.ID, rules.Rule, error) {
	lexer, err := scanner.RuleLexer()
	if err != nil {
		return 0, rules.Rule{}, err
	}
	scan, err := lexer.Scanner(line)
	if err != nil {
		return 0, rules.Rule{}, err
	}
	p := &parser{line: line, scan: scan}
	scan.SetErrorHandler(func(e error) {
		if p.err == nil {
			p.err = fmt.Errorf("%w: %q: %v", ErrSyntax, line, e)
		}
	})
	p.advance()
	id, rule := p.rule()
	if p.err != nil {
		return 0, rules.Rule{}, p.err
	}
	return id, rule, nil
}

// parser is a recursive descent parser for a single rule definition.
type parser struct {
	line  string
	scan  scanner.Tokenizer
	token ruley.Token // lookahead
	err   error
}

func (p *parser) advance() {
	p.token = p.scan.NextToken()
}

func (p *parser) fail(expected string) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: %q: expected %s at %d, found %s", ErrSyntax, p.line,
			expected, p.token.Span().From(), scanner.TokenName(p.token.TokType()))
	}
}

func (p *parser) expect(typ ruley.TokType) (string, bool) {
	if p.err != nil {
		return "", false
	}
	if p.token.TokType() != typ {
		p.fail(scanner.TokenName(typ))
		return "", false
	}
	lexeme := p.token.Lexeme()
	p.advance()
	return lexeme, true
}

func (p *parser) number() rules.ID {
	lexeme, ok := p.expect(scanner.Number)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(lexeme)
	if err != nil {
		p.err = fmt.Errorf("%w: %q: %v", ErrSyntax, p.line, err)
	} else if rules.ID(n) > rules.MaxID {
		p.err = fmt.Errorf("%w: %q: rule number %d exceeds %d", ErrSyntax, p.line, n, rules.MaxID)
	}
	return rules.ID(n)
}

// rule ::= Number ':' ( Char | seq { '|' seq } ) EOF
func (p *parser) rule() (rules.ID, rules.Rule) {
	id := p.number()
	p.expect(scanner.Colon)
	var r rules.Rule
	if p.err == nil && p.token.TokType() == scanner.Char {
		lexeme := p.token.Lexeme()
		p.advance()
		r = rules.T(lexeme[1]) // lexeme is `"c"`
	} else {
		seqs := []rules.Sequence{p.sequence()}
		for p.err == nil && p.token.TokType() == scanner.Pipe {
			p.advance()
			seqs = append(seqs, p.sequence())
		}
		r = rules.Alt(seqs...)
	}
	p.expect(scanner.EOF)
	return id, r
}

// seq ::= Number { Number }
func (p *parser) sequence() rules.Sequence {
	seq := rules.Sequence{p.number()}
	for p.err == nil && p.token.TokType() == scanner.Number {
		seq = append(seq, p.number())
	}
	return seq
}

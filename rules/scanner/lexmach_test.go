package scanner

import (
	"testing"

	"github.com/npillmayer/ruley"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var inputStrings = []string{
	`0: 4 1 5`,
	`1: "a"`,
	`8: 42 | 42 8`,
	`11: 42 31 | 42 11 31`,
	"  3:\t1  ",
}

var tokenCounts = []int{5, 3, 6, 8, 3}

func TestRuleLexer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ruley.scanner")
	defer teardown()
	//
	LM, err := RuleLexer()
	if err != nil {
		t.Fatal(err)
	}
	for i, input := range inputStrings {
		t.Logf("------+-------------------+--------")
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Error(err)
		}
		token := sc.NextToken()
		count := 0
		for token.TokType() != EOF {
			t.Logf(" %4d | %17s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = sc.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-------------------+--------")
}

func TestTokenCategories(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ruley.scanner")
	defer teardown()
	//
	LM, err := RuleLexer()
	if err != nil {
		t.Fatal(err)
	}
	sc, _ := LM.Scanner(`12: "x" | 3`)
	expected := []ruley.TokType{Number, Colon, Char, Pipe, Number, EOF}
	for i, typ := range expected {
		token := sc.NextToken()
		if token.TokType() != typ {
			t.Errorf("token #%d: expected %s, have %s", i, TokenName(typ), TokenName(token.TokType()))
		}
	}
	sc, _ = LM.Scanner(`12: "x"`)
	sc.NextToken()
	sc.NextToken()
	if token := sc.NextToken(); token.Span() != (ruley.Span{4, 7}) {
		t.Errorf("expected quoted char at (4…7), is at %v", token.Span())
	}
}

func TestScanError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ruley.scanner")
	defer teardown()
	//
	LM, err := RuleLexer()
	if err != nil {
		t.Fatal(err)
	}
	sc, _ := LM.Scanner(`1: "ab" 2`)
	var errs []error
	sc.SetErrorHandler(func(e error) {
		errs = append(errs, e)
	})
	for token := sc.NextToken(); token.TokType() != EOF; token = sc.NextToken() {
		t.Logf("token %v", token)
	}
	if len(errs) == 0 {
		t.Errorf("expected scanner to report an error for multi-character terminal")
	}
}

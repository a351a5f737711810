/*
Package scanner defines an interface for tokenizers of rule definitions, together
with an implementation based on lexmachine.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Rule definitions consist of only a handful of token categories:

    42: 9 14 | 10 1       Number Colon Number Number Pipe Number Number
    14: "b"               Number Colon Char

RuleLexer returns an adapter compiled for these categories. A scanner is
instantiated for each concrete input line. The scanner implements the
Tokenizer interface.

	lexer, err := scanner.RuleLexer()
	if err != nil {
		// do error handling
	}
	scan, err := lexer.Scanner(`8: 42 | 42 8`)
	if err != nil {
		// do error handling
	}
	for token := scan.NextToken(); token.TokType() != scanner.EOF; token = scan.NextToken() {
		…
	}

Clients who need other token categories may set up lexmachine themselves and
wrap it with NewLMAdapter.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ruley.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("ruley.scanner")
}

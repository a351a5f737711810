/*
Ruley matches messages against a rule table, as found in puzzle inputs of
the form

    0: 4 1 5
    1: 2 3 | 3 2
    …

    ababbb
    bababa

Usage:

    ruley count FILE      count messages matching rule 0, before and after
                          patching rules 8 and 11 into loops
    ruley match FILE MSG  check single messages
    ruley dump FILE       print the rule table, optionally as GraphViz
    ruley repl FILE       match messages interactively

Environment variables RULEY_TRACE, RULEY_PROGRESS, RULEY_PARALLEL,
RULEY_PATCH_8 and RULEY_PATCH_11 set defaults for the corresponding flags.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'ruley.cli'.
func tracer() tracing.Trace {
	return tracing.Select("ruley.cli")
}

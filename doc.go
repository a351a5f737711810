/*
Package ruley decides membership of messages in languages given by
numbered production rules.

Ruley is a small tool for a peculiar class of grammars: every rule is either
a single character or an alternation of rule sequences, and rules may refer to
themselves or to each other. Messages are matched against rule 0 by a
memoizing, backtracking span matcher. Package structure is as follows:

■ rules: Package rules implements the rule table, a builder for it, and some
static analysis of rule dependencies.

■ rules/scanner and rules/ruletext: Reading rule definitions and messages from text.

■ match: Package match implements the span matcher together with its
memoization cache.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ruley

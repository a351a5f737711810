package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/ruley"
	"github.com/npillmayer/ruley/match"
	"github.com/npillmayer/ruley/rules"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newReplCmd(cfg Config) *cobra.Command {
	return &cobra.Command{
		Use:   "repl FILE",
		Short: "Match messages interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args[0])
			if err != nil {
				return err
			}
			repl, err := readline.New("ruley> ")
			if err != nil {
				return err
			}
			defer repl.Close()
			intp := &Intp{
				cfg:     cfg,
				matcher: match.New(input.Rules),
				repl:    repl,
			}
			pterm.Info.Println("Welcome to ruley")
			tracer().Infof("Quit with <ctrl>D or :quit")
			intp.REPL()
			return nil
		},
	}
}

// Intp is our interpreter object. Input lines are either messages to match
// against rule 0, or commands starting with a colon.
type Intp struct {
	cfg     Config
	matcher *match.Matcher
	repl    *readline.Instance
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval evaluates a single line. It returns true if the user asked to quit.
func (intp *Intp) Eval(line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		return false, intp.match(0, line)
	}
	args := strings.Fields(line)
	switch args[0] {
	case ":quit", ":q":
		return true, nil
	case ":patch":
		var defs []string // ":patch 8: 42 | 42 8" replaces a single rule
		if len(args) > 1 {
			defs = []string{strings.TrimSpace(strings.TrimPrefix(line, ":patch"))}
		}
		patches, err := intp.cfg.patches(defs)
		if err != nil {
			return false, err
		}
		intp.matcher.Patch(patches...)
		for _, p := range patches {
			pterm.Info.Printfln("rule %s", p)
		}
	case ":clear":
		intp.matcher.Reset()
		pterm.Info.Println("cache cleared")
	case ":stats":
		s := intp.matcher.Stats()
		pterm.Info.Printfln("%d cache entries, %d hits, %d misses, %d partitions",
			s.Entries, s.Hits, s.Misses, s.Partitions)
	case ":rule":
		if len(args) != 3 {
			return false, fmt.Errorf("usage: :rule N MSG")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return false, fmt.Errorf("not a rule number: %s", args[1])
		}
		if _, ok := intp.matcher.Table().Lookup(rules.ID(n)); !ok {
			return false, fmt.Errorf("%w: %d", rules.ErrUndefinedRule, n)
		}
		return false, intp.match(rules.ID(n), args[2])
	default:
		return false, fmt.Errorf("unknown command %s", args[0])
	}
	return false, nil
}

func (intp *Intp) match(id rules.ID, msg string) error {
	var ok bool
	err := guard(func() {
		ok = intp.matcher.MatchRule(id, msg, ruley.SpanOf(msg))
	})
	if err != nil {
		intp.matcher.Reset() // cache may hold partial results
		return err
	}
	if ok {
		pterm.Success.Printfln("%d ⊢ %s", id, msg)
	} else {
		pterm.Warning.Printfln("%d ⊬ %s", id, msg)
	}
	return nil
}

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/npillmayer/ruley/match"
	"github.com/npillmayer/ruley/rules"
	"github.com/npillmayer/ruley/rules/ruletext"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// tracing keys of all packages of this module
var traceKeys = []string{"ruley.cli", "ruley.rules", "ruley.scanner", "ruley.match"}

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	cfg, err := loadConfig()
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	if err := newRootCmd(cfg).Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func newRootCmd(cfg Config) *cobra.Command {
	var level string
	rootCmd := &cobra.Command{
		Use:   "ruley",
		Short: "Match messages against self-referential rules",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SilenceUsage = true
			setTraceLevel(level)
		},
	}
	rootCmd.PersistentFlags().StringVar(&level, "trace", cfg.Trace, "Trace level [Debug|Info|Error]")
	rootCmd.AddCommand(
		newCountCmd(cfg),
		newMatchCmd(),
		newDumpCmd(cfg),
		newReplCmd(cfg),
	)
	return rootCmd
}

func setTraceLevel(l string) {
	level := tracing.TraceLevelFromString(l)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Debugf("trace level is %s", l)
}

// readInput reads an input file and checks its rule table.
func readInput(path string) (*ruletext.Input, error) {
	input, err := ruletext.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err = input.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return input, nil
}

// guard calls f and turns panics raised by a matcher into errors. The
// matcher must not be used afterwards.
func guard(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok || !isFatal(e) {
				panic(r)
			}
			err = fmt.Errorf("internal error: %w", e)
		}
	}()
	f()
	return nil
}

func isFatal(err error) bool {
	for _, fatal := range []error{
		match.ErrInvalidSpan,
		match.ErrPartition,
		match.ErrUnknownVariant,
		match.ErrUnitCycle,
		rules.ErrUndefinedRule,
	} {
		if errors.Is(err, fatal) {
			return true
		}
	}
	return false
}

// --- match -----------------------------------------------------------------

func newMatchCmd() *cobra.Command {
	var patched bool
	cmd := &cobra.Command{
		Use:   "match FILE MSG...",
		Short: "Check messages against rule 0",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args[0])
			if err != nil {
				return err
			}
			m := match.New(input.Rules)
			if patched {
				m.Patch(rules.SelfReferentialPatch()...)
			}
			return guard(func() {
				for _, msg := range args[1:] {
					if m.Match(msg) {
						pterm.Success.Println(msg)
					} else {
						pterm.Warning.Println(msg)
					}
				}
			})
		},
	}
	cmd.Flags().BoolVar(&patched, "patch", false, "Turn rules 8 and 11 into loops first")
	return cmd
}

package main

import (
	"context"
	"strconv"

	"github.com/npillmayer/ruley/match"
	"github.com/npillmayer/ruley/rules"
	"github.com/npillmayer/ruley/rules/ruletext"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// part is one version of a grammar to count matching messages for.
type part struct {
	Name    string
	Patches []rules.Patch
	Count   int
	Stats   match.Stats
}

type countOptions struct {
	patches  []string
	parallel bool
	progress bool
}

func newCountCmd(cfg Config) *cobra.Command {
	opts := countOptions{
		parallel: cfg.Parallel,
		progress: cfg.Progress,
	}
	cmd := &cobra.Command{
		Use:   "count FILE",
		Short: "Count messages matching rule 0, before and after patching",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args[0])
			if err != nil {
				return err
			}
			patches, err := cfg.patches(opts.patches)
			if err != nil {
				return err
			}
			parts := []*part{
				{Name: "part 1"},
				{Name: "part 2", Patches: patches},
			}
			if opts.parallel {
				err = countParallel(cmd.Context(), input, parts)
			} else {
				err = countSequential(cmd.Context(), input, parts, opts.progress)
			}
			if err != nil {
				return err
			}
			return printParts(parts)
		},
	}
	cmd.Flags().StringArrayVar(&opts.patches, "patch", nil, "Replacement rule for part 2, e.g. '8: 42 | 42 8'")
	cmd.Flags().BoolVar(&opts.parallel, "parallel", opts.parallel, "Count parts concurrently")
	cmd.Flags().BoolVar(&opts.progress, "progress", opts.progress, "Show a progress bar")
	return cmd
}

// countSequential counts the parts one after the other, with a single
// matcher. Patching clears the matcher's cache.
func countSequential(ctx context.Context, input *ruletext.Input, parts []*part, progress bool) error {
	m := match.New(input.Rules.Clone())
	for _, p := range parts {
		if len(p.Patches) > 0 {
			m.Patch(p.Patches...)
		} else {
			m.Reset()
		}
		if err := p.count(ctx, m, input.Messages, progress); err != nil {
			return err
		}
	}
	return nil
}

// countParallel counts every part in a goroutine of its own. Parts do not
// share a table or a cache.
func countParallel(ctx context.Context, input *ruletext.Input, parts []*part) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, p := range parts {
		p := p
		table := input.Rules.Clone()
		table.Apply(p.Patches...)
		g.Go(func() error {
			return p.count(ctx, match.New(table), input.Messages, false)
		})
	}
	return g.Wait()
}

func (p *part) count(ctx context.Context, m *match.Matcher, msgs []string, progress bool) error {
	var bar *pterm.ProgressbarPrinter
	if progress {
		var err error
		bar, err = pterm.DefaultProgressbar.WithTotal(len(msgs)).WithTitle(p.Name).Start()
		if err != nil {
			return err
		}
	}
	err := guard(func() {
		for _, msg := range msgs {
			if ctx != nil && ctx.Err() != nil {
				return
			}
			if m.Match(msg) {
				p.Count++
			}
			if bar != nil {
				bar.Increment()
			}
		}
	})
	if bar != nil {
		_, _ = bar.Stop()
	}
	if err != nil {
		return err
	}
	if ctx != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	p.Stats = m.Stats()
	tracer().Infof("%s: %d of %d messages match", p.Name, p.Count, len(msgs))
	return nil
}

func printParts(parts []*part) error {
	data := pterm.TableData{
		{"", "matches", "cache entries", "cache hits", "partitions"},
	}
	for _, p := range parts {
		data = append(data, []string{
			p.Name,
			strconv.Itoa(p.Count),
			strconv.Itoa(p.Stats.Entries),
			strconv.Itoa(p.Stats.Hits),
			strconv.Itoa(p.Stats.Partitions),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

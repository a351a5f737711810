package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/npillmayer/ruley/rules"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newDumpCmd(cfg Config) *cobra.Command {
	var dotfile string
	var patched bool
	var depth int
	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the rule table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args[0])
			if err != nil {
				return err
			}
			table := input.Rules
			if patched {
				patches, err := cfg.patches(nil)
				if err != nil {
					return err
				}
				table.Apply(patches...)
			}
			table.Dump() // only visible in debug mode
			if err := pterm.DefaultTable.WithHasHeader().WithData(tableData(table)).Render(); err != nil {
				return err
			}
			pterm.Info.Printfln("%d rules, %d messages, fingerprint %s",
				table.Size(), len(input.Messages), table.Fingerprint())
			if depth > 0 {
				root := derivationTree(table, 0, depth)
				if err := pterm.DefaultTree.WithRoot(root).Render(); err != nil {
					return err
				}
			}
			if dotfile != "" {
				return writeDot(table, dotfile)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dotfile, "dot", "", "Export dependencies of rule 0 as GraphViz file")
	cmd.Flags().BoolVar(&patched, "patch", false, "Turn rules 8 and 11 into loops first")
	cmd.Flags().IntVar(&depth, "tree", 0, "Print rule 0 as a tree of this depth")
	return cmd
}

func tableData(table *rules.Table) pterm.TableData {
	reachable := table.Reachable(0)
	data := pterm.TableData{
		{"rule", "definition", "kind", "reachable", "recursive"},
	}
	table.Each(func(id rules.ID, r rules.Rule) {
		data = append(data, []string{
			strconv.Itoa(int(id)),
			r.String(),
			r.Kind.String(),
			mark(reachable.Contains(id)),
			mark(table.Recursive(id)),
		})
	})
	return data
}

func mark(b bool) string {
	if b {
		return "✔"
	}
	return ""
}

// derivationTree creates a tree of the alternatives of rule id, expanding
// references up to a given depth. Rules which are already being expanded
// further up are not expanded again.
func derivationTree(table *rules.Table, id rules.ID, depth int) pterm.TreeNode {
	var expand func(rules.ID, int, rules.IDSet) pterm.TreeNode
	expand = func(id rules.ID, level int, path rules.IDSet) pterm.TreeNode {
		r, _ := table.Lookup(id)
		node := pterm.TreeNode{Text: fmt.Sprintf("%d: %s", id, r)}
		if r.Kind != rules.Alternation || level >= depth || path.Contains(id) {
			return node
		}
		path = path.Add(id)
		defer path.Delete(id)
		for _, seq := range r.Alternatives {
			alt := pterm.TreeNode{Text: "⟶ " + seq.String()}
			for _, ref := range seq {
				alt.Children = append(alt.Children, expand(ref, level+1, path))
			}
			node.Children = append(node.Children, alt)
		}
		return node
	}
	return pterm.TreeNode{
		Text:     "rule " + strconv.Itoa(int(id)),
		Children: []pterm.TreeNode{expand(id, 0, nil)},
	}
}

func writeDot(table *rules.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err = table.DependencyGraph(0).ToGraphViz(f); err != nil {
		return err
	}
	pterm.Success.Printfln("wrote dependency graph to %s", path)
	return nil
}

package cli

import (
	"encoding/json"
	"io"

	"github.com/CageChen/entryhub/internal/entry"
	"github.com/spf13/cobra"
)

// resultOutput is one line of `resolve --detailed`.
type resultOutput struct {
	Path  string       `json:"path"`
	Entry *entry.Entry `json:"entry,omitempty"`
	Error string       `json:"error,omitempty"`
	Kind  string       `json:"kind"`
}

func (a *app) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PATH",
		Short: "Print the entry for a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.resolver.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), e)
		},
	}
}

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list DIR",
		Short: "Print the entries of a directory's children",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.resolver.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), entries)
		},
	}
}

func (a *app) parentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parent PATH",
		Short: "Print the entry of a path's parent directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.resolver.GetParent(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), e)
		},
	}
}

func (a *app) resolveCommand() *cobra.Command {
	var detailed bool
	cmd := &cobra.Command{
		Use:   "resolve [PATH...]",
		Short: "Print entries for every path that resolves",
		Long: "Resolve prints the entries of the given paths in argument order, skipping\n" +
			"paths that fail. With --detailed it prints one result per path instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !detailed {
				entries, err := a.resolver.GetForPaths(cmd.Context(), args)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), entries)
			}

			results, err := a.resolver.ResolveAll(cmd.Context(), args)
			if err != nil {
				return err
			}
			out := make([]resultOutput, len(results))
			for i, res := range results {
				out[i] = resultOutput{Path: res.Path, Kind: entry.Kind(res.Err)}
				if res.OK() {
					e := res.Entry
					out[i].Entry = &e
				} else {
					out[i].Error = res.Err.Error()
				}
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().BoolVar(&detailed, "detailed", false, "report failures alongside entries")
	return cmd
}

func (a *app) hierarchyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hierarchy PATH",
		Short: "Print the root with the directories leading to a path expanded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.resolver.Hierarchy(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), root)
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

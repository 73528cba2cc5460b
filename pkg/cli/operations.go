package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockigd/pkg/action"
	"github.com/getmockd/mockigd/pkg/cli/internal/output"
)

// operationInfo is the structured form of one catalog entry.
type operationInfo struct {
	Name    string         `json:"name" yaml:"name"`
	Service string         `json:"service" yaml:"service"`
	In      []argumentInfo `json:"in,omitempty" yaml:"in,omitempty"`
	Out     []argumentInfo `json:"out,omitempty" yaml:"out,omitempty"`
}

type argumentInfo struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

func describeOperations() []operationInfo {
	ops := action.Operations()
	out := make([]operationInfo, 0, len(ops))
	for _, op := range ops {
		out = append(out, operationInfo{
			Name:    op.Name,
			Service: op.Service,
			In:      describeArguments(op.In),
			Out:     describeArguments(op.Out),
		})
	}
	return out
}

func describeArguments(args []action.Argument) []argumentInfo {
	if len(args) == 0 {
		return nil
	}
	out := make([]argumentInfo, len(args))
	for i, a := range args {
		out[i] = argumentInfo{Name: a.Name, Type: string(a.Type)}
	}
	return out
}

func newOperationsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "operations",
		Aliases: []string{"ops"},
		Short:   "List the actions the gateway understands",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			ops := describeOperations()
			return printResult(w, format, ops, func() {
				tw := output.Table(w)
				fmt.Fprintln(tw, "OPERATION\tSERVICE\tIN\tOUT")
				for _, op := range ops {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", op.Name, shortService(op.Service), argNames(op.In), argNames(op.Out))
				}
				_ = tw.Flush()
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", formatText, "Output format (text, json, yaml)")
	return cmd
}

func shortService(serviceType string) string {
	for alias, full := range serviceAliases {
		if full == serviceType {
			return alias
		}
	}
	return serviceType
}

func argNames(args []argumentInfo) string {
	if len(args) == 0 {
		return "-"
	}
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = a.Name
	}
	return strings.Join(names, ",")
}

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tanema/typify/src/infer"
	"github.com/tanema/typify/src/parse"
	"github.com/tanema/typify/src/types"
)

var parseTree bool

var parseCmd = &cobra.Command{
	Use:   "parse <type>",
	Short: "Parse a type string and print its canonical form",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defn := parse.Parse(strings.Join(args, " "))
		fmt.Fprintln(cmd.OutOrStdout(), defn.String())
		if parseTree {
			writeTree(cmd.OutOrStdout(), defn, "")
		}
		return nil
	},
}

var inferCmd = &cobra.Command{
	Use:   "infer <expr>",
	Short: "Infer the type of an expression from literals and builtins",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, logger, false, os.Stderr)
		if err != nil {
			return err
		}
		tbl := a.builder().Build(nil, a.registry)
		fmt.Fprintln(cmd.OutOrStdout(), describeInference(infer.Infer(strings.Join(args, " "), tbl)))
		return nil
	},
}

func init() {
	parseCmd.Flags().BoolVarP(&parseTree, "tree", "t", false, "print the parsed structure")
}

func describeInference(defn *types.Type) string {
	if defn == nil {
		return "unknown (left unannotated)"
	}
	return defn.String()
}

func writeTree(w io.Writer, defn *types.Type, indent string) {
	if defn == nil {
		defn = types.Unknown
	}
	fmt.Fprintf(w, "%sbase: %s\n", indent, defn.Base)
	if defn.Modifier != "" {
		fmt.Fprintf(w, "%smodifier: %s\n", indent, defn.Modifier)
	}
	if defn.Lib != "" {
		fmt.Fprintf(w, "%slib: %s\n", indent, defn.Lib)
	}
	switch defn.Container {
	case types.ContainerArray, types.ContainerMatrix:
		fmt.Fprintf(w, "%selem:\n", indent)
		writeTree(w, defn.Elem, indent+"  ")
	case types.ContainerMap:
		fmt.Fprintf(w, "%skey:\n", indent)
		writeTree(w, defn.Key, indent+"  ")
		fmt.Fprintf(w, "%svalue:\n", indent)
		writeTree(w, defn.Value, indent+"  ")
	}
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/tanema/typify/src/conf"
	"github.com/tanema/typify/src/infer"
	"github.com/tanema/typify/src/parse"
	"github.com/tanema/typify/src/typecache"
)

const replHelp = `Enter an expression to infer its type.
  :type <type>   parse a type string and print its canonical form
  :tree <type>   parse a type string and print its structure
  :help          show this message
Press ctrl-c to quit or clear the current line.`

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactively parse types and infer expressions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cfg, logger, false, os.Stderr)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "%v\n%s\n", conf.FullVersion(), replHelp)
		return runREPL(a.builder().Build(nil, a.registry))
	},
}

func runREPL(tbl *typecache.Table) error {
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer func() { _ = rl.Close() }()
	interrupted := false
	for {
		src, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if !interrupted && src != "" {
					interrupted = true
					fmt.Fprint(os.Stderr, "Press ctrl-c again to quit.\n")
					continue
				}
				return nil
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		interrupted = false
		evalLine(rl.Stdout(), src, tbl)
	}
}

func evalLine(w io.Writer, src string, tbl *typecache.Table) {
	src = strings.TrimSpace(src)
	switch {
	case src == "":
	case src == ":help":
		fmt.Fprintln(w, replHelp)
	case strings.HasPrefix(src, ":type "):
		fmt.Fprintln(w, parse.Parse(strings.TrimPrefix(src, ":type ")).String())
	case strings.HasPrefix(src, ":tree "):
		writeTree(w, parse.Parse(strings.TrimPrefix(src, ":tree ")), "")
	default:
		fmt.Fprintln(w, describeInference(infer.Infer(src, tbl)))
	}
}

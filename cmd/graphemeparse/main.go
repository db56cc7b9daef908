// Command graphemeparse is a thin front-end over expr.ParseString: it
// reads an expression from argv or stdin and prints either its token
// stream or its parsed tree.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	u "github.com/araddon/gou"

	"github.com/fuhongbo/grapheme/expr"
	"github.com/fuhongbo/grapheme/plan"
)

func main() {
	var (
		showTokens  = flag.Bool("tokens", false, "print the token stream instead of the parsed tree")
		showAST     = flag.Bool("ast", false, "print the parsed tree (default if no flag given)")
		noImplicit  = flag.Bool("no-implicit-mult", false, "disable implicit multiplication insertion")
		maxTemplate = flag.Int("max-template-depth", 0, "override the default max template nesting depth (0 keeps the default)")
		verbose     = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		u.SetupLogging("debug")
	}

	source, err := readSource(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	opts := plan.DefaultOptions()
	opts.ImplicitMultiplication = !*noImplicit
	if *maxTemplate > 0 {
		opts.MaxTemplateDepth = *maxTemplate
	}

	if *showTokens && *showAST {
		fmt.Fprintln(os.Stderr, "graphemeparse: -tokens and -ast are mutually exclusive")
		os.Exit(2)
	}

	if *showTokens {
		tokens, err := expr.Tokenize(source, opts)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, t := range tokens {
			fmt.Println(t.String())
		}
		return
	}

	root, err := expr.ParseString(source, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(expr.NodeToString(root))
}

func readSource(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"fstrify/internal/diagfmt"
	"fstrify/internal/driver"
	"fstrify/internal/rewrite"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite <first> <last> [file.py]",
	Short: "Rewrite percent formatting in a line range and print that range",
	Long: `Rewrite reads a whole Python document (from a file or stdin), converts
percent-format expressions whose string literal starts inside the inclusive
1-based line range [first, last], and prints exactly that range of the
rewritten document. Lines outside the range are never modified. On a syntax
error or an invalid range nothing is printed and the exit status is 1.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runRewrite,
}

func runRewrite(cmd *cobra.Command, args []string) error {
	firstLine, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid first line %q: %w", args[0], err)
	}
	lastLine, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid last line %q: %w", args[1], err)
	}

	var out string
	if len(args) == 3 {
		out, err = driver.RewriteFile(args[2], firstLine, lastLine)
	} else {
		var input []byte
		input, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		out, err = rewrite.Rewrite(string(input), firstLine, lastLine)
	}
	if err != nil {
		// Контракт: при ошибке stdout пуст, диагностика в stderr, код 1.
		fmt.Fprintf(os.Stderr, "fstrify: %v\n", err)
		var parseErr *rewrite.ParseError
		if errors.As(err, &parseErr) && parseErr.Bag != nil && parseErr.Files != nil {
			colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
			useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stderr))
			diagfmt.Pretty(os.Stderr, parseErr.Bag, parseErr.Files, diagfmt.PrettyOpts{
				Color:   useColor,
				Context: 2,
			})
		}
		return silentExit(cmd)
	}

	// Окно уже несёт собственный перевод строки (если он был в документе).
	_, err = io.WriteString(os.Stdout, out)
	return err
}

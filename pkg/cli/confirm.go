package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Confirm asks a yes/no question on stdin. A non-terminal stdin answers
// no, so scripted runs never confirm destructive actions.
func Confirm(prompt string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}
	return ask(os.Stdin, os.Stdout, prompt, "(yes/no)")
}

// PromptYN asks a y/n question on stdin, defaulting to no when stdin
// is not a terminal.
func PromptYN(prompt string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}
	return ask(os.Stdin, os.Stdout, prompt, "(y/n)")
}

func ask(in io.Reader, out io.Writer, prompt, suffix string) bool {
	fmt.Fprintf(out, "%s %s: ", prompt, suffix)
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return true
	}
	return false
}

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints a password prompt to w and reads a password from the
// user's terminal without echo. A newline is printed after the read to keep
// the UI tidy.
func GetPassword(prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// GetChoice prints a numbered option list and reads a selection, accepting
// either the number or the option text. An empty line selects nothing; the
// empty string is returned so callers can treat the field as unset.
func GetChoice(reader *bufio.Reader, prompt string, options []string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintln(w, prompt); err != nil {
		return "", err
	}
	for i, opt := range options {
		fmt.Fprintf(w, "  %d) %s\n", i+1, opt)
	}
	fmt.Fprint(w, "> ")

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil
	}

	if n, err := strconv.Atoi(line); err == nil {
		if n < 1 || n > len(options) {
			return "", fmt.Errorf("choice out of range: %d", n)
		}
		return options[n-1], nil
	}

	for _, opt := range options {
		if strings.EqualFold(opt, line) {
			return opt, nil
		}
	}
	return "", fmt.Errorf("unknown choice: %s", line)
}

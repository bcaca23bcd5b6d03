// Package input expands command arguments that name other sources of
// task text: "-" reads stdin and "@path" reads a file, one task per line.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Expand replaces "-" and "@file" arguments with the non-blank lines they
// contain. stdin may be read at most once.
func Expand(args []string, stdin io.Reader) ([]string, error) {
	var result []string
	stdinUsed := false

	for _, arg := range args {
		switch {
		case arg == "-":
			if stdinUsed {
				return nil, fmt.Errorf("stdin given more than once")
			}
			stdinUsed = true
			lines, err := ReadLines(stdin)
			if err != nil {
				return nil, fmt.Errorf("read stdin: %w", err)
			}
			result = append(result, lines...)

		case strings.HasPrefix(arg, "@") && len(arg) > 1:
			path := strings.TrimPrefix(arg, "@")
			f, err := os.Open(path)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", path, err)
			}
			lines, err := ReadLines(f)
			f.Close()
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", path, err)
			}
			result = append(result, lines...)

		default:
			result = append(result, arg)
		}
	}
	return result, nil
}

// ReadLines returns the trimmed non-empty lines of r
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// SplitDue splits "text | due" into its parts. Without a separator the
// due part is empty.
func SplitDue(line string) (text, due string) {
	i := strings.LastIndex(line, "|")
	if i < 0 {
		return strings.TrimSpace(line), ""
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:])
}

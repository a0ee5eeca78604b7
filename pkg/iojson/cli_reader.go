package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// FileReader decodes one JSON document of type T from either a --file flag
// or piped stdin. Commands that accept a transcript payload embed one and
// register its Flag.
type FileReader[T any] struct {
	path string
}

// Flag returns the file flag wired to this reader.
func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file (reads from stdin if not provided)",
		Destination: &fr.path,
	}
}

// Read decodes the document. Without a file, stdin must be piped; reading
// from an interactive terminal is refused so the command fails fast instead
// of hanging.
func (fr *FileReader[T]) Read() (T, error) {
	var input T

	var r io.Reader
	switch {
	case fr.path != "":
		f, err := os.Open(fr.path)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	case term.IsTerminal(int(os.Stdin.Fd())):
		return input, fmt.Errorf("no input provided (stdin is a terminal); use -f or pipe JSON input")
	default:
		r = os.Stdin
	}

	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}
	return input, nil
}

package iojson

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ErrNoInput is returned when no file is given and stdin is a terminal.
var ErrNoInput = errors.New("no input provided (stdin is a terminal); use -f flag or pipe JSON input")

// FileReader reads JSON input from a --file flag or from piped stdin.
type FileReader struct {
	fileFlagValue string
}

func (fr *FileReader) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file (reads from stdin if not provided)",
		Destination: &fr.fileFlagValue,
	}
}

// Path returns the --file value.
func (fr *FileReader) Path() string {
	return fr.fileFlagValue
}

// Piped reports whether input can be read from stdin.
func (fr *FileReader) Piped() bool {
	return !term.IsTerminal(int(os.Stdin.Fd()))
}

// Open returns the input and a name for it, for error messages.
func (fr *FileReader) Open() (io.ReadCloser, string, error) {
	if fr.fileFlagValue != "" {
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return nil, "", fmt.Errorf("open file: %w", err)
		}
		return f, fr.fileFlagValue, nil
	}

	if !fr.Piped() {
		return nil, "", ErrNoInput
	}
	return io.NopCloser(os.Stdin), "stdin", nil
}

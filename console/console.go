// Package console reads typed utterances, one per line, in place of the
// microphone.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

type Interface interface {
	// Listen returns the next line. io.EOF marks the end of input.
	Listen(ctx context.Context) (string, error)
}

type consoleImpl struct {
	scanner *bufio.Scanner
	prompt  io.Writer
}

type Config struct {
	In io.Reader
	// Prompt, when set, receives a "> " before each read.
	Prompt io.Writer
	// MaxLineSize caps one line in bytes. Defaults to 1 MiB.
	MaxLineSize int
}

const defaultMaxLineSize = 1 << 20

// ReadError is a failure of the underlying input. The scanner cannot resume
// after one, so it also matches io.EOF.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return "read input: " + e.Err.Error()
}

func (e *ReadError) Unwrap() []error {
	return []error{e.Err, io.EOF}
}

func New(cfg *Config) (Interface, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	if cfg.In == nil {
		return nil, fmt.Errorf("in is nil")
	}

	maxLineSize := cfg.MaxLineSize
	if maxLineSize <= 0 {
		maxLineSize = defaultMaxLineSize
	}

	scanner := bufio.NewScanner(cfg.In)
	scanner.Buffer(make([]byte, 0, min(maxLineSize, bufio.MaxScanTokenSize)), maxLineSize)

	return &consoleImpl{
		scanner: scanner,
		prompt:  cfg.Prompt,
	}, nil
}

func (c *consoleImpl) Listen(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if c.prompt != nil {
		fmt.Fprint(c.prompt, "> ")
	}

	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", &ReadError{Err: err}
		}

		return "", io.EOF
	}

	return strings.TrimSpace(c.scanner.Text()), nil
}

// Package output delivers the formatted result of a command to its
// destinations: the terminal, a file and the system clipboard.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"
)

// Sink receives the final text of a command.
type Sink interface {
	Emit(text string) error
}

// Writer prints text followed by a newline.
type Writer struct {
	W io.Writer
}

func (w Writer) Emit(text string) error {
	_, err := fmt.Fprintln(w.W, text)
	return err
}

// File writes text to Path, replacing any existing file.
type File struct {
	Path string
	Log  logrus.FieldLogger
}

func (f File) Emit(text string) error {
	if err := os.WriteFile(f.Path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}
	if f.Log != nil {
		f.Log.WithField("path", f.Path).Info("output written")
	}
	return nil
}

// Clipboard copies text to the system clipboard. Copy failures are logged as
// warnings, never returned.
type Clipboard struct {
	Log   logrus.FieldLogger
	write func(string) error
}

// NewClipboard returns a Clipboard backed by the system clipboard.
func NewClipboard(log logrus.FieldLogger) *Clipboard {
	return &Clipboard{Log: log}
}

func (c *Clipboard) Emit(text string) error {
	write := c.write
	if write == nil {
		if clipboard.Unsupported {
			c.warn(errors.New("no clipboard utility available"))
			return nil
		}
		write = clipboard.WriteAll
	}
	if err := write(text); err != nil {
		c.warn(err)
		return nil
	}
	if c.Log != nil {
		c.Log.Debug("copied to clipboard")
	}
	return nil
}

func (c *Clipboard) warn(err error) {
	if c.Log != nil {
		c.Log.WithError(err).Warn("failed to copy to clipboard")
	}
}

// Multi emits to every sink in order and stops at the first error.
type Multi []Sink

func (m Multi) Emit(text string) error {
	for _, s := range m {
		if err := s.Emit(text); err != nil {
			return err
		}
	}
	return nil
}

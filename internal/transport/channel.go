package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/specialistvlad/stepconfig/internal/bridgeerr"
	"github.com/specialistvlad/stepconfig/internal/ctxlog"
)

// Channel is a one-shot byte channel to the parent process.
type Channel interface {
	// Name identifies the channel variant in logs.
	Name() string
	// Write delivers msg with one write call.
	Write(ctx context.Context, msg []byte) error
}

// Select picks the channel for goos. environ is consulted by the
// descriptor channel at write time; nil means the process environment.
func Select(goos string, stdout io.Writer, environ map[string]string) Channel {
	if goos == "windows" {
		return &StdoutChannel{w: stdout}
	}
	return &FDChannel{environ: environ}
}

// Encode renders payload as a single JSON line. Strings are written as
// is; <, > and & are not HTML-escaped.
func Encode(payload any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("%w: %w", bridgeerr.ErrSerialization, err)
	}
	return buf.Bytes(), nil
}

// Send encodes payload and writes it to ch.
func Send(ctx context.Context, ch Channel, payload any) error {
	msg, err := Encode(payload)
	if err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Sending config to host.", "channel", ch.Name(), "bytes", len(msg))
	return ch.Write(ctx, msg)
}

// StdoutChannel writes to standard output. It is the Windows variant.
type StdoutChannel struct {
	w io.Writer
}

// NewStdoutChannel returns a channel writing to w.
func NewStdoutChannel(w io.Writer) *StdoutChannel {
	return &StdoutChannel{w: w}
}

// Name implements Channel.
func (*StdoutChannel) Name() string { return "stdout" }

// Write implements Channel. Writers with a Flush method are flushed right
// away; os.Stdout itself is unbuffered.
func (c *StdoutChannel) Write(_ context.Context, msg []byte) error {
	if _, err := c.w.Write(msg); err != nil {
		return fmt.Errorf("write to stdout: %w", err)
	}
	if f, ok := c.w.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush stdout: %w", err)
		}
	}
	return nil
}

// Package balance checks bracket balance in text files.
//
// A file is read fully into memory, validated as UTF-8 and scanned once. The
// scan keeps a stack of open (, [ and { delimiters and halts at the first
// closing delimiter that does not match. Alongside the bracket state a report
// carries raw counts of double quotes, single quotes and backticks over the
// whole file.
//
// Example usage:
//
//	report, err := balance.Check(ctx, "app/src/main/java/Main.kt")
//	if err != nil {
//		return err
//	}
//	report.WriteTo(os.Stdout)
package balance

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/robinvdvleuten/devcheck/telemetry"
)

// Load reads the file at path and validates it as UTF-8 text.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Underlying: err}
	}

	if err := Decode(path, data); err != nil {
		return nil, err
	}

	return data, nil
}

// Decode returns a *DecodeError locating the first invalid UTF-8 sequence in
// data, or nil if data is valid text.
func Decode(filename string, data []byte) error {
	if utf8.Valid(data) {
		return nil
	}

	c := newCursor(filename, data)
	for c.pos < len(data) {
		if r, size := utf8.DecodeRune(data[c.pos:]); r == utf8.RuneError && size <= 1 {
			return &DecodeError{Pos: c.position()}
		}
		c.next()
	}

	return nil
}

// Check loads the file at path and scans it.
func Check(ctx context.Context, path string) (*Report, error) {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("read %s", filepath.Base(path)))
	data, err := os.ReadFile(path)
	timer.End()
	if err != nil {
		return nil, &FileAccessError{Path: path, Underlying: err}
	}

	return CheckBytes(ctx, path, data)
}

// CheckBytes validates and scans already loaded content. filename is only
// used for reporting.
func CheckBytes(ctx context.Context, filename string, data []byte) (*Report, error) {
	timer := telemetry.StartTimer(ctx, "decode")
	err := Decode(filename, data)
	timer.End()
	if err != nil {
		return nil, err
	}

	timer = telemetry.StartTimer(ctx, fmt.Sprintf("scan (%d bytes)", len(data)))
	defer timer.End()

	return Scan(filename, data), nil
}

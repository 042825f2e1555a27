// Package errs is the single entry point to cockroachdb/errors. Sentinels made
// here keep their identity through Mark, so errors.Is matches both the
// sentinel and the underlying cause.
package errs

import (
	cr "github.com/cockroachdb/errors"
)

func New(msg string) error {
	return cr.New(msg)
}

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return cr.Wrapf(err, format, args...)
}

// Mark returns markErr itself when err is nil.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Redacted renders err with user-supplied values stripped, for log lines that
// may leave the process.
func Redacted(err error) string {
	if err == nil {
		return ""
	}
	return cr.Redact(err)
}

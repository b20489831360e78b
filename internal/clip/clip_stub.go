//go:build js || (!windows && !cgo)

// golang.design/x/clipboard panics without cgo on these platforms, so the
// clipboard is reported as missing instead.

package clip

import "errors"

var ErrUnavailable = errors.New("clipboard unavailable")

func WriteText(string) error { return ErrUnavailable }

func ReadText() (string, error) { return "", ErrUnavailable }

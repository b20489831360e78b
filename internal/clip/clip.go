//go:build !js && (windows || cgo)

// Package clip copies preset files to and from the system clipboard.
package clip

import (
	"errors"
	"sync"
	"unicode/utf8"

	"golang.design/x/clipboard"

	"github.com/san-kum/genlab/internal/logx"
)

// ErrUnavailable is returned when no clipboard could be initialised.
var ErrUnavailable = errors.New("clipboard unavailable")

var (
	initOnce sync.Once
	ready    bool
)

func available() bool {
	initOnce.Do(func() {
		err := clipboard.Init()
		ready = err == nil
		if err != nil {
			logx.Logger().Warn("clipboard disabled", "err", err)
		}
	})
	return ready
}

func WriteText(s string) error {
	if !available() {
		return ErrUnavailable
	}
	clipboard.Write(clipboard.FmtText, []byte(s))
	return nil
}

// ReadText returns the clipboard text, or "" when it is not valid UTF-8.
func ReadText() (string, error) {
	if !available() {
		return "", ErrUnavailable
	}
	b := clipboard.Read(clipboard.FmtText)
	if !utf8.Valid(b) {
		return "", nil
	}
	return string(b), nil
}

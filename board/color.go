package board

import (
	"errors"
	"strings"
)

var ErrUnknownColor = errors.New("color must be black or white")

// Color is the side to move. Black always moves first.
type Color uint8

const (
	Black Color = iota
	White
)

// Invert maps Black to White and White to Black.
func (c Color) Invert() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// Symbol is the one-letter disk marker used in board displays.
func (c Color) Symbol() string {
	if c == Black {
		return "X"
	}
	return "O"
}

// ParseColor accepts "black", "white", "b", "w", "x" or "o", in any case.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "black", "b", "x":
		return Black, nil
	case "white", "w", "o":
		return White, nil
	}
	return Black, ErrUnknownColor
}

// Square is the state of a single square. It is derived from a Board and
// never stored.
type Square uint8

const (
	Empty Square = iota
	BlackDisk
	WhiteDisk
)

func (s Square) String() string {
	switch s {
	case BlackDisk:
		return "X"
	case WhiteDisk:
		return "O"
	}
	return "-"
}

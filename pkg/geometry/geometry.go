package geometry

import (
	"fmt"
	"strings"
)

const (
	LeftInset    = 8
	RightInset   = 8
	TopInset     = 6
	BottomInset  = 8
	InnerSpacing = 12
)

type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", r.X, r.Y, r.Width, r.Height)
}

type Directive int

const (
	FullScreen Directive = iota
	Left
	Right
)

func (d Directive) String() string {
	switch d {
	case FullScreen:
		return "full"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("directive(%d)", int(d))
}

func ParseDirective(s string) (Directive, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", "fullscreen":
		return FullScreen, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return FullScreen, fmt.Errorf("unknown directive %q", s)
}

// Inset shrinks the screen by the fixed insets. Sizes never go negative.
func Inset(screen Rect) Rect {
	return Rect{
		X:      screen.X + LeftInset,
		Y:      screen.Y + TopInset,
		Width:  max(screen.Width-LeftInset-RightInset, 0),
		Height: max(screen.Height-TopInset-BottomInset, 0),
	}
}

// ComputeFrame returns the frame a window with directive d should occupy on
// screen. Half splits floor the left width and give the remainder to the
// right, so the two halves are always separated by exactly InnerSpacing once
// the inset area is at least that wide.
func ComputeFrame(screen Rect, d Directive) Rect {
	area := Inset(screen)

	leftWidth := max((area.Width-InnerSpacing)/2, 0)
	rightWidth := max(area.Width-InnerSpacing-leftWidth, 0)

	switch d {
	case Left:
		area.Width = leftWidth
	case Right:
		area.X += area.Width - rightWidth
		area.Width = rightWidth
	}

	return area
}

func (d Directive) MarshalText() ([]byte, error) {
	switch d {
	case FullScreen, Left, Right:
		return []byte(d.String()), nil
	}
	return nil, fmt.Errorf("unknown directive %d", int(d))
}

func (d *Directive) UnmarshalText(text []byte) error {
	parsed, err := ParseDirective(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

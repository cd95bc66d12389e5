package model

import (
	"errors"
	"fmt"
)

const (
	// PanelPixels is the LED count of one 16x16 panel.
	PanelPixels = 256
	// Channels is bytes per pixel on the wire.
	Channels = 3
)

var (
	ErrIndexOutOfRange = errors.New("pixel index out of range")
	ErrDivisor         = errors.New("brightness divisor must be at least 1")
)

// Buffer is the composed image of one panel group, stored exactly as it is
// clocked out: G, R, B per LED, panels back to back.
type Buffer struct {
	panels int
	data   []byte
}

// NewBuffer allocates a buffer for n panels. It is never resized.
func NewBuffer(panels int) *Buffer {
	return &Buffer{
		panels: panels,
		data:   make([]byte, panels*PanelPixels*Channels),
	}
}

// Len is the number of pixels.
func (b *Buffer) Len() int { return len(b.data) / Channels }

// Panels is the number of panels in the buffer.
func (b *Buffer) Panels() int { return b.panels }

// Set overwrites pixel i with c.
func (b *Buffer) Set(i int, c Color) error {
	if i < 0 || i >= b.Len() {
		return fmt.Errorf("set %d of %d: %w", i, b.Len(), ErrIndexOutOfRange)
	}
	off := i * Channels
	b.data[off+0] = c.G()
	b.data[off+1] = c.R()
	b.data[off+2] = c.B()
	return nil
}

// At returns pixel i.
func (b *Buffer) At(i int) (Pixel, error) {
	if i < 0 || i >= b.Len() {
		return Pixel{}, fmt.Errorf("at %d of %d: %w", i, b.Len(), ErrIndexOutOfRange)
	}
	off := i * Channels
	return Pixel{G: b.data[off], R: b.data[off+1], B: b.data[off+2]}, nil
}

// Clear blanks every pixel.
func (b *Buffer) Clear() {
	for i := range b.data {
		b.data[i] = 0
	}
}

// ScaleBrightness divides every channel by divisor, truncating.
func (b *Buffer) ScaleBrightness(divisor int) error {
	if divisor < 1 {
		return fmt.Errorf("scale by %d: %w", divisor, ErrDivisor)
	}
	if divisor == 1 {
		return nil
	}
	// every channel is below 256
	if divisor >= 256 {
		b.Clear()
		return nil
	}
	d := byte(divisor)
	for i := range b.data {
		b.data[i] /= d
	}
	return nil
}

// Bytes is the whole buffer in wire order. It aliases the buffer.
func (b *Buffer) Bytes() []byte { return b.data }

// Panel is the wire stream of panel p. It aliases the buffer, so it must
// not be read while the buffer is being composed.
func (b *Buffer) Panel(p int) []byte {
	n := PanelPixels * Channels
	return b.data[p*n : (p+1)*n : (p+1)*n]
}

package led

import "io"

// Sink is one LED chain. It takes raw RGB bytes, three per LED.
// *nrzled.Dev satisfies it.
type Sink interface {
	io.Writer
	Halt() error
}

// grbToRGB reorders a wire stream into dst, which must be as long.
func grbToRGB(dst, grb []byte) {
	for i := 0; i+2 < len(grb); i += 3 {
		dst[i+0] = grb[i+1]
		dst[i+1] = grb[i+0]
		dst[i+2] = grb[i+2]
	}
}

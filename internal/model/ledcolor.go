package model

const (
	RED_OFFSET   uint8 = 0x10
	GREEN_OFFSET uint8 = 0x08
	BLUE_OFFSET  uint8 = 0x0
)

// Color is a packed 0xRRGGBB value. Anything above bit 23 is ignored.
type Color uint32

const (
	Red    Color = 0xFF0000
	Orange Color = 0xFF4000
	Green  Color = 0x00FF00
	Blue   Color = 0x0000FF
	Cyan   Color = 0x00FFFF
	White  Color = 0xFFFFFF
	Black  Color = 0x000000
)

// TextPalette is indexed by the digit of a \N color escape.
var TextPalette = []Color{Red, Orange, Green, Cyan, White}

// DayDigitColors and NightDigitColors tint the odometer slots left to right.
var DayDigitColors = []Color{
	0xFF0000,
	0xFF3000,
	0xAF6F00,
	0x00D700,
	0x008383,
	0x7F007F,
	0x4F4F4F,
	0x00FF40,
	0x60FF1F,
	0xFFFFFF,
}

var NightDigitColors = []Color{
	0xFF0000,
	0xFF4000,
	0x9F8F00,
	0x00DF00,
	0x009090,
	0x800080,
	0x4F4F4F,
	0x00FF40,
	0x60FF1F,
	0xFFFFFF,
}

func getcolor(c uint32, off uint8) uint8 {
	var mask uint32 = 0xFF << off
	return uint8((c & mask) >> off)
}

func setcolor(c uint32, n uint8, off uint8) uint32 {
	var val uint32 = uint32(n) << off
	var mask uint32 = 0xFF << off
	return (c & (^mask)) | val
}

// RGB packs three channels.
func RGB(r, g, b uint8) Color {
	var v uint32
	v = setcolor(v, r, RED_OFFSET)
	v = setcolor(v, g, GREEN_OFFSET)
	v = setcolor(v, b, BLUE_OFFSET)
	return Color(v)
}

func (c Color) R() uint8 { return getcolor(uint32(c), RED_OFFSET) }
func (c Color) G() uint8 { return getcolor(uint32(c), GREEN_OFFSET) }
func (c Color) B() uint8 { return getcolor(uint32(c), BLUE_OFFSET) }

// Pixel is one LED in wire order: green, red, blue.
type Pixel struct {
	G, R, B uint8
}

// Pixel converts to wire order.
func (c Color) Pixel() Pixel {
	return Pixel{G: c.G(), R: c.R(), B: c.B()}
}

// Color packs the pixel back into 0xRRGGBB.
func (p Pixel) Color() Color {
	return RGB(p.R, p.G, p.B)
}

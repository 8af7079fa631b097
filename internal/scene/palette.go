package scene

import colorful "github.com/lucasb-eyer/go-colorful"

// RGB is a linear-space color. Display colors are authored in sRGB and
// converted once at startup; rendering in linear space keeps the sphere
// colors from washing out.
type RGB struct {
	R, G, B float64
}

// displayPalette is the five-entry display (sRGB) palette shared by the
// planes and the spheres.
var displayPalette = [5]string{
	"#f94144",
	"#f3722c",
	"#f9c74f",
	"#90be6d",
	"#577590",
}

var palette [5]RGB

func init() {
	for i, hex := range displayPalette {
		c, err := colorful.Hex(hex)
		if err != nil {
			panic("scene: bad palette entry " + hex)
		}
		r, g, b := c.LinearRgb()
		palette[i] = RGB{r, g, b}
	}
}

// Palette returns the five demo colors in linear space.
func Palette() [5]RGB {
	return palette
}

// Display returns the sRGB view of a linear color, for frontends that want
// 8-bit display values back.
func (c RGB) Display() (r, g, b uint8) {
	col := colorful.LinearRgb(c.R, c.G, c.B).Clamped()
	return uint8(col.R*255 + 0.5), uint8(col.G*255 + 0.5), uint8(col.B*255 + 0.5)
}

// File: render/ascii.go
package render

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lguibr/brickbreaker/game"
)

// RGBPixel is one rasterized cell.
type RGBPixel struct {
	R, G, B uint8
}

// Color converts the pixel for image based renderers.
func (p RGBPixel) Color() color.RGBA {
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xff}
}

// ASCII characters for grayscale, from lighter to darker
const asciiChars = " .,:;i1tfLCG08@"

// maxGray is the summed channel value of a white pixel.
const maxGray = 3 * 255

var (
	Background         = RGBPixel{0, 0, 0}
	PaddleColor        = RGBPixel{60, 220, 90}
	StickyPaddleColor  = RGBPixel{220, 220, 60}
	BallColor          = RGBPixel{240, 240, 240}
	FireballColor      = RGBPixel{255, 120, 20}
	IndestructibleGray = RGBPixel{120, 120, 130}
)

// brickPalette is indexed by variant-1.
var brickPalette = [...]RGBPixel{
	{230, 60, 60}, {230, 130, 50}, {230, 200, 50}, {150, 220, 60},
	{60, 200, 90}, {50, 200, 190}, {60, 150, 230}, {80, 90, 230},
	{150, 80, 230}, {210, 70, 210}, {230, 80, 150}, {200, 200, 200},
}

var powerupColors = map[game.PowerupType]RGBPixel{
	game.PowerupFireball:  {255, 100, 0},
	game.PowerupUltrawide: {0, 180, 255},
	game.PowerupSticky:    {255, 255, 0},
	game.PowerupMultiball: {255, 255, 255},
	game.PowerupExtraLife: {255, 60, 120},
}

func BrickColor(b *game.Brick) RGBPixel {
	if b.Indestructible {
		return IndestructibleGray
	}
	if b.Variant >= 1 && b.Variant <= len(brickPalette) {
		return brickPalette[b.Variant-1]
	}
	return brickPalette[0]
}

func PowerupColor(t game.PowerupType) RGBPixel {
	if c, ok := powerupColors[t]; ok {
		return c
	}
	return BallColor
}

// rgbToGray sums the channels.
func rgbToGray(pixel RGBPixel) int {
	return int(pixel.R) + int(pixel.G) + int(pixel.B)
}

// Glyph maps a pixel to its ASCII character by brightness.
func Glyph(pixel RGBPixel) rune {
	index := rgbToGray(pixel) * (len(asciiChars) - 1) / maxGray
	return rune(asciiChars[index])
}

// rgbToAnsi converts an RGB pixel to an ANSI escape code for that color
func rgbToAnsi(pixel RGBPixel) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", pixel.R, pixel.G, pixel.B)
}

// Rasterize draws a snapshot onto a cols x rows grid of pixels.
func Rasterize(snap game.Snapshot, cols, rows int) [][]RGBPixel {
	pixels := make([][]RGBPixel, rows)
	for i := range pixels {
		pixels[i] = make([]RGBPixel, cols)
	}
	if cols == 0 || rows == 0 || snap.Width <= 0 || snap.Height <= 0 {
		return pixels
	}
	sx := float64(cols) / snap.Width
	sy := float64(rows) / snap.Height

	fill := func(r game.Rect, color RGBPixel) {
		x0 := int(math.Floor(r.Min.X * sx))
		x1 := int(math.Ceil(r.Max.X*sx)) - 1
		y0 := int(math.Floor(r.Min.Y * sy))
		y1 := int(math.Ceil(r.Max.Y*sy)) - 1
		for y := max(y0, 0); y <= min(y1, rows-1); y++ {
			for x := max(x0, 0); x <= min(x1, cols-1); x++ {
				pixels[y][x] = color
			}
		}
	}
	dot := func(px, py float64, color RGBPixel) {
		x, y := int(px*sx), int(py*sy)
		if x >= 0 && x < cols && y >= 0 && y < rows {
			pixels[y][x] = color
		}
	}

	for _, row := range snap.Bricks {
		for _, brick := range row {
			if brick != nil {
				fill(brick.Rect(), BrickColor(brick))
			}
		}
	}

	paddleColor := PaddleColor
	if snap.Paddle.Sticky {
		paddleColor = StickyPaddleColor
	}
	fill(snap.Paddle.Rect, paddleColor)

	for _, f := range snap.Falling {
		dot(f.Position.X, f.Position.Y, PowerupColor(f.Type))
	}
	for _, b := range snap.Balls {
		color := BallColor
		if b.Fireball {
			color = FireballColor
		}
		dot(b.Position.X, b.Position.Y, color)
	}
	return pixels
}

// RenderToASCII converts pixels to colored ASCII, one line per row.
func RenderToASCII(pixels [][]RGBPixel) string {
	var ascii strings.Builder
	for _, row := range pixels {
		for _, pixel := range row {
			ascii.WriteString(rgbToAnsi(pixel))
			ascii.WriteRune(Glyph(pixel))
			ascii.WriteString("\033[0m") // Reset color after each character
		}
		ascii.WriteString("\n")
	}
	return ascii.String()
}

// RenderPlain is RenderToASCII without color codes.
func RenderPlain(pixels [][]RGBPixel) string {
	var ascii strings.Builder
	for _, row := range pixels {
		for _, pixel := range row {
			ascii.WriteRune(Glyph(pixel))
		}
		ascii.WriteString("\n")
	}
	return ascii.String()
}

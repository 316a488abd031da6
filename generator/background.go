package generator

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// PlainBackground is always available, even without an asset directory.
const PlainBackground = "plain"

const (
	toastWidth  = 320
	toastHeight = 64
	border      = 4
)

var (
	toastFill   = color.RGBA{R: 33, G: 33, B: 33, A: 255}
	toastBorder = color.RGBA{R: 85, G: 85, B: 85, A: 255}
	iconFill    = color.RGBA{R: 139, G: 139, B: 139, A: 255}
)

// plainBackground draws the toast frame with an empty icon slot.
func plainBackground() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, toastWidth, toastHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(toastBorder), image.Point{}, draw.Src)
	inner := image.Rect(border, border, toastWidth-border, toastHeight-border)
	draw.Draw(img, inner, image.NewUniform(toastFill), image.Point{}, draw.Src)
	icon := image.Rect(16, 16, 48, 48)
	draw.Draw(img, icon, image.NewUniform(iconFill), image.Point{}, draw.Src)
	return img
}

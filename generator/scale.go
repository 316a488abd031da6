package generator

import (
	"image"

	"golang.org/x/image/draw"
)

// upscale enlarges img by an integer factor. Nearest-neighbour keeps the
// pixel-art edges sharp.
func upscale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

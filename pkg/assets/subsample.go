package assets

import "image"

// Factor returns the smallest integer shrink factor that makes a w×h image
// fit maxW×maxH. Images that already fit get 1.
func Factor(w, h, maxW, maxH int) int {
	fw, fh := 1, 1
	if maxW > 0 && w > maxW {
		fw = (w + maxW - 1) / maxW
	}
	if maxH > 0 && h > maxH {
		fh = (h + maxH - 1) / maxH
	}
	return max(fw, fh)
}

// Subsample keeps every factor-th pixel on both axes.
func Subsample(src image.Image, factor int) image.Image {
	if factor <= 1 {
		return src
	}
	b := src.Bounds()
	w := (b.Dx() + factor - 1) / factor
	h := (b.Dy() + factor - 1) / factor

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(x, y, src.At(b.Min.X+x*factor, b.Min.Y+y*factor))
		}
	}
	return dst
}

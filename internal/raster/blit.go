package raster

// BlitSprite copies a w×h row-major image into the buffer with its top-left
// corner at (x, y). Destination pixels outside the buffer are skipped; there
// is no scaling and no transparency.
func BlitSprite(b *BackBuffer, src []Color, w, h, x, y int) {
	if w <= 0 || h <= 0 || len(src) < w*h || b.Empty() {
		return
	}

	// Horizontal clip, identical for every row.
	sx0 := max(0, -x)
	sx1 := min(w, b.Width-x)
	if sx0 >= sx1 {
		return
	}

	for dy := 0; dy < h; dy++ {
		ty := y + dy
		if ty < 0 {
			continue
		}
		if ty >= b.Height {
			break
		}
		dst := b.Pix[ty*b.Width+x+sx0 : ty*b.Width+x+sx1]
		copy(dst, src[dy*w+sx0:dy*w+sx1])
	}
}

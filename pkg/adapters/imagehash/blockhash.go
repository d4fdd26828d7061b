package imagehash

import (
	"image"
	"sort"
)

const (
	blockGrid  = 8 // 8x8 blocks, one bit each
	blockBands = 4 // Horizontal bands with their own median
)

// Blockhash computes a 64-bit block mean value hash.
// The image is split into an 8x8 grid; each block's summed RGB intensity
// is compared with the median of its horizontal band.
func Blockhash(img image.Image) uint64 {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 0
	}

	var blocks [blockGrid * blockGrid]uint64
	for y := 0; y < h; y++ {
		by := y * blockGrid / h
		for x := 0; x < w; x++ {
			bx := x * blockGrid / w
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			blocks[by*blockGrid+bx] += uint64(r>>8 + g>>8 + bl>>8)
		}
	}

	// Normalise by block area so uneven grids compare fairly.
	var values [blockGrid * blockGrid]float64
	for by := 0; by < blockGrid; by++ {
		rows := (by+1)*h/blockGrid - by*h/blockGrid
		for bx := 0; bx < blockGrid; bx++ {
			cols := (bx+1)*w/blockGrid - bx*w/blockGrid
			area := rows * cols
			if area > 0 {
				values[by*blockGrid+bx] = float64(blocks[by*blockGrid+bx]) / float64(area)
			}
		}
	}

	var hash uint64
	bandSize := len(values) / blockBands
	for band := 0; band < blockBands; band++ {
		part := values[band*bandSize : (band+1)*bandSize]
		m := median(part)
		for i, v := range part {
			if v > m {
				hash |= 1 << uint(len(values)-1-(band*bandSize+i))
			}
		}
	}
	return hash
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

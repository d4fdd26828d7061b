package scoring

import (
	"fmt"

	"github.com/user/lapse/pkg/ports"
)

// LumaPlane extracts the first channel sample of every pixel of a packed RGB24 frame.
func LumaPlane(frame ports.Frame) []byte {
	bpp := frame.Format.BytesPerPixel()
	if bpp == 0 {
		return nil
	}
	n := len(frame.Pix) / bpp
	luma := make([]byte, n)
	for i := 0; i < n; i++ {
		luma[i] = frame.Pix[i*bpp]
	}
	return luma
}

// MSE returns the mean of squared per-sample differences between a and b.
// Differences are taken in int so 8-bit deltas cannot wrap, and the sum is
// accumulated in uint64, which cannot overflow for any realistic frame size.
func MSE(a, b []byte) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d samples", ErrDimensionMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return 0, ports.ErrEmptyFrame
	}

	var sum uint64
	for i := range a {
		d := int(a[i]) - int(b[i])
		sum += uint64(d * d)
	}
	return float64(sum) / float64(len(a)), nil
}

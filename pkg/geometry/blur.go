package geometry

import (
	"github.com/user/xcandb/pkg/parallel"
	"github.com/user/xcandb/pkg/pixbuf"
)

// BlurRadius is the reach of the box kernel; the window is 7x7.
const BlurRadius = 3

// minBandRows keeps row bands large enough to be worth a worker.
const minBandRows = 16

// Blurrer applies the windowed box blur.
// Workers greater than one splits each pass into row bands; the output is
// identical to the sequential pass.
type Blurrer struct {
	Workers int
}

// Blur runs the box blur on buf with a single worker.
func Blur(buf *pixbuf.Buffer, r Rect, strength int) {
	Blurrer{Workers: 1}.Blur(buf, r, strength)
}

// Blur replaces the clamped rectangle of buf with strength passes of a 7x7
// box blur. Neighbours outside the rectangle are not sampled, so the divisor
// shrinks near its edges. Empty rectangles leave buf untouched.
func (b Blurrer) Blur(buf *pixbuf.Buffer, r Rect, strength int) {
	r = Clamp(r, buf.Width, buf.Height)
	if r.Empty() {
		return
	}

	w, h := r.Width, r.Height
	cur := make([]uint32, w*h)
	prev := make([]uint32, w*h)
	for dy := 0; dy < h; dy++ {
		from := (r.Y+dy)*buf.Width + r.X
		copy(cur[dy*w:(dy+1)*w], buf.Pix[from:from+w])
	}
	copy(prev, cur)

	workers := max(b.Workers, 1)
	if bands := h / minBandRows; bands < workers {
		workers = max(bands, 1)
	}
	pool := parallel.Start(workers)
	defer pool.Close()

	for pass := 0; pass < strength; pass++ {
		cur, prev = prev, cur
		if workers == 1 {
			blurRows(cur, prev, w, h, 0, h)
			continue
		}
		step := (h + workers - 1) / workers
		for y0 := 0; y0 < h; y0 += step {
			y1 := min(y0+step, h)
			dst, src := cur, prev
			pool.Do(func() { blurRows(dst, src, w, h, y0, y1) })
		}
		pool.Wait()
	}

	for dy := 0; dy < h; dy++ {
		to := (r.Y+dy)*buf.Width + r.X
		copy(buf.Pix[to:to+w], cur[dy*w:(dy+1)*w])
	}
}

// blurRows computes rows [y0, y1) of dst from src, both w x h.
func blurRows(dst, src []uint32, w, h, y0, y1 int) {
	for dy := y0; dy < y1; dy++ {
		ky0, ky1 := max(dy-BlurRadius, 0), min(dy+BlurRadius, h-1)
		for dx := 0; dx < w; dx++ {
			kx0, kx1 := max(dx-BlurRadius, 0), min(dx+BlurRadius, w-1)
			var r, g, b, n int
			for ky := ky0; ky <= ky1; ky++ {
				row := src[ky*w : (ky+1)*w]
				for kx := kx0; kx <= kx1; kx++ {
					c := row[kx]
					r += int(c>>16) & 0xff
					g += int(c>>8) & 0xff
					b += int(c) & 0xff
					n++
				}
			}
			dst[dy*w+dx] = uint32(r/n)<<16 | uint32(g/n)<<8 | uint32(b/n)
		}
	}
}

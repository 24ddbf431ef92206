package render

import (
	"image"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
	"golang.org/x/image/draw"
)

// Preview is a finished framebuffer scaled down for a terminal. Each cell
// shows two image rows with an upper half block: fg is the top pixel and
// bg the bottom one.
type Preview struct {
	img *image.RGBA
}

// NewPreview scales fb to fit cols×rows cells, keeping the aspect ratio.
func NewPreview(fb *Framebuffer, cols, rows int) *Preview {
	src := fb.ToImage()
	w, h := fit(fb.Width, fb.Height, cols, rows*2)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return &Preview{img: dst}
}

// Bounds returns the scaled image size in pixels.
func (p *Preview) Bounds() image.Rectangle {
	return p.img.Bounds()
}

// Draw converts the scaled image to terminal cells and draws them on the
// screen.
func (p *Preview) Draw(scr uv.Screen, area uv.Rectangle) {
	b := p.img.Bounds()
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		if topY >= b.Dy() {
			break
		}
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col-area.Min.X < b.Dx(); col++ {
			x := col - area.Min.X
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: p.at(x, topY),
					Bg: p.at(x, botY),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// at returns nil past the last row so odd heights leave the bottom half
// empty.
func (p *Preview) at(x, y int) color.Color {
	if y >= p.img.Bounds().Dy() {
		return nil
	}
	return p.img.RGBAAt(x, y)
}

// fit returns the largest size with the aspect ratio of w×h that fits in
// maxW×maxH, never smaller than 1×1.
func fit(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return 1, 1
	}
	if w*maxH > h*maxW {
		return maxW, max(1, h*maxW/w)
	}
	return max(1, w*maxH/h), maxH
}

// Package imagefile writes finished framebuffers to disk.
package imagefile

import (
	"encoding/binary"
	"io"

	"github.com/taigrr/swraster/pkg/render"
)

const (
	fileHeaderLen = 14
	infoHeaderLen = 40
	pixelOffset   = fileHeaderLen + infoHeaderLen
)

// EncodeBMP writes fb as an uncompressed 24-bit bitmap: the 14-byte file
// header, a 40-byte info header with everything past the bit count left
// zero, then BGR triples row by row starting at row 0 with no row padding.
// The height is positive, so viewers show row 0 at the bottom.
func EncodeBMP(w io.Writer, fb *render.Framebuffer) error {
	size := pixelOffset + len(fb.Pixels)*3
	buf := make([]byte, pixelOffset, size)

	buf[0], buf[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(buf[2:], uint32(size))
	// bytes 6..9 are reserved
	binary.LittleEndian.PutUint32(buf[10:], pixelOffset)

	binary.LittleEndian.PutUint32(buf[14:], infoHeaderLen)
	binary.LittleEndian.PutUint32(buf[18:], uint32(fb.Width))
	binary.LittleEndian.PutUint32(buf[22:], uint32(fb.Height))
	binary.LittleEndian.PutUint16(buf[26:], 1)
	binary.LittleEndian.PutUint16(buf[28:], 24)

	for _, p := range fb.Pixels {
		buf = append(buf, p.B, p.G, p.R)
	}

	_, err := w.Write(buf)
	return err
}

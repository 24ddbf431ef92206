package imagefile

import (
	"bufio"
	"errors"
	"fmt"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/google/renameio/v2"

	"github.com/taigrr/swraster/pkg/render"
)

// ErrUnknownFormat is returned for output formats that have no encoder.
var ErrUnknownFormat = errors.New("unknown image format")

// Format names an output encoding.
type Format string

const (
	BMP  Format = "bmp"
	PNG  Format = "png"
	WebP Format = "webp"
	TGA  Format = "tga"
)

// Formats lists every supported format.
var Formats = []Format{BMP, PNG, WebP, TGA}

// ParseFormat validates a format name. Case is ignored.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	switch f {
	case BMP, PNG, WebP, TGA:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Encode writes fb to w in the given format. Only BMP keeps the raw row
// order; the others go through render.Framebuffer.ToImage, which flips
// rows so every format shows the same picture.
func Encode(w io.Writer, fb *render.Framebuffer, f Format) error {
	switch f {
	case BMP:
		return EncodeBMP(w, fb)
	case PNG:
		return png.Encode(w, fb.ToImage())
	case WebP:
		return nativewebp.Encode(w, fb.ToImage(), nil)
	case TGA:
		return tga.Encode(w, fb.ToImage())
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// WriteFile encodes fb into a pending file next to path and renames it
// into place. On any failure the pending file is removed and path is left
// untouched.
func WriteFile(path string, fb *render.Framebuffer, f Format) error {
	if _, err := ParseFormat(string(f)); err != nil {
		return err
	}

	pf, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithPermissions(0o644),
	)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer pf.Cleanup()

	bw := bufio.NewWriter(pf)
	if err := Encode(bw, fb, f); err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

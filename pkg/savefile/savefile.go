// Package savefile loads a raw save-image dump and verifies its gross
// geometry. The image is read once and treated as read-only afterwards;
// every analysis package receives its bytes plus explicit bounds.
package savefile

import (
	"fmt"
	"os"

	"github.com/sramdig/sramdig/pkg/layout"
)

// Image is an immutable save-image dump. Callers must not modify the
// byte slice returned by Bytes.
type Image struct {
	data []byte
	path string
}

// New wraps an in-memory dump, for synthetic buffers in tests and tools.
func New(data []byte) *Image {
	return &Image{data: data}
}

// Load reads a save-image dump from disk.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read save image: %w", err)
	}
	return &Image{data: data, path: path}, nil
}

// Bytes returns the raw dump. Read-only by convention.
func (img *Image) Bytes() []byte {
	return img.data
}

// Len returns the dump size in bytes.
func (img *Image) Len() int {
	return len(img.data)
}

// Path returns the file the image was loaded from, empty for in-memory
// images.
func (img *Image) Path() string {
	return img.path
}

// CoversMainChunk reports whether the dump is large enough to hold the
// layout's main chunk.
func (img *Image) CoversMainChunk(l *layout.Layout) bool {
	return len(img.data) >= l.MainChunk.End
}

// VerifyMirror checks the byte-identical copy of the main chunk at the
// layout's mirror offset. It returns the offset of the first divergence,
// or -1 if the mirror matches. A dump too short to contain the mirror is
// an error: it means the file is truncated or the layout does not
// describe this image.
func (img *Image) VerifyMirror(l *layout.Layout) (int, error) {
	if l.MirrorOffset == 0 {
		return -1, nil
	}
	if len(img.data) < l.MirrorOffset+l.MainChunk.End {
		return 0, fmt.Errorf("image is %d bytes, mirror of %s at +0x%X does not fit",
			len(img.data), l.MainChunk, l.MirrorOffset)
	}
	for off := l.MainChunk.Start; off < l.MainChunk.End; off++ {
		if img.data[off] != img.data[off+l.MirrorOffset] {
			return off, nil
		}
	}
	return -1, nil
}

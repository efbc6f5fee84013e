package rendercache

import "github.com/hajimehoshi/ebiten/v2"

// ImageSurface backs a cache chunk with an ebiten image.
type ImageSurface struct {
	Image *ebiten.Image
}

func (s ImageSurface) Size() (int, int) {
	b := s.Image.Bounds()
	return b.Dx(), b.Dy()
}

func (s ImageSurface) Dispose() {
	s.Image.Deallocate()
}

// NewImageSurface is the SurfaceFactory used by the editor. Non-positive
// dimensions yield nil rather than an ebiten panic.
func NewImageSurface(w, h int) Surface {
	if w <= 0 || h <= 0 {
		return nil
	}
	return ImageSurface{Image: ebiten.NewImage(w, h)}
}

package rigging

import (
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// Textures loads and caches texture images by id. An id maps to
// <dir>/<id>.png. Missing or unreadable textures resolve to a shared 1x1
// magenta placeholder so composition never fails on a broken texture id.
type Textures struct {
	dir    string
	images map[string]*ebiten.Image
	warned map[string]bool
}

// NewTextures creates a registry over the given directory.
func NewTextures(dir string) *Textures {
	return &Textures{
		dir:    dir,
		images: make(map[string]*ebiten.Image),
		warned: make(map[string]bool),
	}
}

// magenta placeholder singleton (no sync.Once — rigging is single-threaded)
var magentaImage *ebiten.Image

func ensureMagentaImage() *ebiten.Image {
	if magentaImage == nil {
		magentaImage = ebiten.NewImage(1, 1)
		magentaImage.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return magentaImage
}

// Get returns the texture for id, loading it on first use. ok reports whether
// a real texture was found; on failure the magenta placeholder is returned
// and the miss is logged once.
func (t *Textures) Get(id string) (img *ebiten.Image, ok bool) {
	if img, hit := t.images[id]; hit {
		return img, true
	}

	img, err := t.loadImage(id)
	if err != nil {
		if !t.warned[id] {
			t.warned[id] = true
			log.Warn("texture not found, using placeholder", "id", id, "err", err)
		}
		return ensureMagentaImage(), false
	}
	t.images[id] = img
	return img, true
}

func (t *Textures) loadImage(id string) (*ebiten.Image, error) {
	f, err := os.Open(filepath.Join(t.dir, id+".png"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(src), nil
}

// Size returns the pixel size of the texture for id.
func (t *Textures) Size(id string) (w, h int, ok bool) {
	img, ok := t.Get(id)
	if !ok {
		return 0, 0, false
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), true
}

// Invalidate evicts the cached image for id, if present, and reports whether
// an eviction occurred. The next Get reloads from disk.
func (t *Textures) Invalidate(id string) bool {
	if img, ok := t.images[id]; ok {
		img.Deallocate()
		delete(t.images, id)
		delete(t.warned, id)
		return true
	}
	return false
}

// Clear drops every cached texture. Used on project switch.
func (t *Textures) Clear() {
	for _, img := range t.images {
		img.Deallocate()
	}
	t.images = make(map[string]*ebiten.Image)
	t.warned = make(map[string]bool)
}

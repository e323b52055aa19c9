package graphics

import (
	"fmt"
	"image"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	xdraw "golang.org/x/image/draw"
)

// Texture owns one GL texture object (2D or 3D).
type Texture struct {
	Name   string
	ID     uint32
	Width  int
	Height int
	Depth  int // 0 for 2D textures
	target uint32
}

// NewTexture2D uploads an RGBA image as a 2D texture with mipmaps.
// Images whose dimensions exceed maxSize are downscaled on the CPU first
// (Catmull-Rom) so oversized source art never exhausts GPU memory.
func NewTexture2D(name string, img image.Image, maxSize int) (*Texture, error) {
	rgba := toRGBA(img, maxSize)
	w := rgba.Bounds().Dx()
	h := rgba.Bounds().Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("texture %q: empty image", name)
	}

	t := &Texture{Name: name, Width: w, Height: h, target: gl.TEXTURE_2D}
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

// NewSolidTexture creates a 1×1 texture of a single RGBA color (0–255).
// Used as the fallback when a named texture lookup misses.
func NewSolidTexture(name string, r, g, b, a uint8) *Texture {
	t := &Texture{Name: name, Width: 1, Height: 1, target: gl.TEXTURE_2D}
	pix := []uint8{r, g, b, a}
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, 1, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

// NewTexture3D uploads a single-channel float volume (size³ values in x-major
// order) with trilinear filtering and wraparound addressing on all axes.
// Used for the volumetric fog noise volume.
func NewTexture3D(name string, size int, voxels []float32) (*Texture, error) {
	if len(voxels) != size*size*size {
		return nil, fmt.Errorf("texture %q: want %d voxels, got %d", name, size*size*size, len(voxels))
	}
	t := &Texture{Name: name, Width: size, Height: size, Depth: size, target: gl.TEXTURE_3D}
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_3D, t.ID)
	gl.TexImage3D(gl.TEXTURE_3D, 0, gl.R16F,
		int32(size), int32(size), int32(size), 0, gl.RED, gl.FLOAT, gl.Ptr(voxels))
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_R, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_3D, 0)
	return t, nil
}

// Bind binds the texture to the given texture unit.
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(t.target, t.ID)
}

// Destroy deletes the GL texture. Safe to call more than once.
func (t *Texture) Destroy() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}

// toRGBA converts any image to RGBA, downscaling when the larger dimension
// exceeds maxSize (0 = no limit).
func toRGBA(img image.Image, maxSize int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if maxSize > 0 && (w > maxSize || h > maxSize) {
		scale := float64(maxSize) / float64(max(w, h))
		w = int(float64(w) * scale)
		h = int(float64(h) * scale)
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
		return dst
	}

	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Copy(dst, image.Point{}, img, b, xdraw.Src, nil)
	return dst
}

package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ImageLoader fetches the bitmap behind an image element's Src.
type ImageLoader interface {
	Load(ctx context.Context, src string) (image.Image, error)
}

// Rasterize draws page onto an opaque white bitmap of page size × scale.
// Images that fail to load are left out; the rest of the page is still drawn.
func Rasterize(ctx context.Context, page *Page, scale float64, loader ImageLoader) (*image.RGBA, error) {
	if page == nil {
		return nil, fmt.Errorf("render: nil page")
	}
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Round(page.Width * scale))
	h := int(math.Round(page.Height * scale))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)

	faces := newFaceCache()
	for _, e := range page.Elements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch e.Kind {
		case KindRect:
			r := scaled(e, scale)
			radius := e.Radius * scale
			if e.StrokeWidth > 0 {
				sw := int(math.Max(1, math.Round(e.StrokeWidth*scale)))
				fillRounded(dst, r, radius, rgba(e.Stroke))
				r = r.Inset(sw)
				radius = math.Max(0, radius-float64(sw))
			}
			fillRounded(dst, r, radius, rgba(e.Fill))
		case KindLine:
			r := scaled(e, scale)
			if r.Dy() < 1 {
				r.Max.Y = r.Min.Y + 1
			}
			draw.Draw(dst, r, image.NewUniform(rgba(e.Stroke)), image.Point{}, draw.Src)
		case KindText:
			if err := drawText(dst, faces, e, scale); err != nil {
				return nil, err
			}
		case KindImage:
			if loader == nil || e.Src == "" {
				continue
			}
			img, err := loader.Load(ctx, e.Src)
			if err != nil {
				continue
			}
			drawContain(dst, scaled(e, scale), img)
		}
	}
	return dst, nil
}

func scaled(e Element, s float64) image.Rectangle {
	return image.Rect(
		int(math.Round(e.X*s)), int(math.Round(e.Y*s)),
		int(math.Round((e.X+e.W)*s)), int(math.Round((e.Y+e.H)*s)),
	)
}

func rgba(c Color) color.RGBA { return color.RGBA{c.R, c.G, c.B, 0xff} }

// fillRounded fills r, leaving out the corners outside the given radius.
func fillRounded(dst *image.RGBA, r image.Rectangle, radius float64, c color.RGBA) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	if radius < 1 {
		draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
		return
	}
	radius = math.Min(radius, math.Min(float64(r.Dx()), float64(r.Dy()))/2)
	minX, minY := float64(r.Min.X)+radius, float64(r.Min.Y)+radius
	maxX, maxY := float64(r.Max.X)-radius, float64(r.Max.Y)-radius
	for y := r.Min.Y; y < r.Max.Y; y++ {
		py := float64(y) + 0.5
		for x := r.Min.X; x < r.Max.X; x++ {
			px := float64(x) + 0.5
			cx := math.Max(minX, math.Min(px, maxX))
			cy := math.Max(minY, math.Min(py, maxY))
			if (px-cx)*(px-cx)+(py-cy)*(py-cy) <= radius*radius {
				dst.SetRGBA(x, y, c)
			}
		}
	}
}

func drawText(dst *image.RGBA, faces *faceCache, e Element, scale float64) error {
	if e.Text == "" {
		return nil
	}
	face, err := faces.face(e.Bold, e.Size*scale)
	if err != nil {
		return err
	}
	m := face.Metrics()
	boxH := e.H * scale
	glyphH := float64(m.Ascent+m.Descent) / 64
	baseline := e.Y*scale + (boxH-glyphH)/2 + float64(m.Ascent)/64

	x := e.X * scale
	if e.Align != AlignLeft {
		adv := float64(font.MeasureString(face, e.Text)) / 64
		free := e.W*scale - adv
		if e.Align == AlignCenter {
			free /= 2
		}
		x += free
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(rgba(e.Color)),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(baseline * 64)},
	}
	d.DrawString(e.Text)
	return nil
}

// drawContain scales img to fit inside r keeping its aspect ratio, anchored top-left.
func drawContain(dst *image.RGBA, r image.Rectangle, img image.Image) {
	b := img.Bounds()
	if b.Empty() || r.Empty() {
		return
	}
	k := math.Min(float64(r.Dx())/float64(b.Dx()), float64(r.Dy())/float64(b.Dy()))
	w := int(math.Max(1, math.Round(float64(b.Dx())*k)))
	h := int(math.Max(1, math.Round(float64(b.Dy())*k)))
	target := image.Rect(r.Min.X, r.Min.Y, r.Min.X+w, r.Min.Y+h)
	draw.CatmullRom.Scale(dst, target, img, b, draw.Over, nil)
}

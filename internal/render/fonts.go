package render

import (
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	fontsOnce   sync.Once
	regularFont *opentype.Font
	boldFont    *opentype.Font
	fontsErr    error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		if regularFont, fontsErr = opentype.Parse(goregular.TTF); fontsErr != nil {
			return
		}
		boldFont, fontsErr = opentype.Parse(gobold.TTF)
	})
	return fontsErr
}

type faceKey struct {
	bold bool
	size float64
}

// faceCache holds faces at 72 DPI so that one unit equals one point.
// Faces are not safe for concurrent use; mu guards both the map and measuring.
type faceCache struct {
	mu    sync.Mutex
	faces map[faceKey]font.Face
}

func newFaceCache() *faceCache {
	return &faceCache{faces: make(map[faceKey]font.Face)}
}

func (c *faceCache) face(bold bool, size float64) (font.Face, error) {
	k := faceKey{bold, size}
	if f, ok := c.faces[k]; ok {
		return f, nil
	}
	if err := loadFonts(); err != nil {
		return nil, err
	}
	src := regularFont
	if bold {
		src = boldFont
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, err
	}
	c.faces[k] = f
	return f, nil
}

var measureFaces = newFaceCache()

// measure returns the advance width of s in points.
func measure(s string, size float64, bold bool) float64 {
	measureFaces.mu.Lock()
	defer measureFaces.mu.Unlock()
	f, err := measureFaces.face(bold, size)
	if err != nil {
		// rough average glyph width
		return float64(len([]rune(s))) * size * 0.55
	}
	return float64(font.MeasureString(f, s)) / 64
}

// wrap breaks text into lines no wider than width. Words longer than a line
// are split by rune.
func wrap(text string, width, size float64, bold bool) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		line := ""
		for _, w := range words {
			for measure(w, size, bold) > width && len([]rune(w)) > 1 {
				head, tail := splitToFit(w, width, size, bold)
				if line != "" {
					out = append(out, line)
					line = ""
				}
				out = append(out, head)
				w = tail
			}
			candidate := w
			if line != "" {
				candidate = line + " " + w
			}
			if line != "" && measure(candidate, size, bold) > width {
				out = append(out, line)
				line = w
				continue
			}
			line = candidate
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func splitToFit(w string, width, size float64, bold bool) (string, string) {
	r := []rune(w)
	n := 1
	for n < len(r) && measure(string(r[:n+1]), size, bold) <= width {
		n++
	}
	return string(r[:n]), string(r[n:])
}

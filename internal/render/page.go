// Package render lays out an invoice as a fixed A4 page of positioned elements.
//
// Layout is pure: a template variant maps a DocumentView to elements. Backends
// draw the same Page as HTML (live preview, print) or as a bitmap (export).
package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/mhdyaseenvattappara/yazzfolio/internal/models"
)

// A4 in PostScript points.
const (
	PageWidth  = 595.0
	PageHeight = 842.0
)

// LineHeight is the text box height as a multiple of the font size.
const LineHeight = 1.2

type Kind int

const (
	KindRect Kind = iota
	KindText
	KindLine
	KindImage
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Color is an opaque sRGB color.
type Color struct{ R, G, B uint8 }

func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

// Element is one positioned primitive. Coordinates are points from the top-left corner.
// Text boxes are one line high (Size × LineHeight); Y is the top of the box.
type Element struct {
	Kind Kind
	X, Y float64
	W, H float64

	Fill        Color
	Stroke      Color
	StrokeWidth float64
	Radius      float64

	Text  string
	Size  float64
	Bold  bool
	Color Color
	Align Align

	Src string

	// Role tags the data an element shows, e.g. "total" or "item-amount".
	Role string
}

func (e Element) IsText() bool  { return e.Kind == KindText }
func (e Element) IsImage() bool { return e.Kind == KindImage }

// CSS returns the inline style placing the element on the HTML page.
// It is built from numbers and colors only.
func (e Element) CSS() template.CSS {
	var b strings.Builder
	fmt.Fprintf(&b, "left:%.2fpx;top:%.2fpx;width:%.2fpx;", e.X, e.Y, e.W)
	switch e.Kind {
	case KindText:
		fmt.Fprintf(&b, "height:%.2fpx;font-size:%.2fpx;line-height:%.2fpx;color:%s;", e.H, e.Size, e.H, e.Color.Hex())
		if e.Bold {
			b.WriteString("font-weight:700;")
		}
		switch e.Align {
		case AlignCenter:
			b.WriteString("text-align:center;")
		case AlignRight:
			b.WriteString("text-align:right;")
		}
	case KindRect:
		fmt.Fprintf(&b, "height:%.2fpx;background:%s;", e.H, e.Fill.Hex())
		if e.StrokeWidth > 0 {
			fmt.Fprintf(&b, "box-shadow:inset 0 0 0 %.2fpx %s;", e.StrokeWidth, e.Stroke.Hex())
		}
		if e.Radius > 0 {
			fmt.Fprintf(&b, "border-radius:%.2fpx;", e.Radius)
		}
	case KindLine:
		fmt.Fprintf(&b, "height:%.2fpx;background:%s;", e.H, e.Stroke.Hex())
	case KindImage:
		fmt.Fprintf(&b, "height:%.2fpx;object-fit:contain;object-position:left top;", e.H)
	}
	return template.CSS(b.String())
}

// Page is a laid-out invoice ready for a backend.
type Page struct {
	// Handle is the DOM id of the page root; distinct handles let several
	// copies of the same invoice coexist in one document.
	Handle        string
	Template      models.TemplateID
	InvoiceNumber string
	Width         float64
	Height        float64
	Elements      []Element
}

// Texts returns the text of every element with the given role, in layout order.
func (p *Page) Texts(role string) []string {
	var out []string
	for _, e := range p.Elements {
		if e.Kind == KindText && e.Role == role {
			out = append(out, e.Text)
		}
	}
	return out
}

// Find returns the elements with the given role.
func (p *Page) Find(role string) []Element {
	var out []Element
	for _, e := range p.Elements {
		if e.Role == role {
			out = append(out, e)
		}
	}
	return out
}

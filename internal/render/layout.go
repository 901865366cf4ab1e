package render

import (
	"errors"
	"strings"

	"github.com/mhdyaseenvattappara/yazzfolio/internal/models"
)

// DefaultHandle is used when the caller passes no handle.
const DefaultHandle = "invoice-document"

var ErrNilInvoice = errors.New("render: nil invoice")

type layoutFunc func(v DocumentView) []Element

var layouts = map[models.TemplateID]layoutFunc{
	models.TemplateModern:       modern,
	models.TemplateMinimalist:   minimalist,
	models.TemplateProfessional: professional,
}

// Layout renders inv with the given template. Unknown templates fall back to
// modern. The returned page is complete; no further rendering step is pending.
func Layout(inv *models.Invoice, tpl models.TemplateID, handle string) (*Page, error) {
	if inv == nil {
		return nil, ErrNilInvoice
	}
	fn, ok := layouts[tpl]
	if !ok {
		tpl, fn = models.TemplateModern, modern
	}
	return &Page{
		Handle:        sanitizeHandle(handle),
		Template:      tpl,
		InvoiceNumber: inv.InvoiceNumber,
		Width:         PageWidth,
		Height:        PageHeight,
		Elements:      fn(NewDocumentView(inv)),
	}, nil
}

// sanitizeHandle keeps characters valid in a DOM id.
func sanitizeHandle(h string) string {
	var b strings.Builder
	for _, r := range h {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return DefaultHandle
	}
	return b.String()
}

var (
	white     = Color{255, 255, 255}
	ink       = Color{17, 24, 39}
	slate     = Color{71, 85, 105}
	muted     = Color{148, 163, 184}
	hairline  = Color{226, 232, 240}
	paper     = Color{248, 250, 252}
	indigo    = Color{79, 70, 229}
	indigoInk = Color{224, 231, 255}
	navy      = Color{30, 41, 59}
	amber     = Color{217, 119, 6}
	green     = Color{22, 163, 74}
)

type style struct {
	size  float64
	bold  bool
	color Color
	align Align
}

func (s style) lineHeight() float64 { return s.size * LineHeight }

// canvas accumulates elements in paint order.
type canvas struct {
	els []Element
}

func (c *canvas) rect(x, y, w, h float64, fill Color) *Element {
	c.els = append(c.els, Element{Kind: KindRect, X: x, Y: y, W: w, H: h, Fill: fill})
	return &c.els[len(c.els)-1]
}

func (c *canvas) line(x, y, w, thickness float64, color Color) {
	c.els = append(c.els, Element{Kind: KindLine, X: x, Y: y, W: w, H: thickness, Stroke: color})
}

func (c *canvas) image(x, y, w, h float64, src, role string) {
	c.els = append(c.els, Element{Kind: KindImage, X: x, Y: y, W: w, H: h, Src: src, Role: role})
}

// text places one line and returns the y below it.
func (c *canvas) text(x, y, w float64, s string, st style, role string) float64 {
	c.els = append(c.els, Element{
		Kind: KindText, X: x, Y: y, W: w, H: st.lineHeight(),
		Text: s, Size: st.size, Bold: st.bold, Color: st.color, Align: st.align,
		Role: role,
	})
	return y + st.lineHeight()
}

// paragraph wraps s into w. The first line carries role; continuation lines
// get role+"-cont". It returns the y below the last line.
func (c *canvas) paragraph(x, y, w float64, s string, st style, role string) float64 {
	for i, l := range wrap(s, w, st.size, st.bold) {
		r := role
		if i > 0 && role != "" {
			r = role + "-cont"
		}
		y = c.text(x, y, w, l, st, r)
	}
	return y
}

// block prints a list of lines, each wrapped.
func (c *canvas) block(x, y, w float64, ls []string, st style, role string) float64 {
	for _, l := range ls {
		y = c.paragraph(x, y, w, l, st, role)
	}
	return y
}

// tableStyle describes the line-item table of one template.
type tableStyle struct {
	x, w       float64
	header     style
	headerFill *Color
	headerRule *Color
	row        style
	zebra      *Color
	rowRule    *Color
	pad        float64
	labels     [4]string
}

const (
	colQty    = 45.0
	colPrice  = 85.0
	colAmount = 90.0
)

// itemsTable draws the header and one row per item and returns the y below the table.
func (c *canvas) itemsTable(y float64, v DocumentView, t tableStyle) float64 {
	descW := t.w - colQty - colPrice - colAmount
	qtyX := t.x + descW
	priceX := qtyX + colQty
	amountX := priceX + colPrice

	headerH := t.header.lineHeight() + 2*t.pad
	if t.headerFill != nil {
		c.rect(t.x, y, t.w, headerH, *t.headerFill)
	}
	hy := y + t.pad
	right := t.header
	right.align = AlignRight
	c.text(t.x+t.pad, hy, descW-t.pad, t.labels[0], t.header, "")
	c.text(qtyX, hy, colQty, t.labels[1], right, "")
	c.text(priceX, hy, colPrice, t.labels[2], right, "")
	c.text(amountX, hy, colAmount-t.pad, t.labels[3], right, "")
	y += headerH
	if t.headerRule != nil {
		c.line(t.x, y, t.w, 1, *t.headerRule)
	}

	rowRight := t.row
	rowRight.align = AlignRight
	for i, r := range v.Rows {
		descLines := wrap(r.Description, descW-2*t.pad, t.row.size, t.row.bold)
		if len(descLines) == 0 {
			descLines = []string{""}
		}
		rowH := float64(len(descLines))*t.row.lineHeight() + 2*t.pad
		if t.zebra != nil && i%2 == 1 {
			c.rect(t.x, y, t.w, rowH, *t.zebra)
		}
		ry := y + t.pad
		ty := ry
		for j, l := range descLines {
			role := "item-desc"
			if j > 0 {
				role = "item-desc-cont"
			}
			ty = c.text(t.x+t.pad, ty, descW-2*t.pad, l, t.row, role)
		}
		c.text(qtyX, ry, colQty, r.Quantity, rowRight, "item-qty")
		c.text(priceX, ry, colPrice, r.UnitPrice, rowRight, "item-price")
		c.text(amountX, ry, colAmount-t.pad, r.Amount, rowRight, "item-amount")
		y += rowH
		if t.rowRule != nil {
			c.line(t.x, y, t.w, 0.75, *t.rowRule)
		}
	}
	return y
}

// totalRow prints a label/value pair right-aligned in [x, x+w].
func (c *canvas) totalRow(x, y, w float64, label, value string, st style, role string) float64 {
	left := st
	left.align = AlignLeft
	right := st
	right.align = AlignRight
	c.text(x, y, w/2, label, left, "")
	return c.text(x+w/2, y, w/2, value, right, role)
}

var tableLabels = [4]string{"Description", "Qty", "Unit Price", "Amount"}

func statusColor(s models.InvoiceStatus) Color {
	switch s {
	case models.InvoiceStatusPaid:
		return green
	case models.InvoiceStatusPending:
		return amber
	}
	return slate
}

func ptr(c Color) *Color { return &c }

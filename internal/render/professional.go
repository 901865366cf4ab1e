package render

// professional: letterhead with issuer details, status badge, bordered table and totals box.
func professional(v DocumentView) []Element {
	c := &canvas{}
	const (
		margin = 48.0
		width  = PageWidth - 2*margin
	)

	body := style{size: 9.5, color: ink}
	quiet := style{size: 9, color: slate}
	caps := style{size: 7.5, bold: true, color: slate}

	// letterhead
	y := 48.0
	textW := width
	if v.Logo != "" {
		c.image(margin+width-120, y, 120, 56, v.Logo, "logo")
		textW -= 136
	}
	y = c.paragraph(margin, y, textW, v.IssuerName, style{size: 18, bold: true, color: navy}, "issuer-name")
	y = c.block(margin, y+2, textW, v.IssuerAddress, quiet, "issuer-address")
	if v.IssuerEmail != "" {
		y = c.paragraph(margin, y, textW, v.IssuerEmail, quiet, "issuer-email")
	}
	y = max(y, 48+56) + 14
	c.line(margin, y, width, 2, navy)
	c.line(margin, y+4, width, 0.5, navy)

	// title and badge
	y += 22
	c.text(margin, y, width/2, "INVOICE", style{size: 24, bold: true, color: navy}, "")
	badge := statusColor(v.Status)
	bx := margin + width - 90
	r := c.rect(bx, y+6, 90, 22, white)
	r.Stroke, r.StrokeWidth, r.Radius = badge, 1.5, 11
	c.text(bx, y+11, 90, v.StatusLabel(), style{size: 8.5, bold: true, color: badge, align: AlignCenter}, "status")
	y += 52

	// bill-to box and details box; contents go on an inner canvas so the frames paint first
	boxW := width/2 - 8
	boxTop := y
	inner := &canvas{}
	left := inner.text(margin+12, y+10, boxW-24, "BILL TO", caps, "")
	left = inner.paragraph(margin+12, left+4, boxW-24, v.ClientName, style{size: 10.5, bold: true, color: ink}, "client-name")
	left = inner.block(margin+12, left+2, boxW-24, v.ClientAddress, quiet, "client-address")

	dx := margin + boxW + 16
	right := inner.text(dx+12, y+10, boxW-24, "INVOICE DETAILS", caps, "") + 4
	for _, kv := range []struct{ k, v, role string }{
		{"Invoice No.", v.Number, "number"},
		{"Issue Date", v.IssueDate, "issue-date"},
		{"Due Date", v.DueDate, "due-date"},
	} {
		right = inner.totalRow(dx+12, right, boxW-24, kv.k, kv.v, body, kv.role) + 2
	}
	boxH := max(left, right) - boxTop + 10
	for _, bx := range []float64{margin, dx} {
		b := c.rect(bx, boxTop, boxW, boxH, white)
		b.Stroke, b.StrokeWidth = hairline, 1
	}
	c.els = append(c.els, inner.els...)

	y = boxTop + boxH + 24
	y = c.itemsTable(y, v, tableStyle{
		x: margin, w: width,
		header:     style{size: 8, bold: true, color: white},
		headerFill: ptr(navy),
		row:        body,
		zebra:      ptr(paper),
		rowRule:    ptr(hairline),
		pad:        7,
		labels:     tableLabels,
	})

	tw := 220.0
	tx := margin + width - tw
	y += 16
	totTop := y
	inner = &canvas{}
	ty := inner.totalRow(tx+12, y+10, tw-24, "Subtotal", v.Subtotal, quiet, "subtotal")
	ty = inner.totalRow(tx+12, ty+4, tw-24, v.TaxLabel, v.TaxAmount, quiet, "tax-amount")
	band := ty + 8
	frame := c.rect(tx, totTop, tw, band+30-totTop, white)
	frame.Stroke, frame.StrokeWidth = navy, 1
	c.els = append(c.els, inner.els...)
	c.rect(tx, band, tw, 30, navy)
	c.totalRow(tx+12, band+8, tw-24, "Total Due", v.Total, style{size: 11, bold: true, color: white}, "total")
	y = band + 30

	if len(v.Notes) > 0 {
		y += 28
		y = c.text(margin, y, width, "NOTES & TERMS", caps, "")
		c.block(margin, y+4, width, v.Notes, quiet, "notes")
	}

	c.line(margin, PageHeight-56, width, 0.5, hairline)
	c.text(margin, PageHeight-46, width, "Thank you for your business.", style{size: 8.5, color: muted, align: AlignCenter}, "")
	return c.els
}

package render

// minimalist: generous margins, hairline table, understated totals.
func minimalist(v DocumentView) []Element {
	c := &canvas{}
	const (
		margin = 64.0
		width  = PageWidth - 2*margin
		half   = width / 2
	)

	light := style{size: 8, color: muted}
	body := style{size: 9.5, color: ink}
	quiet := style{size: 9, color: slate}

	y := 64.0
	if v.Logo != "" {
		c.image(margin+width-90, y, 90, 36, v.Logo, "logo")
	}
	y = c.text(margin, y, half, "Invoice", style{size: 28, color: ink}, "")
	y = c.text(margin, y+4, half, "No. "+v.Number, quiet, "number")

	y += 36
	top := y
	y = c.text(margin, y, half-16, "FROM", light, "")
	y = c.paragraph(margin, y+4, half-16, v.IssuerName, body, "issuer-name")
	y = c.block(margin, y, half-16, v.IssuerAddress, quiet, "issuer-address")
	if v.IssuerEmail != "" {
		y = c.paragraph(margin, y, half-16, v.IssuerEmail, quiet, "issuer-email")
	}

	cy := c.text(margin+half, top, half, "BILLED TO", light, "")
	cy = c.paragraph(margin+half, cy+4, half, v.ClientName, body, "client-name")
	cy = c.block(margin+half, cy, half, v.ClientAddress, quiet, "client-address")
	y = max(y, cy) + 28

	third := width / 3
	c.text(margin, y, third, "ISSUED", light, "")
	c.text(margin+third, y, third, "DUE", light, "")
	c.text(margin+2*third, y, third, "STATUS", light, "")
	y += light.lineHeight() + 4
	c.text(margin, y, third, v.IssueDate, body, "issue-date")
	c.text(margin+third, y, third, v.DueDate, body, "due-date")
	y = c.text(margin+2*third, y, third, v.StatusLabel(), quiet, "status")

	y += 40
	y = c.itemsTable(y, v, tableStyle{
		x: margin, w: width,
		header:     style{size: 8, color: muted},
		headerRule: ptr(ink),
		row:        body,
		rowRule:    ptr(hairline),
		pad:        9,
		labels:     tableLabels,
	})

	tx := margin + width - 200
	y += 24
	y = c.totalRow(tx, y, 200, "Subtotal", v.Subtotal, quiet, "subtotal")
	y = c.totalRow(tx, y+6, 200, v.TaxLabel, v.TaxAmount, quiet, "tax-amount")
	y += 10
	c.line(tx, y, 200, 0.75, ink)
	y = c.totalRow(tx, y+10, 200, "Total", v.Total, style{size: 12, bold: true, color: ink}, "total")

	if len(v.Notes) > 0 {
		y += 48
		y = c.text(margin, y, width, "NOTES", light, "")
		c.block(margin, y+4, width, v.Notes, quiet, "notes")
	}
	return c.els
}

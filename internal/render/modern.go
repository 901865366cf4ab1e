package render

// modern: dark accent sidebar with parties and dates, dense table, large total callout.
func modern(v DocumentView) []Element {
	c := &canvas{}
	const (
		sideW  = 175.0
		sideX  = 28.0
		sideIn = sideW - 2*sideX
		mainX  = sideW + 28
		mainW  = PageWidth - mainX - 30
	)

	c.rect(0, 0, sideW, PageHeight, ink)
	c.rect(0, 0, sideW, 6, indigo)

	label := style{size: 7.5, bold: true, color: Color{129, 140, 248}}
	value := style{size: 9.5, color: white}
	small := style{size: 8.5, color: Color{203, 213, 225}}

	y := 40.0
	if v.Logo != "" {
		c.image(sideX, y, sideIn, 48, v.Logo, "logo")
		y += 64
	}
	y = c.text(sideX, y, sideIn, "INVOICE", style{size: 22, bold: true, color: white}, "")
	y = c.text(sideX, y+2, sideIn, "#"+v.Number, style{size: 12, color: indigoInk}, "number")

	y += 28
	y = c.text(sideX, y, sideIn, "ISSUE DATE", label, "")
	y = c.text(sideX, y+2, sideIn, v.IssueDate, value, "issue-date")
	y += 12
	y = c.text(sideX, y, sideIn, "DUE DATE", label, "")
	y = c.text(sideX, y+2, sideIn, v.DueDate, value, "due-date")

	y += 28
	y = c.text(sideX, y, sideIn, "BILL TO", label, "")
	y = c.paragraph(sideX, y+2, sideIn, v.ClientName, style{size: 10.5, bold: true, color: white}, "client-name")
	y = c.block(sideX, y+2, sideIn, v.ClientAddress, small, "client-address")

	y += 28
	y = c.text(sideX, y, sideIn, "FROM", label, "")
	y = c.paragraph(sideX, y+2, sideIn, v.IssuerName, style{size: 10.5, bold: true, color: white}, "issuer-name")
	if v.IssuerEmail != "" {
		y = c.paragraph(sideX, y+2, sideIn, v.IssuerEmail, small, "issuer-email")
	}
	c.block(sideX, y+2, sideIn, v.IssuerAddress, small, "issuer-address")

	// main column
	my := 44.0
	my = c.text(mainX, my, mainW, "Amount due", style{size: 9, color: slate}, "")
	my = c.text(mainX, my, mainW, v.Total, style{size: 26, bold: true, color: ink}, "")
	my += 26

	my = c.itemsTable(my, v, tableStyle{
		x: mainX, w: mainW,
		header:     style{size: 8, bold: true, color: white},
		headerFill: ptr(indigo),
		row:        style{size: 9, color: ink},
		rowRule:    ptr(hairline),
		pad:        6,
		labels:     tableLabels,
	})

	tx := mainX + mainW - 210
	my += 16
	my = c.totalRow(tx, my, 210, "Subtotal", v.Subtotal, style{size: 9.5, color: slate}, "subtotal")
	my = c.totalRow(tx, my+4, 210, v.TaxLabel, v.TaxAmount, style{size: 9.5, color: slate}, "tax-amount")
	my += 12

	c.rect(tx, my, 210, 54, indigo).Radius = 6
	c.text(tx+14, my+8, 182, "TOTAL", style{size: 8, bold: true, color: indigoInk}, "")
	c.text(tx+14, my+20, 182, v.Total, style{size: 20, bold: true, color: white, align: AlignRight}, "total")
	my += 54

	if len(v.Notes) > 0 {
		my += 32
		my = c.text(mainX, my, mainW, "NOTES", style{size: 8, bold: true, color: indigo}, "")
		c.block(mainX, my+4, mainW, v.Notes, style{size: 9, color: slate}, "notes")
	}

	c.text(mainX, PageHeight-40, mainW, "Thank you for your business.", style{size: 8.5, color: muted}, "")
	return c.els
}

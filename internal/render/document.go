package render

import (
	"strconv"
	"strings"

	"github.com/mhdyaseenvattappara/yazzfolio/internal/models"
)

// DateLayout formats issue and due dates on every template.
const DateLayout = "Jan 02, 2006"

// Row is one formatted line item.
type Row struct {
	ID          int
	Description string
	Quantity    string
	UnitPrice   string
	Amount      string
}

// DocumentView holds every string a template prints. All three templates
// render from the same view, so totals, dates and row order cannot diverge.
type DocumentView struct {
	Number    string
	IssueDate string
	DueDate   string
	Status    models.InvoiceStatus

	IssuerName    string
	IssuerAddress []string
	IssuerEmail   string
	Logo          string

	ClientName    string
	ClientAddress []string

	Rows      []Row
	Subtotal  string
	TaxLabel  string
	TaxAmount string
	Total     string

	Notes    []string
	Currency string
}

// NewDocumentView formats inv for display. Totals are recomputed from the items.
func NewDocumentView(inv *models.Invoice) DocumentView {
	cur := inv.Currency
	if cur.Code == "" {
		cur = models.DefaultCurrency
	}
	totals := inv.Totals()

	v := DocumentView{
		Number:        inv.InvoiceNumber,
		IssueDate:     inv.IssueDate.Format(DateLayout),
		DueDate:       inv.DueDate.Format(DateLayout),
		Status:        inv.Status,
		IssuerName:    inv.IssuerName,
		IssuerAddress: lines(inv.IssuerAddress),
		IssuerEmail:   strings.TrimSpace(inv.IssuerEmail),
		Logo:          strings.TrimSpace(inv.IssuerLogo),
		ClientName:    inv.ClientName,
		ClientAddress: lines(inv.ClientAddress),
		Subtotal:      cur.Format(totals.Subtotal),
		TaxLabel:      "Tax (" + strconv.FormatFloat(inv.Tax, 'f', -1, 64) + "%)",
		TaxAmount:     cur.Format(totals.TaxAmount),
		Total:         cur.Format(totals.Total),
		Notes:         lines(inv.Notes),
		Currency:      cur.Code,
	}
	if v.Status == "" {
		v.Status = models.InvoiceStatusDraft
	}
	for _, it := range inv.Items {
		v.Rows = append(v.Rows, Row{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    strconv.FormatFloat(it.Quantity, 'f', -1, 64),
			UnitPrice:   cur.Format(it.UnitPrice),
			Amount:      cur.Format(it.Amount()),
		})
	}
	return v
}

// StatusLabel is the badge text of the status.
func (v DocumentView) StatusLabel() string {
	return strings.ToUpper(string(v.Status))
}

// lines splits free text into trimmed, non-empty lines.
func lines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

package services

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mhdyaseenvattappara/yazzfolio/internal/models"
	"github.com/mhdyaseenvattappara/yazzfolio/validation"
)

// InputDateLayout is the wire format of dates posted by the editor.
const InputDateLayout = "2006-01-02"

// InvoiceInput is the editor form state. It is turned into an Invoice for
// saving, for a live preview or for a direct export; the last two never persist it.
type InvoiceInput struct {
	ID            string            `json:"id"`
	InvoiceNumber string            `json:"invoice_number"`
	IssuerName    string            `json:"issuer_name"`
	IssuerAddress string            `json:"issuer_address"`
	IssuerEmail   string            `json:"issuer_email"`
	IssuerLogo    string            `json:"issuer_logo"`
	ClientName    string            `json:"client_name"`
	ClientAddress string            `json:"client_address"`
	Items         []models.LineItem `json:"items"`
	Tax           float64           `json:"tax"`
	Currency      string            `json:"currency"`
	Notes         string            `json:"notes"`
	IssueDate     string            `json:"issue_date"`
	DueDate       string            `json:"due_date"`
	Status        string            `json:"status"`
	TemplateID    string            `json:"template_id"`
}

// InvoiceInputFromForm reads the editor's urlencoded form. Line items are
// parallel item_id/item_description/item_quantity/item_unit_price lists.
func InvoiceInputFromForm(form url.Values) (InvoiceInput, validation.Violations) {
	v := make(validation.Violations)
	in := InvoiceInput{
		ID:            form.Get("id"),
		InvoiceNumber: strings.TrimSpace(form.Get("invoice_number")),
		IssuerName:    form.Get("issuer_name"),
		IssuerAddress: form.Get("issuer_address"),
		IssuerEmail:   form.Get("issuer_email"),
		IssuerLogo:    form.Get("issuer_logo"),
		ClientName:    form.Get("client_name"),
		ClientAddress: form.Get("client_address"),
		Currency:      form.Get("currency"),
		Notes:         form.Get("notes"),
		IssueDate:     form.Get("issue_date"),
		DueDate:       form.Get("due_date"),
		Status:        form.Get("status"),
		TemplateID:    form.Get("template_id"),
	}
	tax, err := parseNumber(form.Get("tax"))
	if err != nil {
		v["tax"] = "invalid"
	}
	in.Tax = tax

	ids := form["item_id"]
	descs := form["item_description"]
	qtys := form["item_quantity"]
	prices := form["item_unit_price"]
	for i := range descs {
		item := models.LineItem{Description: descs[i]}
		if i < len(ids) {
			item.ID, _ = strconv.Atoi(ids[i])
		}
		if i < len(qtys) {
			q, err := parseNumber(qtys[i])
			if err != nil {
				v[fmt.Sprintf("items.%d.quantity", i)] = "invalid"
			}
			item.Quantity = q
		}
		if i < len(prices) {
			p, err := parseNumber(prices[i])
			if err != nil {
				v[fmt.Sprintf("items.%d.unit_price", i)] = "invalid"
			}
			item.UnitPrice = p
		}
		in.Items = append(in.Items, item)
	}
	return in, v
}

var errNotFinite = errors.New("not a finite number")

// parseNumber reads a decimal field; blank is zero. NaN and infinities are
// rejected because they cannot be stored or summed into a total.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, errNotFinite
	}
	return n, nil
}

// Build validates the input and returns the invoice it describes.
// Line items without an id get the next free one; their order is kept.
func (in InvoiceInput) Build() (*models.Invoice, validation.Violations) {
	v := make(validation.Violations)
	validation.Required("invoice_number", in.InvoiceNumber, v)
	validation.RangeFloat("tax", in.Tax, -100, 100, v)

	inv := &models.Invoice{
		InvoiceNumber: in.InvoiceNumber,
		IssuerName:    strings.TrimSpace(in.IssuerName),
		IssuerAddress: strings.TrimSpace(in.IssuerAddress),
		IssuerEmail:   strings.TrimSpace(in.IssuerEmail),
		IssuerLogo:    strings.TrimSpace(in.IssuerLogo),
		ClientName:    strings.TrimSpace(in.ClientName),
		ClientAddress: strings.TrimSpace(in.ClientAddress),
		Tax:           in.Tax,
		Notes:         strings.TrimSpace(in.Notes),
	}
	inv.ID = in.ID

	inv.Currency = models.DefaultCurrency
	if in.Currency != "" {
		c, ok := models.LookupCurrency(in.Currency)
		if !ok {
			v["currency"] = "invalid"
		}
		inv.Currency = c
	}

	inv.Status = models.InvoiceStatusDraft
	if in.Status != "" {
		inv.Status = models.InvoiceStatus(in.Status)
		if !inv.Status.Valid() {
			v["status"] = "invalid"
		}
	}

	inv.TemplateID = models.TemplateModern
	if in.TemplateID != "" {
		inv.TemplateID = models.TemplateID(in.TemplateID)
		if !inv.TemplateID.Valid() {
			v["template_id"] = "invalid"
		}
	}

	var err error
	if inv.IssueDate, err = time.Parse(InputDateLayout, in.IssueDate); err != nil {
		v["issue_date"] = "invalid"
	}
	if inv.DueDate, err = time.Parse(InputDateLayout, in.DueDate); err != nil {
		v["due_date"] = "invalid"
	}

	next := (&models.Invoice{Items: in.Items}).NextLineItemID()
	for i, it := range in.Items {
		validation.NonNegativeFloat(fmt.Sprintf("items.%d.quantity", i), it.Quantity, v)
		validation.NonNegativeFloat(fmt.Sprintf("items.%d.unit_price", i), it.UnitPrice, v)
		it.Description = strings.TrimSpace(it.Description)
		if it.ID == 0 {
			it.ID = next
			next++
		}
		inv.Items = append(inv.Items, it)
	}
	inv.SyncTotal()
	return inv, v
}

// InputFromInvoice converts a stored invoice back to editor state.
func InputFromInvoice(inv *models.Invoice) InvoiceInput {
	return InvoiceInput{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		IssuerName:    inv.IssuerName,
		IssuerAddress: inv.IssuerAddress,
		IssuerEmail:   inv.IssuerEmail,
		IssuerLogo:    inv.IssuerLogo,
		ClientName:    inv.ClientName,
		ClientAddress: inv.ClientAddress,
		Items:         append([]models.LineItem(nil), inv.Items...),
		Tax:           inv.Tax,
		Currency:      inv.Currency.Code,
		Notes:         inv.Notes,
		IssueDate:     inv.IssueDate.Format(InputDateLayout),
		DueDate:       inv.DueDate.Format(InputDateLayout),
		Status:        string(inv.Status),
		TemplateID:    string(inv.TemplateID),
	}
}

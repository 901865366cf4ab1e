package models

import "time"

// InvoiceStatus represents the status of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Valid reports whether s is one of the known statuses.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusPaid:
		return true
	}
	return false
}

// TemplateID selects the visual layout used to render an invoice.
// It never affects totals.
type TemplateID string

const (
	TemplateModern       TemplateID = "modern"
	TemplateMinimalist   TemplateID = "minimalist"
	TemplateProfessional TemplateID = "professional"
)

// Templates lists the available layouts in display order.
var Templates = []TemplateID{TemplateModern, TemplateMinimalist, TemplateProfessional}

// Valid reports whether t names a known layout.
func (t TemplateID) Valid() bool {
	switch t {
	case TemplateModern, TemplateMinimalist, TemplateProfessional:
		return true
	}
	return false
}

// LineItem is one billable row of an invoice.
type LineItem struct {
	ID          int     `json:"id" firestore:"id"`
	Description string  `json:"description" firestore:"description"`
	Quantity    float64 `json:"quantity" firestore:"quantity"`
	UnitPrice   float64 `json:"unit_price" firestore:"unit_price"`
}

// Amount returns quantity × unit price.
func (li LineItem) Amount() float64 {
	return li.Quantity * li.UnitPrice
}

// Invoice is the aggregate root of the invoicing feature.
// Line items and currency are embedded by value.
type Invoice struct {
	Base

	InvoiceNumber string `gorm:"size:20;index" json:"invoice_number" firestore:"invoice_number"`

	// Issuer defaults are copied from the admin profile when the draft is created.
	IssuerName    string `gorm:"size:255" json:"issuer_name" firestore:"issuer_name"`
	IssuerAddress string `gorm:"type:text" json:"issuer_address" firestore:"issuer_address"`
	IssuerEmail   string `gorm:"size:255" json:"issuer_email" firestore:"issuer_email"`
	IssuerLogo    string `gorm:"size:500" json:"issuer_logo,omitempty" firestore:"issuer_logo"`

	ClientName    string `gorm:"size:255" json:"client_name" firestore:"client_name"`
	ClientAddress string `gorm:"type:text" json:"client_address,omitempty" firestore:"client_address"`

	Items    []LineItem `gorm:"serializer:json" json:"items" firestore:"items"`
	Tax      float64    `json:"tax" firestore:"tax"`
	Currency Currency   `gorm:"serializer:json" json:"currency" firestore:"currency"`
	Notes    string     `gorm:"type:text" json:"notes,omitempty" firestore:"notes"`

	IssueDate time.Time `json:"issue_date" firestore:"issue_date"`
	DueDate   time.Time `json:"due_date" firestore:"due_date"`

	Status     InvoiceStatus `gorm:"size:20;default:'draft'" json:"status" firestore:"status"`
	TemplateID TemplateID    `gorm:"size:20;default:'modern'" json:"template_id" firestore:"template_id"`

	// Total is stored alongside the items so listings can sort without recomputing.
	Total float64 `json:"total" firestore:"total"`
}

// Totals recomputes subtotal, tax amount and total from the line items.
func (i *Invoice) Totals() Totals {
	return ComputeTotals(i.Items, i.Tax)
}

// SyncTotal copies the recomputed total into the persisted Total field.
func (i *Invoice) SyncTotal() {
	i.Total = i.Totals().Total
}

// IsPaid returns true once the invoice has been settled.
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// NextLineItemID returns an id not used by any current line item.
func (i *Invoice) NextLineItemID() int {
	max := 0
	for _, it := range i.Items {
		if it.ID > max {
			max = it.ID
		}
	}
	return max + 1
}

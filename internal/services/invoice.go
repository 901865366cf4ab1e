package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mhdyaseenvattappara/yazzfolio/internal/models"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/store"
)

var ErrInvalidStatus = errors.New("invalid_status")

// DefaultDueDays is the gap between issue date and due date of a new draft.
const DefaultDueDays = 30

// InvoiceService owns the invoice lifecycle: numbering, drafts, saves, status and revenue.
type InvoiceService struct {
	invoices store.Collection[models.Invoice]
	profiles store.Collection[models.AdminProfile]
	now      func() time.Time
}

func NewInvoiceService(invoices store.Collection[models.Invoice], profiles store.Collection[models.AdminProfile]) *InvoiceService {
	return &InvoiceService{invoices: invoices, profiles: profiles, now: time.Now}
}

// NextInvoiceNumber increments last and zero-pads it to three digits.
// An empty or non-numeric value starts the sequence at "001".
func NextInvoiceNumber(last string) string {
	n, err := strconv.Atoi(strings.TrimSpace(last))
	if err != nil || n < 0 {
		return "001"
	}
	return fmt.Sprintf("%03d", n+1)
}

// NextNumber reads the owner's highest invoice number and returns the following one.
// The read is not transactional: two drafts created concurrently can get the same number.
func (s *InvoiceService) NextNumber(ctx context.Context, owner string) (string, error) {
	latest, err := s.invoices.List(ctx, owner, store.Query{OrderBy: "invoice_number", Desc: true, Limit: 1})
	if err != nil {
		return "", fmt.Errorf("latest invoice: %w", err)
	}
	if len(latest) == 0 {
		return NextInvoiceNumber(""), nil
	}
	return NextInvoiceNumber(latest[0].InvoiceNumber), nil
}

// NewDraft builds an unsaved invoice with a provisional number and the
// issuer defaults copied from the owner's profile.
func (s *InvoiceService) NewDraft(ctx context.Context, owner string) (*models.Invoice, error) {
	number, err := s.NextNumber(ctx, owner)
	if err != nil {
		return nil, err
	}
	today := s.today()
	inv := &models.Invoice{
		InvoiceNumber: number,
		Items:         []models.LineItem{{ID: 1, Quantity: 1}},
		Currency:      models.DefaultCurrency,
		IssueDate:     today,
		DueDate:       today.AddDate(0, 0, DefaultDueDays),
		Status:        models.InvoiceStatusDraft,
		TemplateID:    models.TemplateModern,
	}

	profile, err := s.profiles.Get(ctx, owner, owner)
	switch {
	case err == nil:
		inv.IssuerName = profile.Name
		inv.IssuerAddress = profile.Address
		inv.IssuerEmail = profile.Email
		inv.IssuerLogo = profile.LogoURL
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return inv, nil
}

func (s *InvoiceService) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Save creates or replaces the invoice, persisting the recomputed total.
func (s *InvoiceService) Save(ctx context.Context, owner string, inv *models.Invoice) error {
	if inv.Status == "" {
		inv.Status = models.InvoiceStatusDraft
	}
	if !inv.TemplateID.Valid() {
		inv.TemplateID = models.TemplateModern
	}
	inv.SyncTotal()
	if err := s.invoices.Save(ctx, owner, inv); err != nil {
		return fmt.Errorf("save invoice %s: %w", inv.InvoiceNumber, err)
	}
	return nil
}

func (s *InvoiceService) Get(ctx context.Context, owner, id string) (*models.Invoice, error) {
	return s.invoices.Get(ctx, owner, id)
}

// List returns the owner's invoices, highest number first.
func (s *InvoiceService) List(ctx context.Context, owner string) ([]models.Invoice, error) {
	return s.invoices.List(ctx, owner, store.Query{OrderBy: "invoice_number", Desc: true})
}

// SetStatus changes only the status, leaving commercial fields untouched.
func (s *InvoiceService) SetStatus(ctx context.Context, owner, id string, status models.InvoiceStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	return s.invoices.Update(ctx, owner, id, map[string]any{"status": string(status)})
}

// Delete removes the invoice permanently.
func (s *InvoiceService) Delete(ctx context.Context, owner, id string) error {
	return s.invoices.Delete(ctx, owner, id)
}

// Revenue summarizes persisted totals by status for the dashboard.
type Revenue struct {
	Paid    float64 `json:"paid"`
	Pending float64 `json:"pending"`
	Draft   float64 `json:"draft"`
	Count   int     `json:"count"`
}

// Revenue sums persisted totals per status. Amounts in different currencies
// are added as-is.
func (s *InvoiceService) Revenue(ctx context.Context, owner string) (Revenue, error) {
	all, err := s.invoices.List(ctx, owner, store.Query{})
	if err != nil {
		return Revenue{}, err
	}
	var r Revenue
	for _, inv := range all {
		switch inv.Status {
		case models.InvoiceStatusPaid:
			r.Paid += inv.Total
		case models.InvoiceStatusPending:
			r.Pending += inv.Total
		default:
			r.Draft += inv.Total
		}
	}
	r.Count = len(all)
	return r, nil
}

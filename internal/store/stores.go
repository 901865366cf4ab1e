package store

import (
	"cloud.google.com/go/firestore"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/models"
	"gorm.io/gorm"
)

// Stores bundles one collection per persisted model.
type Stores struct {
	Invoices     Collection[models.Invoice]
	Portfolio    Collection[models.PortfolioItem]
	Testimonials Collection[models.Testimonial]
	Services     Collection[models.Service]
	Timeline     Collection[models.TimelineEvent]
	Tools        Collection[models.Tool]
	Messages     Collection[models.ContactMessage]
	Profiles     Collection[models.AdminProfile]
	Accounts     Collection[models.Account]
}

// NewGormStores backs every collection with a SQL table.
func NewGormStores(db *gorm.DB) *Stores {
	return &Stores{
		Invoices:     NewGormCollection[models.Invoice](db),
		Portfolio:    NewGormCollection[models.PortfolioItem](db),
		Testimonials: NewGormCollection[models.Testimonial](db),
		Services:     NewGormCollection[models.Service](db),
		Timeline:     NewGormCollection[models.TimelineEvent](db),
		Tools:        NewGormCollection[models.Tool](db),
		Messages:     NewGormCollection[models.ContactMessage](db),
		Profiles:     NewGormCollection[models.AdminProfile](db),
		Accounts:     NewGormCollection[models.Account](db),
	}
}

// NewFirestoreStores backs every collection with Firestore documents.
func NewFirestoreStores(client *firestore.Client) *Stores {
	return &Stores{
		Invoices:     NewFirestoreCollection[models.Invoice](client, CollectionInvoices),
		Portfolio:    NewFirestoreCollection[models.PortfolioItem](client, CollectionPortfolio),
		Testimonials: NewFirestoreCollection[models.Testimonial](client, CollectionTestimonials),
		Services:     NewFirestoreCollection[models.Service](client, CollectionServices),
		Timeline:     NewFirestoreCollection[models.TimelineEvent](client, CollectionTimeline),
		Tools:        NewFirestoreCollection[models.Tool](client, CollectionTools),
		Messages:     NewFirestoreCollection[models.ContactMessage](client, CollectionMessages),
		Profiles:     NewFirestoreCollection[models.AdminProfile](client, CollectionProfile),
		Accounts:     NewFirestoreCollection[models.Account](client, CollectionAccounts),
	}
}

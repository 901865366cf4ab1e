package models

import "time"

// Base carries the identity and timestamps shared by every owner-scoped record.
type Base struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id" firestore:"-"`
	OwnerID   string    `gorm:"index;size:64" json:"owner_id" firestore:"owner_id"`
	CreatedAt time.Time `json:"created_at" firestore:"created_at"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updated_at"`
}

func (b *Base) GetID() string            { return b.ID }
func (b *Base) SetID(id string)          { b.ID = id }
func (b *Base) GetOwnerID() string       { return b.OwnerID }
func (b *Base) SetOwnerID(owner string)  { b.OwnerID = owner }
func (b *Base) GetCreatedAt() time.Time  { return b.CreatedAt }
func (b *Base) SetCreatedAt(t time.Time) { b.CreatedAt = t }

// Touch sets CreatedAt on first save and UpdatedAt on every save.
func (b *Base) Touch(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// GetUserID implements the Ownable interface for authorization.
func (b *Base) GetUserID() string { return b.OwnerID }

type PortfolioItem struct {
	Base
	Title       string   `gorm:"size:255;not null" json:"title" firestore:"title" validate:"required"`
	Description string   `gorm:"type:text" json:"description" firestore:"description"`
	ImageURL    string   `gorm:"size:500" json:"image_url" firestore:"image_url" validate:"required,url"`
	Category    string   `gorm:"size:100" json:"category" firestore:"category"`
	Tags        []string `gorm:"serializer:json" json:"tags" firestore:"tags"`
	Link        string   `gorm:"size:500" json:"link,omitempty" firestore:"link" validate:"omitempty,url"`
	Featured    bool     `json:"featured" firestore:"featured"`
	Order       int      `gorm:"column:sort_order" json:"order" firestore:"sort_order"`
}

type Testimonial struct {
	Base
	Name      string `gorm:"size:255;not null" json:"name" firestore:"name" validate:"required"`
	Role      string `gorm:"size:255" json:"role" firestore:"role"`
	Company   string `gorm:"size:255" json:"company" firestore:"company"`
	Quote     string `gorm:"type:text" json:"quote" firestore:"quote" validate:"required"`
	AvatarURL string `gorm:"size:500" json:"avatar_url,omitempty" firestore:"avatar_url" validate:"omitempty,url"`
	Rating    int    `json:"rating" firestore:"rating" validate:"omitempty,min=1,max=5"`
}

type Service struct {
	Base
	Title       string `gorm:"size:255;not null" json:"title" firestore:"title" validate:"required"`
	Description string `gorm:"type:text" json:"description" firestore:"description" validate:"required"`
	Icon        Icon   `gorm:"size:50" json:"icon" firestore:"icon" validate:"required"`
	Order       int    `gorm:"column:sort_order" json:"order" firestore:"sort_order"`
}

type TimelineEvent struct {
	Base
	Year        string `gorm:"size:20;not null" json:"year" firestore:"year" validate:"required"`
	Title       string `gorm:"size:255;not null" json:"title" firestore:"title" validate:"required"`
	Subtitle    string `gorm:"size:255" json:"subtitle" firestore:"subtitle"`
	Description string `gorm:"type:text" json:"description" firestore:"description"`
	Order       int    `gorm:"column:sort_order" json:"order" firestore:"sort_order"`
}

type Tool struct {
	Base
	Name     string `gorm:"size:100;not null" json:"name" firestore:"name" validate:"required"`
	Icon     Icon   `gorm:"size:50" json:"icon" firestore:"icon"`
	Category string `gorm:"size:100" json:"category" firestore:"category"`
	Order    int    `gorm:"column:sort_order" json:"order" firestore:"sort_order"`
}

// ContactMessage is a message left through the public contact form.
type ContactMessage struct {
	Base
	Name    string `gorm:"size:255;not null" json:"name" firestore:"name" validate:"required"`
	Email   string `gorm:"size:255;not null" json:"email" firestore:"email" validate:"required,email"`
	Subject string `gorm:"size:255" json:"subject" firestore:"subject"`
	Message string `gorm:"type:text" json:"message" firestore:"message" validate:"required"`
	IsRead  bool   `json:"is_read" firestore:"is_read"`
}

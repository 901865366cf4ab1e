package models

// AdminProfile holds the owner's public identity and invoice issuer defaults.
// There is one profile per owner; its ID equals the owner ID.
type AdminProfile struct {
	Base
	Name      string            `gorm:"size:255;not null" json:"name" firestore:"name" validate:"required"`
	Title     string            `gorm:"size:255" json:"title" firestore:"title"`
	Bio       string            `gorm:"type:text" json:"bio" firestore:"bio"`
	Email     string            `gorm:"size:255" json:"email" firestore:"email" validate:"omitempty,email"`
	Phone     string            `gorm:"size:50" json:"phone,omitempty" firestore:"phone"`
	Address   string            `gorm:"type:text" json:"address,omitempty" firestore:"address"`
	LogoURL   string            `gorm:"size:500" json:"logo_url,omitempty" firestore:"logo_url" validate:"omitempty,url"`
	AvatarURL string            `gorm:"size:500" json:"avatar_url,omitempty" firestore:"avatar_url" validate:"omitempty,url"`
	Socials   map[string]string `gorm:"serializer:json" json:"socials,omitempty" firestore:"socials"`
}

// Account is the admin login. Accounts live in an unscoped collection;
// the account ID is the owner ID of every content record.
type Account struct {
	Base
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email" firestore:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-" firestore:"password_hash"`
}

package model

import "time"

// Plan is a purchasable visibility tier. Rows are owned by the catalog
// source; this service only ever reads them.
type Plan struct {
	ID        string    `gorm:"primaryKey;size:64;not null" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	BasePrice int64     `gorm:"not null" json:"base_price"` // minor units
	Features  []string  `gorm:"serializer:json" json:"features"`
	Color     *string   `gorm:"size:16" json:"color,omitempty"`
	Icon      *string   `gorm:"size:32" json:"icon,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Plan) TableName() string {
	return "subscription_plans"
}

// CheckoutSession is the persisted (plan, duration) choice, one row per
// buyer. Overwritten on every checkout continuation, cleared after a
// successful payment.
type CheckoutSession struct {
	UserID     string `gorm:"primaryKey;size:64;not null"`
	PlanID     string `gorm:"size:64;not null"`
	DurationID string `gorm:"size:16;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (CheckoutSession) TableName() string {
	return "checkout_sessions"
}

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// VerificationDocument is created exactly once per submission, after all
// three document uploads succeeded.
type VerificationDocument struct {
	ID                uint               `gorm:"primaryKey"`
	UserID            string             `gorm:"column:user_id;size:64;index;not null"`
	DocumentFrontURL  string             `gorm:"column:document_front_url;not null"`
	DocumentBackURL   string             `gorm:"column:document_back_url;not null"`
	DocumentSelfieURL string             `gorm:"column:document_selfie_url;not null"`
	Status            VerificationStatus `gorm:"size:16;index;not null"`
	CreatedAt         time.Time
}

func (VerificationDocument) TableName() string {
	return "verification_documents"
}

package domain

import "time"

// Dismissal is a standing suppression of one (company, field) pair from the
// owner's notification feed. It persists until explicitly cleared, even if
// the underlying date changes.
type Dismissal struct {
	OwnerUserID string    `json:"-" dynamodbav:"owner_user_id"`
	DismissKey  string    `json:"-" dynamodbav:"dismiss_key"` // companyID#field
	CompanyID   string    `json:"companyId" dynamodbav:"company_id"`
	Field       string    `json:"field" dynamodbav:"field"`
	DismissedAt time.Time `json:"dismissedAt" dynamodbav:"dismissed_at"`
}

type DismissRequest struct {
	CompanyID string `json:"companyId" validate:"required"`
	Field     string `json:"field" validate:"required"`
}

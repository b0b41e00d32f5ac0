package domain

import "time"

// Domestic is a housemaid sponsorship record with a single tracked expiry.
type Domestic struct {
	DomesticID  string    `json:"id" dynamodbav:"domestic_id"`
	Sponsor     string    `json:"sponsor" dynamodbav:"sponsor"`
	Contact     string    `json:"contact" dynamodbav:"contact"`
	Housemaid   string    `json:"housemaid" dynamodbav:"housemaid"`
	DamanExp    time.Time `json:"damanExp" dynamodbav:"daman_exp"`
	Status      string    `json:"status" dynamodbav:"status"`
	OwnerUserID string    `json:"-" dynamodbav:"owner_user_id"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateDomesticRequest struct {
	Sponsor   string `json:"sponsor" validate:"required"`
	Contact   string `json:"contact" validate:"required"`
	Housemaid string `json:"housemaid" validate:"required"`
	DamanExp  string `json:"damanExp" validate:"required"` // expected format: YYYY-MM-DD
}

type UpdateDomesticRequest struct {
	Sponsor   *string `json:"sponsor"`
	Contact   *string `json:"contact"`
	Housemaid *string `json:"housemaid"`
	DamanExp  *string `json:"damanExp"`
}

package domain

import "time"

// NotificationItem is one entry of the expiry feed: a single company field
// that is expired or about to expire.
type NotificationItem struct {
	CompanyID   string    `json:"companyId"`
	Field       string    `json:"field"`
	Type        string    `json:"type"` // expiry.StatusExpired or expiry.StatusNearlyExpired
	CompanyName string    `json:"companyName"`
	Label       string    `json:"label"`
	Date        time.Time `json:"date"`
}

type RemindRequest struct {
	Channel   string `json:"channel" validate:"required,oneof=email sms"`
	CompanyID string `json:"companyId" validate:"required_if=Channel sms"`
	Field     string `json:"field" validate:"required_if=Channel sms"`
}

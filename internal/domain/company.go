package domain

import "time"

// Company is a commercial record tracked by one owning user. The five expiry
// dates drive the derived status; json tags keep the dashboard's original
// camelCase wire names.
type Company struct {
	CompanyID   string    `json:"id" dynamodbav:"company_id"`
	CompanyName string    `json:"companyName" dynamodbav:"company_name"`
	MobileNo    string    `json:"mobileNo" dynamodbav:"mobile_no"`
	LicenceExp  time.Time `json:"licenceExp" dynamodbav:"licence_exp"`
	MunshaExp   time.Time `json:"munshaExp" dynamodbav:"munsha_exp"`
	MathafiExp  time.Time `json:"mathafiExp" dynamodbav:"mathafi_exp"`
	DamanExp    time.Time `json:"damanExp" dynamodbav:"daman_exp"`
	EchannelExp time.Time `json:"echannelExp" dynamodbav:"echannel_exp"`
	Status      string    `json:"status" dynamodbav:"status"`
	OwnerUserID string    `json:"-" dynamodbav:"owner_user_id"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

// ExpiryDates returns the tracked dates in their canonical order.
func (c *Company) ExpiryDates() []time.Time {
	return []time.Time{c.LicenceExp, c.MunshaExp, c.MathafiExp, c.DamanExp, c.EchannelExp}
}

type CreateCompanyRequest struct {
	CompanyName string `json:"companyName" validate:"required"`
	MobileNo    string `json:"mobileNo" validate:"required"`
	LicenceExp  string `json:"licenceExp" validate:"required"` // expected format: YYYY-MM-DD
	MunshaExp   string `json:"munshaExp" validate:"required"`
	MathafiExp  string `json:"mathafiExp" validate:"required"`
	DamanExp    string `json:"damanExp" validate:"required"`
	EchannelExp string `json:"echannelExp" validate:"required"`
}

type UpdateCompanyRequest struct {
	CompanyName *string `json:"companyName"`
	MobileNo    *string `json:"mobileNo"`
	LicenceExp  *string `json:"licenceExp"`
	MunshaExp   *string `json:"munshaExp"`
	MathafiExp  *string `json:"mathafiExp"`
	DamanExp    *string `json:"damanExp"`
	EchannelExp *string `json:"echannelExp"`
}

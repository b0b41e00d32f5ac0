package domain

import "time"

// Document is a scanned licence/contract attached to a company. The bytes
// live in S3 under Object; this row is the metadata.
type Document struct {
	DocumentID       string    `json:"id" dynamodbav:"document_id"`
	CompanyID        string    `json:"companyId" dynamodbav:"company_id"`
	Name             string    `json:"name" dynamodbav:"name"`
	Object           string    `json:"-" dynamodbav:"object"`
	Size             int64     `json:"size" dynamodbav:"size"`
	ContentType      string    `json:"contentType" dynamodbav:"content_type"`
	UploadedByUserID string    `json:"-" dynamodbav:"uploaded_by_user_id"`
	CreatedAt        time.Time `json:"created" dynamodbav:"created_at"`
}

type UploadDocumentRequest struct {
	Name string `json:"name" validate:"required"`
	Data string `json:"data" validate:"required"` // base64-encoded file content
}

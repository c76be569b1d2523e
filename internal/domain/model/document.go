package model

import (
	"errors"
	"strings"
	"time"
)

const maxDocumentSizeBytes = 50 << 20 // 50 MiB

// Document is metadata for a file shared with a client. The bytes live in
// object storage under StorageKey.
type Document struct {
	ID          string    `json:"id"           db:"id"`
	ClientID    string    `json:"client_id"    db:"client_id"`
	Name        string    `json:"name"         db:"name"`
	StorageKey  string    `json:"-"            db:"storage_key"`
	ContentType string    `json:"content_type" db:"content_type"`
	SizeBytes   int64     `json:"size_bytes"   db:"size_bytes"`
	UploadedBy  string    `json:"uploaded_by"  db:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"   db:"created_at"`
}

// DocumentWithClient is a document row joined with the client it belongs to,
// used by the back-office listing.
type DocumentWithClient struct {
	Document
	ClientName string `json:"client_name" db:"client_name"`
}

// CreateDocumentRequest represents parameters to register an uploaded document.
type CreateDocumentRequest struct {
	ClientID    string
	Name        string
	ContentType string
	SizeBytes   int64
	UploadedBy  string
}

// Validate validates CreateDocumentRequest.
func (r *CreateDocumentRequest) Validate() error {
	if strings.TrimSpace(r.ClientID) == "" {
		return errors.New("client_id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required and cannot be empty")
	}
	if r.SizeBytes <= 0 {
		return errors.New("size_bytes must be > 0")
	}
	if r.SizeBytes > maxDocumentSizeBytes {
		return errors.New("document exceeds maximum size of 50 MiB")
	}
	if r.ContentType == "" {
		r.ContentType = "application/octet-stream"
	}
	return nil
}

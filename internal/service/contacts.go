package service

import (
	"context"
	"log/slog"

	"github.com/nardonidigital/agency-api/internal/core"
	"github.com/nardonidigital/agency-api/internal/domain/model"
)

// ContactService handles public contact form submissions and their triage in
// the back office.
type ContactService struct {
	contacts core.ContactRepository
	logger   *slog.Logger
}

// NewContactService constructs a new ContactService.
func NewContactService(contacts core.ContactRepository, logger *slog.Logger) *ContactService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactService{contacts: contacts, logger: logger}
}

// Submit records a public contact form submission.
func (s *ContactService) Submit(ctx context.Context, req *model.CreateContactRequest) (*model.ContactSubmission, error) {
	submission, err := s.contacts.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "contact form submission received",
		"submission_id", submission.ID,
		"email", submission.Email,
	)
	return submission, nil
}

// List returns submissions for the back office.
func (s *ContactService) List(ctx context.Context, limit, offset int, unhandledOnly bool) ([]*model.ContactSubmission, error) {
	return s.contacts.List(ctx, limit, offset, unhandledOnly)
}

// MarkHandled flags a submission as handled.
func (s *ContactService) MarkHandled(ctx context.Context, id string) (*model.ContactSubmission, error) {
	return s.contacts.MarkHandled(ctx, id)
}

// Delete removes a submission.
func (s *ContactService) Delete(ctx context.Context, id string) (bool, error) {
	return s.contacts.Delete(ctx, id)
}

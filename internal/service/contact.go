package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/bharat-abroad/internal/store"
)

// ContactForm is the public enquiry form.
type ContactForm struct {
	Name      string `form:"name" validate:"notblank,max=200"`
	Email     string `form:"email" validate:"required,email,max=254"`
	Phone     string `form:"phone" validate:"max=50"`
	EventType string `form:"event_type" validate:"max=100"`
	Message   string `form:"message" validate:"notblank,max=5000"`
}

// ContactService records enquiries from the contact form.
type ContactService struct {
	queries *store.Queries
}

// NewContactService creates a new ContactService.
func NewContactService(db *sql.DB) *ContactService {
	return &ContactService{queries: store.New(db)}
}

// Submit stores an enquiry with status new.
func (s *ContactService) Submit(ctx context.Context, in ContactForm) (store.ContactSubmission, error) {
	sub, err := s.queries.CreateContactSubmission(ctx, store.CreateContactSubmissionParams{
		Name:      cleanText(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Phone:     cleanText(in.Phone),
		EventType: cleanText(in.EventType),
		Message:   cleanText(in.Message),
		Status:    store.SubmissionStatusNew,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return store.ContactSubmission{}, fmt.Errorf("creating contact submission: %w", err)
	}

	slog.Info("contact submission received", "id", sub.ID)
	return sub, nil
}

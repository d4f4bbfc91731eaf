package dashboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/olegiv/bharat-abroad/internal/service"
	"github.com/olegiv/bharat-abroad/internal/store"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidStatus = errors.New("invalid status")
	ErrTitleRequired = errors.New("title is required")
	ErrUnknownKey    = errors.New("unknown content key")
	ErrNothingToSave = errors.New("no draft for this key")
	ErrNotImageKey   = errors.New("not an image content key")
)

// EventStatuses and SubmissionStatuses list the allowed values in display order.
var (
	EventStatuses      = []string{store.EventStatusPending, store.EventStatusApproved, store.EventStatusRejected}
	SubmissionStatuses = []string{store.SubmissionStatusNew, store.SubmissionStatusContacted, store.SubmissionStatusClosed}
)

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// SetEventStatus moves an event to status. The snapshot entry is replaced
// with the stored row only after the update succeeds.
func (s *Service) SetEventStatus(ctx context.Context, admin store.AdminUser, id int64, status string) (store.Event, error) {
	if !slices.Contains(EventStatuses, status) {
		return store.Event{}, ErrInvalidStatus
	}

	var updated store.Event
	_, err := s.update(ctx, admin, func(snap *Snapshot) error {
		e, err := s.queries.UpdateEventStatus(ctx, store.UpdateEventStatusParams{ID: id, Status: status})
		if err != nil {
			return notFound(err)
		}
		updated = e
		for i := range snap.Events {
			if snap.Events[i].ID == id {
				snap.Events[i] = e
			}
		}
		return nil
	})
	if err != nil {
		return store.Event{}, fmt.Errorf("updating event %d: %w", id, err)
	}

	s.catalog.Invalidate(ctx)
	slog.Info("event status changed", "id", id, "status", status, "admin_id", admin.ID)
	return updated, nil
}

// SetSubmissionStatus moves a contact submission to status.
func (s *Service) SetSubmissionStatus(ctx context.Context, admin store.AdminUser, id int64, status string) (store.ContactSubmission, error) {
	if !slices.Contains(SubmissionStatuses, status) {
		return store.ContactSubmission{}, ErrInvalidStatus
	}

	var updated store.ContactSubmission
	_, err := s.update(ctx, admin, func(snap *Snapshot) error {
		sub, err := s.queries.UpdateContactSubmissionStatus(ctx, store.UpdateContactSubmissionStatusParams{ID: id, Status: status})
		if err != nil {
			return notFound(err)
		}
		updated = sub
		for i := range snap.Submissions {
			if snap.Submissions[i].ID == id {
				snap.Submissions[i] = sub
			}
		}
		return nil
	})
	if err != nil {
		return store.ContactSubmission{}, fmt.Errorf("updating submission %d: %w", id, err)
	}

	slog.Info("submission status changed", "id", id, "status", status, "admin_id", admin.ID)
	return updated, nil
}

// Submission returns one submission from the snapshot.
func (s *Service) Submission(ctx context.Context, admin store.AdminUser, id int64) (store.ContactSubmission, error) {
	for _, sub := range s.Load(ctx, admin).Submissions {
		if sub.ID == id {
			return sub, nil
		}
	}
	return store.ContactSubmission{}, ErrNotFound
}

// DeleteEvent removes an event and then drops it from the snapshot.
func (s *Service) DeleteEvent(ctx context.Context, admin store.AdminUser, id int64) error {
	_, err := s.update(ctx, admin, func(snap *Snapshot) error {
		if err := s.queries.DeleteEvent(ctx, id); err != nil {
			return notFound(err)
		}
		snap.Events = slices.DeleteFunc(snap.Events, func(e store.Event) bool { return e.ID == id })
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting event %d: %w", id, err)
	}
	s.catalog.Invalidate(ctx)
	slog.Info("event deleted", "id", id, "admin_id", admin.ID)
	return nil
}

// DeleteSubmission removes a contact submission.
func (s *Service) DeleteSubmission(ctx context.Context, admin store.AdminUser, id int64) error {
	_, err := s.update(ctx, admin, func(snap *Snapshot) error {
		if err := s.queries.DeleteContactSubmission(ctx, id); err != nil {
			return notFound(err)
		}
		snap.Submissions = slices.DeleteFunc(snap.Submissions, func(x store.ContactSubmission) bool { return x.ID == id })
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting submission %d: %w", id, err)
	}
	slog.Info("submission deleted", "id", id, "admin_id", admin.ID)
	return nil
}

// DeletePortfolio removes a portfolio item.
func (s *Service) DeletePortfolio(ctx context.Context, admin store.AdminUser, id int64) error {
	_, err := s.update(ctx, admin, func(snap *Snapshot) error {
		if err := s.queries.DeletePortfolioItem(ctx, id); err != nil {
			return notFound(err)
		}
		snap.Portfolio = slices.DeleteFunc(snap.Portfolio, func(x store.PortfolioItem) bool { return x.ID == id })
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting portfolio item %d: %w", id, err)
	}
	slog.Info("portfolio item deleted", "id", id, "admin_id", admin.ID)
	return nil
}

// PortfolioInput is the portfolio editor form. ID 0 creates a new item.
type PortfolioInput struct {
	ID          int64
	Title       string `form:"title"`
	Category    string `form:"category"`
	Location    string `form:"location"`
	Guests      string `form:"guests"`
	Date        string `form:"date"`
	Image       string `form:"image"`
	Description string `form:"description"`
}

// Portfolio returns one item from the snapshot.
func (s *Service) Portfolio(ctx context.Context, admin store.AdminUser, id int64) (store.PortfolioItem, error) {
	for _, p := range s.Load(ctx, admin).Portfolio {
		if p.ID == id {
			return p, nil
		}
	}
	return store.PortfolioItem{}, ErrNotFound
}

// SavePortfolio creates or updates a portfolio item. New items are prepended
// to the snapshot list, updated items replace their entry in place.
func (s *Service) SavePortfolio(ctx context.Context, admin store.AdminUser, in PortfolioInput) (store.PortfolioItem, error) {
	if strings.TrimSpace(in.Title) == "" {
		return store.PortfolioItem{}, ErrTitleRequired
	}

	var saved store.PortfolioItem
	_, err := s.update(ctx, admin, func(snap *Snapshot) error {
		now := time.Now().UTC()
		if in.ID == 0 {
			item, err := s.queries.CreatePortfolioItem(ctx, store.CreatePortfolioItemParams{
				Title:       strings.TrimSpace(in.Title),
				Category:    in.Category,
				Location:    in.Location,
				Guests:      in.Guests,
				Date:        in.Date,
				Image:       in.Image,
				Description: in.Description,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
			if err != nil {
				return err
			}
			saved = item
			snap.Portfolio = append([]store.PortfolioItem{item}, snap.Portfolio...)
			return nil
		}

		item, err := s.queries.UpdatePortfolioItem(ctx, store.UpdatePortfolioItemParams{
			ID:          in.ID,
			Title:       strings.TrimSpace(in.Title),
			Category:    in.Category,
			Location:    in.Location,
			Guests:      in.Guests,
			Date:        in.Date,
			Image:       in.Image,
			Description: in.Description,
			UpdatedAt:   now,
		})
		if err != nil {
			return notFound(err)
		}
		saved = item
		for i := range snap.Portfolio {
			if snap.Portfolio[i].ID == item.ID {
				snap.Portfolio[i] = item
			}
		}
		return nil
	})
	if err != nil {
		return store.PortfolioItem{}, fmt.Errorf("saving portfolio item: %w", err)
	}
	return saved, nil
}

// SetDraft records an unsaved content value.
func (s *Service) SetDraft(ctx context.Context, admin store.AdminUser, key, value string) error {
	if !service.IsContentKey(key) {
		return ErrUnknownKey
	}
	_, err := s.update(ctx, admin, func(snap *Snapshot) error {
		snap.Drafts[key] = value
		return nil
	})
	return err
}

// SaveContent commits the draft for one key.
func (s *Service) SaveContent(ctx context.Context, admin store.AdminUser, key string) error {
	if !service.IsContentKey(key) {
		return ErrUnknownKey
	}
	_, err := s.update(ctx, admin, func(snap *Snapshot) error {
		value, ok := snap.Drafts[key]
		if !ok {
			return ErrNothingToSave
		}
		if _, err := s.content.Save(ctx, key, value); err != nil {
			return err
		}
		snap.Content[key] = value
		return nil
	})
	return err
}

// SaveAllContent commits, in sorted key order, every draft that differs from
// the saved value. It stops at the first failure and returns the keys saved
// before it.
func (s *Service) SaveAllContent(ctx context.Context, admin store.AdminUser) ([]string, error) {
	var saved []string
	_, err := s.update(ctx, admin, func(snap *Snapshot) error {
		keys := make([]string, 0, len(snap.Drafts))
		for k := range snap.Drafts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			draft := snap.Drafts[key]
			if current, ok := snap.Content[key]; ok && current == draft {
				continue
			}
			if _, err := s.content.Save(ctx, key, draft); err != nil {
				return fmt.Errorf("saving %q: %w", key, err)
			}
			snap.Content[key] = draft
			saved = append(saved, key)
		}
		return nil
	})
	return saved, err
}

// SaveImageContent stores an uploaded image URL under an image key at once.
func (s *Service) SaveImageContent(ctx context.Context, admin store.AdminUser, key, url string) error {
	if !service.IsImageKey(key) {
		return ErrNotImageKey
	}
	_, err := s.update(ctx, admin, func(snap *Snapshot) error {
		if _, err := s.content.Save(ctx, key, url); err != nil {
			return err
		}
		snap.Content[key] = url
		snap.Drafts[key] = url
		return nil
	})
	return err
}

// AddUser creates an admin account and appends it to the snapshot.
func (s *Service) AddUser(ctx context.Context, admin store.AdminUser, in service.NewUser) (store.AdminUser, error) {
	var created store.AdminUser
	_, err := s.update(ctx, admin, func(snap *Snapshot) error {
		u, err := s.accounts.AddUser(ctx, admin, in)
		if err != nil {
			return err
		}
		u.PasswordHash = ""
		created = u
		snap.Users = append(snap.Users, u)
		return nil
	})
	return created, err
}

// DeleteUser removes another admin account.
func (s *Service) DeleteUser(ctx context.Context, admin store.AdminUser, id int64) error {
	_, err := s.update(ctx, admin, func(snap *Snapshot) error {
		if err := s.accounts.DeleteUser(ctx, admin, id); err != nil {
			return err
		}
		snap.Users = slices.DeleteFunc(snap.Users, func(u store.AdminUser) bool { return u.ID == id })
		return nil
	})
	return err
}

// ResetPassword sets another admin's password.
func (s *Service) ResetPassword(ctx context.Context, admin store.AdminUser, id int64, password string) error {
	return s.accounts.ResetPassword(ctx, admin, id, password)
}

// ChangePassword replaces the acting admin's own password.
func (s *Service) ChangePassword(ctx context.Context, admin store.AdminUser, current, next, confirm string) error {
	return s.accounts.ChangePassword(ctx, admin, current, next, confirm)
}

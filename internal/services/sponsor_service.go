package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/soberlog/soberlog/internal/models"
	"github.com/soberlog/soberlog/internal/schema"
	"github.com/soberlog/soberlog/internal/storage"
)

// SponsorContactService manages sponsor contacts and the action items
// hanging off them. Action items live in their own collection, related by
// contactId.
type SponsorContactService struct {
	store *storage.Store
}

// NewSponsorContactService creates a new instance of SponsorContactService.
func NewSponsorContactService(store *storage.Store) *SponsorContactService {
	return &SponsorContactService{store: store}
}

// LogContact persists one sponsor interaction.
func (s *SponsorContactService) LogContact(ctx context.Context, contact models.SponsorContact) (*models.SponsorContact, error) {
	if contact.Date == "" {
		return nil, fmt.Errorf("%w: contact date is required", schema.ErrConstraint)
	}
	rec, err := models.ToRecord(contact)
	if err != nil {
		return nil, err
	}
	stored, err := s.store.Add(ctx, schema.SponsorContacts, rec)
	if err != nil {
		logrus.WithError(err).Error("Failed to log sponsor contact")
		return nil, fmt.Errorf("failed to log sponsor contact: %w", err)
	}
	var out models.SponsorContact
	if err := models.FromRecord(stored, &out); err != nil {
		return nil, err
	}
	logrus.WithField("contact_id", out.ID).Info("Sponsor contact logged")
	return &out, nil
}

// Contacts lists a user's sponsor contacts, most recent first.
func (s *SponsorContactService) Contacts(ctx context.Context, userID string) ([]models.SponsorContact, error) {
	q := storage.Query{
		Collection: schema.SponsorContacts,
		OrderBy:    "date",
		Desc:       true,
	}
	if userID != "" {
		q.Eq = map[string]any{"userId": userID}
	}
	recs, err := s.store.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sponsor contacts: %w", err)
	}
	out := make([]models.SponsorContact, 0, len(recs))
	for _, rec := range recs {
		var c models.SponsorContact
		if err := models.FromRecord(rec, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// AddActionItem attaches a follow-up task to an existing contact.
func (s *SponsorContactService) AddActionItem(ctx context.Context, item models.ActionItem) (*models.ActionItem, error) {
	if item.ContactID == "" {
		return nil, fmt.Errorf("%w: action item needs a contact", schema.ErrConstraint)
	}
	if item.Title == "" {
		return nil, fmt.Errorf("%w: action item title is required", schema.ErrConstraint)
	}
	contact, err := s.store.GetByID(ctx, schema.SponsorContacts, item.ContactID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify contact: %w", err)
	}
	if contact == nil {
		return nil, fmt.Errorf("sponsor contact %s not found", item.ContactID)
	}

	rec, err := models.ToRecord(item)
	if err != nil {
		return nil, err
	}
	stored, err := s.store.Add(ctx, schema.ActionItems, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to add action item: %w", err)
	}
	var out models.ActionItem
	if err := models.FromRecord(stored, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ActionItems lists the follow-ups for one contact, due soonest first.
func (s *SponsorContactService) ActionItems(ctx context.Context, contactID string) ([]models.ActionItem, error) {
	recs, err := s.store.Query(ctx, storage.Query{
		Collection: schema.ActionItems,
		Eq:         map[string]any{"contactId": contactID},
		OrderBy:    "dueDate",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch action items: %w", err)
	}
	out := make([]models.ActionItem, 0, len(recs))
	for _, rec := range recs {
		var item models.ActionItem
		if err := models.FromRecord(rec, &item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// SetActionItemCompleted toggles the completed flag. Nil when the id does
// not exist.
func (s *SponsorContactService) SetActionItemCompleted(ctx context.Context, id string, completed bool) (*models.ActionItem, error) {
	rec, err := s.store.Update(ctx, schema.ActionItems, id, map[string]any{"completed": completed})
	if err != nil {
		return nil, fmt.Errorf("failed to update action item: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	var out models.ActionItem
	if err := models.FromRecord(rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteContact removes a contact and every action item attached to it.
func (s *SponsorContactService) DeleteContact(ctx context.Context, id string) (bool, error) {
	items, err := s.ActionItems(ctx, id)
	if err != nil {
		return false, err
	}
	for _, item := range items {
		if _, err := s.store.Remove(ctx, schema.ActionItems, item.ID); err != nil {
			logrus.WithField("action_item_id", item.ID).WithError(err).Warn("Failed to remove orphaned action item")
		}
	}
	removed, err := s.store.Remove(ctx, schema.SponsorContacts, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete sponsor contact: %w", err)
	}
	return removed, nil
}

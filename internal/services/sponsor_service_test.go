package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soberlog/soberlog/internal/models"
	"github.com/soberlog/soberlog/internal/schema"
)

func TestLogContactAndListMostRecentFirst(t *testing.T) {
	store := newTestStore(t)
	svc := NewSponsorContactService(store)
	ctx := context.Background()

	for days := 5; days >= 1; days -= 2 {
		_, err := svc.LogContact(ctx, models.SponsorContact{
			UserID: "u1",
			Date:   isoDaysAgo(days),
			Method: models.ContactPhone,
		})
		require.NoError(t, err)
	}

	contacts, err := svc.Contacts(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, contacts, 3)
	assert.True(t, contacts[0].Date > contacts[1].Date)
}

func TestActionItemsBelongToContact(t *testing.T) {
	store := newTestStore(t)
	svc := NewSponsorContactService(store)
	ctx := context.Background()

	contact, err := svc.LogContact(ctx, models.SponsorContact{UserID: "u1", Date: isoDaysAgo(1)})
	require.NoError(t, err)

	item, err := svc.AddActionItem(ctx, models.ActionItem{
		ContactID: contact.ID,
		Title:     "Read chapter 5",
		DueDate:   "2025-07-15",
	})
	require.NoError(t, err)
	assert.False(t, item.Completed)

	items, err := svc.ActionItems(ctx, contact.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	done, err := svc.SetActionItemCompleted(ctx, item.ID, true)
	require.NoError(t, err)
	assert.True(t, done.Completed)
}

func TestAddActionItemRequiresExistingContact(t *testing.T) {
	store := newTestStore(t)
	svc := NewSponsorContactService(store)

	_, err := svc.AddActionItem(context.Background(), models.ActionItem{
		ContactID: "nope",
		Title:     "Orphan",
	})
	assert.Error(t, err)
}

func TestDeleteContactCascadesActionItems(t *testing.T) {
	store := newTestStore(t)
	svc := NewSponsorContactService(store)
	ctx := context.Background()

	contact, err := svc.LogContact(ctx, models.SponsorContact{UserID: "u1", Date: isoDaysAgo(1)})
	require.NoError(t, err)
	for _, title := range []string{"one", "two"} {
		_, err := svc.AddActionItem(ctx, models.ActionItem{ContactID: contact.ID, Title: title})
		require.NoError(t, err)
	}

	removed, err := svc.DeleteContact(ctx, contact.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	orphans, err := store.GetAll(ctx, schema.ActionItems)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

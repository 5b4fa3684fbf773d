package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soberlog/soberlog/internal/models"
)

func TestCreateUserRequiresName(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store)

	_, err := svc.CreateUser(context.Background(), models.User{})
	assert.Error(t, err)
}

func TestCurrentUserIsFirstCreated(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store)
	ctx := context.Background()

	first, err := svc.CreateUser(ctx, models.User{Name: "Alex"})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, models.User{Name: "Sam"})
	require.NoError(t, err)

	current, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, first.ID, current.ID)
}

func TestCurrentUserNilWhenEmpty(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store)

	current, err := svc.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestUpdateUserMergesPartialEdit(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, models.User{
		Name:         "Alex",
		SobrietyDate: "2020-01-15",
		HomeGroup:    "Tuesday Night",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateUser(ctx, user.ID, map[string]any{"homeGroup": "Saturday Morning"})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Saturday Morning", updated.HomeGroup)
	assert.Equal(t, "2020-01-15", updated.SobrietyDate)
	assert.Equal(t, user.CreatedAt, updated.CreatedAt)
}

func TestUpdateUserNilWhenMissing(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store)

	updated, err := svc.UpdateUser(context.Background(), "missing", map[string]any{"name": "x"})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestUserSponsorRoundTrip(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, models.User{
		Name: "Alex",
		Sponsor: &models.Sponsor{
			Name:  "Jordan",
			Phone: "555-0100",
		},
	})
	require.NoError(t, err)

	loaded, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.NotNil(t, loaded.Sponsor)
	assert.Equal(t, "Jordan", loaded.Sponsor.Name)
}

func TestSobrietyStats(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, models.User{Name: "Alex", SobrietyDate: "2020-01-15"})
	require.NoError(t, err)

	stats, err := svc.Sobriety(ctx, user.ID, 2)
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Greater(t, stats.Days, 2000)
	assert.Greater(t, stats.Years, 5.0)
}

func TestSobrietyNilWithoutDate(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, models.User{Name: "Alex"})
	require.NoError(t, err)

	stats, err := svc.Sobriety(ctx, user.ID, 2)
	require.NoError(t, err)
	assert.Nil(t, stats)
}

func TestNearbyUsersFiltersByDistanceAndDiscoverability(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store)
	ctx := context.Background()

	near, err := svc.CreateUser(ctx, models.User{Name: "Near", Discoverable: true, Latitude: 37.7749, Longitude: -122.4194})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, models.User{Name: "Far", Discoverable: true, Latitude: 40.7128, Longitude: -74.0060})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, models.User{Name: "Hidden", Discoverable: false, Latitude: 37.7749, Longitude: -122.4194})
	require.NoError(t, err)

	found, err := svc.NearbyUsers(ctx, 37.7793, -122.4193, 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, near.ID, found[0].ID)
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/soberlog/soberlog/internal/models"
	"github.com/soberlog/soberlog/internal/schema"
	"github.com/soberlog/soberlog/internal/storage"
	"github.com/soberlog/soberlog/pkg/dates"
	"github.com/soberlog/soberlog/pkg/geo"
)

// SobrietyStats is the derived day/year math for one user.
type SobrietyStats struct {
	Days  int     `json:"days"`
	Years float64 `json:"years"`
}

// UserService encapsulates the business logic for user profiles.
type UserService struct {
	store *storage.Store
}

// NewUserService creates a new instance of UserService.
func NewUserService(store *storage.Store) *UserService {
	return &UserService{store: store}
}

// CreateUser persists a new profile.
func (s *UserService) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	if user.Name == "" {
		return nil, fmt.Errorf("%w: user name is required", schema.ErrConstraint)
	}
	rec, err := models.ToRecord(user)
	if err != nil {
		return nil, err
	}
	stored, err := s.store.Add(ctx, schema.Users, rec)
	if err != nil {
		logrus.WithError(err).Error("Failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	var out models.User
	if err := models.FromRecord(stored, &out); err != nil {
		return nil, err
	}
	logrus.WithField("user_id", out.ID).Info("User created")
	return &out, nil
}

// CurrentUser returns the device's logical current user: the first stored
// profile, nil when none exists yet.
func (s *UserService) CurrentUser(ctx context.Context) (*models.User, error) {
	recs, err := s.store.Query(ctx, storage.Query{
		Collection: schema.Users,
		OrderBy:    "createdAt",
		Limit:      1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load current user: %w", err)
	}
	if len(recs) == 0 {
		return nil, nil
	}
	var out models.User
	if err := models.FromRecord(recs[0], &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser retrieves a profile by id, nil when absent.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	rec, err := s.store.GetByID(ctx, schema.Users, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	var out models.User
	if err := models.FromRecord(rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser merges a partial profile edit onto the stored record. Nil
// when the id does not exist.
func (s *UserService) UpdateUser(ctx context.Context, id string, partial map[string]any) (*models.User, error) {
	rec, err := s.store.Update(ctx, schema.Users, id, partial)
	if err != nil {
		logrus.WithField("user_id", id).WithError(err).Error("Failed to update user")
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	var out models.User
	if err := models.FromRecord(rec, &out); err != nil {
		return nil, err
	}
	logrus.WithField("user_id", id).Info("User updated")
	return &out, nil
}

// UpdateLocation stores the last-known coordinates and discoverability
// flag in one write.
func (s *UserService) UpdateLocation(ctx context.Context, id string, lat, lon float64, discoverable bool) (*models.User, error) {
	return s.UpdateUser(ctx, id, map[string]any{
		"latitude":     lat,
		"longitude":    lon,
		"discoverable": discoverable,
	})
}

// Sobriety computes day/year counts from the user's sobriety date.
func (s *UserService) Sobriety(ctx context.Context, id string, decimalPlaces int) (*SobrietyStats, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.SobrietyDate == "" {
		return nil, nil
	}
	now := time.Now().UTC()
	days, err := dates.SobrietyDays(user.SobrietyDate, now)
	if err != nil {
		return nil, fmt.Errorf("invalid sobriety date: %v", err)
	}
	years, err := dates.SobrietyYears(user.SobrietyDate, decimalPlaces, now)
	if err != nil {
		return nil, fmt.Errorf("invalid sobriety date: %v", err)
	}
	return &SobrietyStats{Days: days, Years: years}, nil
}

// NearbyUsers lists discoverable profiles within radiusMiles of a point.
func (s *UserService) NearbyUsers(ctx context.Context, lat, lon, radiusMiles float64) ([]models.User, error) {
	recs, err := s.store.Query(ctx, storage.Query{
		Collection: schema.Users,
		Eq:         map[string]any{"discoverable": true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search nearby users: %w", err)
	}

	out := []models.User{}
	for _, rec := range recs {
		var u models.User
		if err := models.FromRecord(rec, &u); err != nil {
			continue
		}
		if geo.DistanceMiles(lat, lon, u.Latitude, u.Longitude) <= radiusMiles {
			out = append(out, u)
		}
	}
	return out, nil
}

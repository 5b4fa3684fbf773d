package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/soberlog/soberlog/internal/models"
	"github.com/soberlog/soberlog/internal/schema"
	"github.com/soberlog/soberlog/internal/storage"
)

// ActivityService encapsulates the business logic for logged activities.
type ActivityService struct {
	store   *storage.Store
	fitness *FitnessService
}

// NewActivityService creates a new instance of ActivityService. fitness
// may be nil in contexts that never recompute scores.
func NewActivityService(store *storage.Store, fitness *FitnessService) *ActivityService {
	return &ActivityService{store: store, fitness: fitness}
}

// LogActivity validates and persists one activity, then refreshes the
// owner's fitness snapshot. The type constraint fails here, visibly, not
// deep in the storage layer: the service never invents a type for the
// caller.
func (s *ActivityService) LogActivity(ctx context.Context, activity models.Activity) (*models.Activity, error) {
	if activity.Type == "" {
		logrus.Warn("Activity type is empty during logging")
		return nil, fmt.Errorf("%w: activity type is required", schema.ErrConstraint)
	}
	if activity.Date == "" {
		return nil, fmt.Errorf("%w: activity date is required", schema.ErrConstraint)
	}
	if !models.KnownActivityTypes[activity.Type] {
		// Accepted, but worth a trace: it scores with the fallback weight.
		logrus.WithField("type", activity.Type).Debug("Unrecognized activity type")
	}

	rec, err := models.ToRecord(activity)
	if err != nil {
		return nil, fmt.Errorf("failed to encode activity: %v", err)
	}
	stored, err := s.store.Add(ctx, schema.Activities, rec)
	if err != nil {
		logrus.WithError(err).Error("Failed to log activity")
		return nil, fmt.Errorf("failed to log activity: %w", err)
	}

	var out models.Activity
	if err := models.FromRecord(stored, &out); err != nil {
		return nil, fmt.Errorf("failed to decode stored activity: %v", err)
	}

	if s.fitness != nil {
		if _, err := s.fitness.Recompute(ctx, out.UserID); err != nil {
			logrus.WithError(err).Warn("Failed to refresh fitness snapshot after activity write")
		}
	}

	logrus.WithFields(logrus.Fields{
		"activity_id": out.ID,
		"type":        out.Type,
	}).Info("Activity logged")
	return &out, nil
}

// GetActivity retrieves one activity by id, nil when absent.
func (s *ActivityService) GetActivity(ctx context.Context, id string) (*models.Activity, error) {
	rec, err := s.store.GetByID(ctx, schema.Activities, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	var out models.Activity
	if err := models.FromRecord(rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUserActivities fetches a user's activities, most recent first.
// limit <= 0 means no limit.
func (s *ActivityService) GetUserActivities(ctx context.Context, userID string, limit int) ([]models.Activity, error) {
	q := storage.Query{
		Collection: schema.Activities,
		OrderBy:    "date",
		Desc:       true,
		Limit:      limit,
	}
	if userID != "" {
		q.Eq = map[string]any{"userId": userID}
	}
	recs, err := s.store.Query(ctx, q)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch activities")
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}

	out := make([]models.Activity, 0, len(recs))
	for _, rec := range recs {
		var a models.Activity
		if err := models.FromRecord(rec, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// UpdateActivity applies a corrective edit. Returns nil when the id does
// not exist.
func (s *ActivityService) UpdateActivity(ctx context.Context, id string, partial map[string]any) (*models.Activity, error) {
	if t, present := partial["type"]; present {
		if ts, _ := t.(string); ts == "" {
			return nil, fmt.Errorf("%w: activity type must not be empty", schema.ErrConstraint)
		}
	}
	rec, err := s.store.Update(ctx, schema.Activities, id, partial)
	if err != nil {
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	var out models.Activity
	if err := models.FromRecord(rec, &out); err != nil {
		return nil, err
	}
	if s.fitness != nil {
		if _, err := s.fitness.Recompute(ctx, out.UserID); err != nil {
			logrus.WithError(err).Warn("Failed to refresh fitness snapshot after activity edit")
		}
	}
	return &out, nil
}

// DeleteActivity removes a logged activity.
func (s *ActivityService) DeleteActivity(ctx context.Context, id string) (bool, error) {
	activity, err := s.GetActivity(ctx, id)
	if err != nil {
		return false, err
	}
	removed, err := s.store.Remove(ctx, schema.Activities, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete activity: %w", err)
	}
	if removed && s.fitness != nil && activity != nil {
		if _, err := s.fitness.Recompute(ctx, activity.UserID); err != nil {
			logrus.WithError(err).Warn("Failed to refresh fitness snapshot after activity delete")
		}
	}
	return removed, nil
}

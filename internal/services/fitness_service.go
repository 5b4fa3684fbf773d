package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/soberlog/soberlog/internal/fitness"
	"github.com/soberlog/soberlog/internal/models"
	"github.com/soberlog/soberlog/internal/schema"
	"github.com/soberlog/soberlog/internal/storage"
)

// FitnessService runs the scoring engine over stored activities and keeps
// one snapshot per user+timeframe current.
type FitnessService struct {
	store            *storage.Store
	defaultTimeframe int
}

// NewFitnessService creates a new instance of FitnessService.
func NewFitnessService(store *storage.Store, defaultTimeframeDays int) *FitnessService {
	if defaultTimeframeDays < 1 {
		defaultTimeframeDays = 30
	}
	return &FitnessService{store: store, defaultTimeframe: defaultTimeframeDays}
}

// Timeframe returns the stored timeframe preference, falling back to the
// configured default.
func (s *FitnessService) Timeframe(ctx context.Context) int {
	recs, err := s.store.Query(ctx, storage.Query{
		Collection: schema.Preferences,
		Eq:         map[string]any{"key": models.PrefFitnessTimeframe},
		Limit:      1,
	})
	if err != nil || len(recs) == 0 {
		return s.defaultTimeframe
	}
	if f, ok := recs[0]["value"].(float64); ok && f >= 1 {
		return int(f)
	}
	return s.defaultTimeframe
}

// SetTimeframe persists the timeframe preference.
func (s *FitnessService) SetTimeframe(ctx context.Context, days int) error {
	if days < 1 {
		return fmt.Errorf("%w: timeframe must be at least one day", schema.ErrConstraint)
	}
	recs, err := s.store.Query(ctx, storage.Query{
		Collection: schema.Preferences,
		Eq:         map[string]any{"key": models.PrefFitnessTimeframe},
		Limit:      1,
	})
	if err != nil {
		return fmt.Errorf("failed to read timeframe preference: %w", err)
	}
	if len(recs) > 0 {
		id, _ := recs[0]["id"].(string)
		_, err = s.store.Update(ctx, schema.Preferences, id, map[string]any{"value": days})
	} else {
		_, err = s.store.Add(ctx, schema.Preferences, map[string]any{
			"key":   models.PrefFitnessTimeframe,
			"value": days,
		})
	}
	if err != nil {
		return fmt.Errorf("failed to store timeframe preference: %w", err)
	}
	return nil
}

// Recompute scores the user's recent activities and overwrites the
// snapshot for that user+timeframe. An empty userID scores every stored
// activity, matching flows without user partitioning.
func (s *FitnessService) Recompute(ctx context.Context, userID string) (*fitness.Result, error) {
	timeframe := s.Timeframe(ctx)

	q := storage.Query{Collection: schema.Activities}
	if userID != "" {
		q.Eq = map[string]any{"userId": userID}
	}
	recs, err := s.store.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities for scoring: %w", err)
	}

	activities := make([]models.Activity, 0, len(recs))
	for _, rec := range recs {
		var a models.Activity
		if err := models.FromRecord(rec, &a); err != nil {
			logrus.WithError(err).Warn("Skipping undecodable activity during scoring")
			continue
		}
		activities = append(activities, a)
	}

	result := fitness.Calculate(activities, timeframe, time.Now().UTC())
	if err := s.saveSnapshot(ctx, userID, result); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"score":     result.Score,
		"timeframe": result.TimeframeDays,
	}).Info("Fitness snapshot updated")
	return &result, nil
}

// CurrentSnapshot returns the stored snapshot for a user+timeframe, nil
// if none has been computed yet.
func (s *FitnessService) CurrentSnapshot(ctx context.Context, userID string, timeframeDays int) (*models.SpiritualFitness, error) {
	recs, err := s.store.Query(ctx, storage.Query{
		Collection: schema.SpiritualFitness,
		Eq:         map[string]any{"userId": userID, "timeframeDays": timeframeDays},
		Limit:      1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read fitness snapshot: %w", err)
	}
	if len(recs) == 0 {
		return nil, nil
	}
	var snap models.SpiritualFitness
	if err := models.FromRecord(recs[0], &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// saveSnapshot is an insert-or-replace keyed by user+timeframe.
func (s *FitnessService) saveSnapshot(ctx context.Context, userID string, result fitness.Result) error {
	snap := models.SpiritualFitness{
		UserID:        userID,
		Score:         result.Score,
		Breakdown:     result.Breakdown,
		TimeframeDays: result.TimeframeDays,
		ComputedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	rec, err := models.ToRecord(snap)
	if err != nil {
		return err
	}

	existing, err := s.store.Query(ctx, storage.Query{
		Collection: schema.SpiritualFitness,
		Eq:         map[string]any{"userId": userID, "timeframeDays": result.TimeframeDays},
		Limit:      1,
	})
	if err != nil {
		return fmt.Errorf("failed to look up prior snapshot: %w", err)
	}
	if len(existing) > 0 {
		id, _ := existing[0]["id"].(string)
		_, err = s.store.Update(ctx, schema.SpiritualFitness, id, rec)
	} else {
		_, err = s.store.Add(ctx, schema.SpiritualFitness, rec)
	}
	if err != nil {
		return fmt.Errorf("failed to persist fitness snapshot: %w", err)
	}
	return nil
}

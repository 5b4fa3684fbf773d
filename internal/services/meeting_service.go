package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/soberlog/soberlog/internal/models"
	"github.com/soberlog/soberlog/internal/schema"
	"github.com/soberlog/soberlog/internal/storage"
	"github.com/soberlog/soberlog/pkg/geo"
)

// MeetingService manages both the personal meeting list and the shared
// meetings pool; the two live in one collection distinguished by the
// shared flag.
type MeetingService struct {
	store *storage.Store
}

// NewMeetingService creates a new instance of MeetingService.
func NewMeetingService(store *storage.Store) *MeetingService {
	return &MeetingService{store: store}
}

// CreateMeeting persists a meeting.
func (s *MeetingService) CreateMeeting(ctx context.Context, meeting models.Meeting) (*models.Meeting, error) {
	if meeting.Name == "" {
		return nil, fmt.Errorf("%w: meeting name is required", schema.ErrConstraint)
	}
	rec, err := models.ToRecord(meeting)
	if err != nil {
		return nil, err
	}
	stored, err := s.store.Add(ctx, schema.Meetings, rec)
	if err != nil {
		logrus.WithError(err).Error("Failed to create meeting")
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}
	var out models.Meeting
	if err := models.FromRecord(stored, &out); err != nil {
		return nil, err
	}
	logrus.WithField("meeting_id", out.ID).Info("Meeting created")
	return &out, nil
}

// GetMeeting retrieves a meeting by id, nil when absent.
func (s *MeetingService) GetMeeting(ctx context.Context, id string) (*models.Meeting, error) {
	rec, err := s.store.GetByID(ctx, schema.Meetings, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	var out models.Meeting
	if err := models.FromRecord(rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PersonalMeetings lists meetings a user entered for themselves.
func (s *MeetingService) PersonalMeetings(ctx context.Context, userID string) ([]models.Meeting, error) {
	return s.list(ctx, storage.Query{
		Collection: schema.Meetings,
		Eq:         map[string]any{"createdBy": userID, "shared": false},
		OrderBy:    "name",
	})
}

// SharedMeetings lists the shared pool.
func (s *MeetingService) SharedMeetings(ctx context.Context) ([]models.Meeting, error) {
	return s.list(ctx, storage.Query{
		Collection: schema.Meetings,
		Eq:         map[string]any{"shared": true},
		OrderBy:    "name",
	})
}

// MeetingsNear lists meetings within radiusMiles of a point, closest
// first is not guaranteed; callers sort as needed.
func (s *MeetingService) MeetingsNear(ctx context.Context, lat, lon, radiusMiles float64) ([]models.Meeting, error) {
	all, err := s.list(ctx, storage.Query{Collection: schema.Meetings})
	if err != nil {
		return nil, err
	}
	out := []models.Meeting{}
	for _, m := range all {
		if m.Latitude == 0 && m.Longitude == 0 {
			continue
		}
		if geo.DistanceMiles(lat, lon, m.Latitude, m.Longitude) <= radiusMiles {
			out = append(out, m)
		}
	}
	return out, nil
}

// UpdateMeeting merges a partial edit, nil when the id does not exist.
func (s *MeetingService) UpdateMeeting(ctx context.Context, id string, partial map[string]any) (*models.Meeting, error) {
	rec, err := s.store.Update(ctx, schema.Meetings, id, partial)
	if err != nil {
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	var out models.Meeting
	if err := models.FromRecord(rec, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMeeting removes a meeting.
func (s *MeetingService) DeleteMeeting(ctx context.Context, id string) (bool, error) {
	removed, err := s.store.Remove(ctx, schema.Meetings, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete meeting: %w", err)
	}
	return removed, nil
}

func (s *MeetingService) list(ctx context.Context, q storage.Query) ([]models.Meeting, error) {
	recs, err := s.store.Query(ctx, q)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch meetings")
		return nil, fmt.Errorf("failed to fetch meetings: %w", err)
	}
	out := make([]models.Meeting, 0, len(recs))
	for _, rec := range recs {
		var m models.Meeting
		if err := models.FromRecord(rec, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

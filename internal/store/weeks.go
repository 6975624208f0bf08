package store

import (
	"context"

	"weekplan/internal/models"

	"go.uber.org/zap"
)

// WeekStore layers week-id derivation over the generic collection. The id is
// computed from the chosen start date at creation time and never regenerated
// on edit, so task references stay valid.
type WeekStore struct {
	*Collection[models.Week]
}

func NewWeekStore(remote Remote[models.Week], logger *zap.Logger) *WeekStore {
	return &WeekStore{Collection: NewCollection[models.Week]("weeks", remote, logger)}
}

func (s *WeekStore) Create(ctx context.Context, req models.CreateWeekRequest) (models.Week, error) {
	if err := req.Validate(); err != nil {
		return models.Week{}, err
	}
	now := Touch()
	week := models.Week{
		ID:          models.WeekIDFor(req.StartDate),
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     models.WeekEndFor(req.StartDate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return s.Collection.Create(ctx, week)
}

func (s *WeekStore) Update(ctx context.Context, id string, req models.UpdateWeekRequest) (models.Week, error) {
	return s.Collection.Update(ctx, id, func(w models.Week) models.Week {
		w = req.Apply(w)
		w.UpdatedAt = Touch()
		return w
	})
}

// Current returns the local week flagged current by the backend.
func (s *WeekStore) Current() (models.Week, bool) {
	for _, w := range s.Items() {
		if w.IsCurrentWeek {
			return w, true
		}
	}
	return models.Week{}, false
}

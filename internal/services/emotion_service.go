package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/jewelnotes/jewelnotes-api/internal/apperr"
	"github.com/jewelnotes/jewelnotes-api/internal/domain"
)

// EmotionRepo defines the repository contract required by EmotionService.
type EmotionRepo interface {
	ListEmotions(ctx context.Context, db *gorm.DB) ([]domain.Emotion, error)
}

// EmotionService exposes the read-only emotion reference table.
type EmotionService struct {
	DB      *gorm.DB
	Repo    EmotionRepo
	Timeout time.Duration
}

// NewEmotionService constructs an EmotionService.
func NewEmotionService(db *gorm.DB, r EmotionRepo, timeout time.Duration) *EmotionService {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &EmotionService{DB: db, Repo: r, Timeout: timeout}
}

// List returns all emotions ordered by id.
func (s *EmotionService) List(ctx context.Context) ([]domain.Emotion, error) {
	ctx, span := otel.Tracer("services/EmotionService").Start(ctx, "List")
	defer span.End()

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := s.Repo.ListEmotions(ctx, s.DB)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if out == nil {
		out = []domain.Emotion{}
	}
	return out, nil
}

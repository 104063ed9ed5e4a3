package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/jewelnotes/jewelnotes-api/internal/domain"
)

// ListEmotions returns the emotion reference table ordered by id.
func ListEmotions(ctx context.Context, db *gorm.DB) ([]domain.Emotion, error) {
	out := []domain.Emotion{}
	err := db.WithContext(ctx).
		Order("emotion_id asc").
		Find(&out).Error
	return out, err
}

// CountEmotions returns the number of rows in the emotion table.
func CountEmotions(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Emotion{}).
		Count(&total).Error
	return total, err
}

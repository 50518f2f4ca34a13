package rating

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
)

type RatingService struct {
	DB *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{DB: db}
}

// Summary is the cached review aggregate stored on a course.
type Summary struct {
	NumberOfReviews int     `json:"numberOfReviews"`
	AverageRating   float64 `json:"averageRating"`
}

// Summarize returns the count and the mean rounded to one decimal.
func Summarize(ratings []int) Summary {
	if len(ratings) == 0 {
		return Summary{}
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	return Summary{
		NumberOfReviews: len(ratings),
		AverageRating:   math.Round(mean*10) / 10,
	}
}

// Recompute rebuilds the course's review aggregate from its current reviews.
// It is the only writer of numberOfReviews and averageRating.
func (s *RatingService) Recompute(ctx context.Context, courseID uuid.UUID) (Summary, error) {
	var ratings []int
	if err := s.DB.WithContext(ctx).
		Model(&models.Review{}).
		Where("course_id = ?", courseID).
		Pluck("rating", &ratings).Error; err != nil {
		return Summary{}, fmt.Errorf("load ratings for course %s: %w", courseID, err)
	}

	sum := Summarize(ratings)
	// UpdateColumns skips the course hooks; only the rollup columns change.
	if err := s.DB.WithContext(ctx).
		Model(&models.Course{}).
		Where("id = ?", courseID).
		UpdateColumns(map[string]any{
			"number_of_reviews": sum.NumberOfReviews,
			"average_rating":    sum.AverageRating,
		}).Error; err != nil {
		return Summary{}, fmt.Errorf("store rating summary for course %s: %w", courseID, err)
	}
	return sum, nil
}

package leaderboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
)

const PublicSize = 10

type LeaderboardService struct {
	DB *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{DB: db}
}

type Entry struct {
	ID                  uuid.UUID   `json:"id"`
	Name                string      `json:"name"`
	Rank                models.Role `json:"rank"`
	TotalCompletedTasks int64       `json:"totalCompletedTasks"`
	ImageURL            string      `json:"imageUrl"`
}

// PublicEntry is what the anonymous top list shows; account ids stay private.
type PublicEntry struct {
	Name                string      `json:"name"`
	Rank                models.Role `json:"rank"`
	TotalCompletedTasks int64       `json:"totalCompletedTasks"`
	ImageURL            string      `json:"imageUrl"`
}

func (e Entry) Public() PublicEntry {
	return PublicEntry{
		Name:                e.Name,
		Rank:                e.Rank,
		TotalCompletedTasks: e.TotalCompletedTasks,
		ImageURL:            e.ImageURL,
	}
}

// Top returns the first n developers by completed tasks.
func (s *LeaderboardService) Top(ctx context.Context, n int) ([]Entry, error) {
	return s.rank(ctx, n)
}

// All returns every developer, including those with nothing completed.
func (s *LeaderboardService) All(ctx context.Context) ([]Entry, error) {
	return s.rank(ctx, 0)
}

// Ties on the completed count are ordered by account id.
func (s *LeaderboardService) rank(ctx context.Context, limit int) ([]Entry, error) {
	q := s.DB.WithContext(ctx).
		Model(&models.Account{}).
		Select("accounts.id, accounts.name, accounts.role AS rank, accounts.image_url, COUNT(tasks.id) AS total_completed_tasks").
		Joins("LEFT JOIN tasks ON tasks.assigned_to = accounts.id AND tasks.status = ?", models.TaskDone).
		Where("accounts.role IN ?", models.DeveloperRoles).
		Group("accounts.id, accounts.name, accounts.role, accounts.image_url").
		Order("total_completed_tasks DESC").
		Order("accounts.id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	entries := []Entry{}
	if err := q.Scan(&entries).Error; err != nil {
		return nil, fmt.Errorf("rank developers: %w", err)
	}
	return entries, nil
}

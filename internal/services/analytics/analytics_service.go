package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
)

type AnalyticsService struct {
	DB *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{DB: db}
}

// DeveloperStats summarises the tasks assigned to one account.
type DeveloperStats struct {
	ID                uuid.UUID   `json:"id"`
	Name              string      `json:"name"`
	Rank              models.Role `json:"rank"`
	TotalAssigned     int         `json:"totalAssigned"`
	TotalCompleted    int         `json:"totalCompleted"`
	PendingTasks      int         `json:"pendingTasks"`
	CompletionRate    float64     `json:"completionRate"`
	AvgCompletionTime *float64    `json:"avgCompletionTime"`
}

// TaskRecord is the slice of a task the aggregation needs.
type TaskRecord struct {
	AssignedTo uuid.UUID
	Status     models.TaskStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Developers aggregates tasks per assignee, limited to accounts holding one of roles.
func (s *AnalyticsService) Developers(ctx context.Context, roles []models.Role) ([]DeveloperStats, error) {
	var accounts []models.Account
	if err := s.DB.WithContext(ctx).
		Select("id", "name", "role").
		Where("role IN ?", roles).
		Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("load developer accounts: %w", err)
	}
	if len(accounts) == 0 {
		return []DeveloperStats{}, nil
	}

	ids := make([]uuid.UUID, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}

	var tasks []TaskRecord
	if err := s.DB.WithContext(ctx).
		Model(&models.Task{}).
		Select("assigned_to", "status", "created_at", "updated_at").
		Where("assigned_to IN ?", ids).
		Scan(&tasks).Error; err != nil {
		return nil, fmt.Errorf("load assigned tasks: %w", err)
	}

	return Summarize(tasks, accounts), nil
}

// Summarize groups tasks by assignee. Assignees missing from accounts are
// skipped. Rows are ordered by completed count, then account id.
func Summarize(tasks []TaskRecord, accounts []models.Account) []DeveloperStats {
	byID := make(map[uuid.UUID]models.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	type acc struct {
		stats     DeveloperStats
		doneTotal time.Duration
	}
	groups := map[uuid.UUID]*acc{}
	for _, t := range tasks {
		account, ok := byID[t.AssignedTo]
		if !ok {
			continue
		}
		g, ok := groups[t.AssignedTo]
		if !ok {
			g = &acc{stats: DeveloperStats{ID: account.ID, Name: account.Name, Rank: account.Role}}
			groups[t.AssignedTo] = g
		}
		g.stats.TotalAssigned++
		if t.Status == models.TaskDone {
			g.stats.TotalCompleted++
			g.doneTotal += t.UpdatedAt.Sub(t.CreatedAt)
		} else {
			g.stats.PendingTasks++
		}
	}

	out := make([]DeveloperStats, 0, len(groups))
	for _, g := range groups {
		st := g.stats
		if st.TotalAssigned > 0 {
			st.CompletionRate = round2(float64(st.TotalCompleted) / float64(st.TotalAssigned) * 100)
		}
		if st.TotalCompleted > 0 && g.doneTotal > 0 {
			days := round2(g.doneTotal.Hours() / 24 / float64(st.TotalCompleted))
			st.AvgCompletionTime = &days
		}
		out = append(out, st)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalCompleted != out[j].TotalCompleted {
			return out[i].TotalCompleted > out[j].TotalCompleted
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package domain

import "time"

type GoalType string

const (
	GoalTypeWeekly  GoalType = "weekly"
	GoalTypeMonthly GoalType = "monthly"
	GoalTypeYearly  GoalType = "yearly"
)

func (t GoalType) Valid() bool {
	switch t {
	case GoalTypeWeekly, GoalTypeMonthly, GoalTypeYearly:
		return true
	}
	return false
}

type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains indica se o instante está dentro dos limites, inclusive
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// MonthPeriod retorna o mês corrente, do primeiro instante ao último
func MonthPeriod(now time.Time) Period {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return Period{Start: start, End: end}
}

type Goal struct {
	ID        string    `json:"id"`
	Type      GoalType  `json:"type"`
	Title     string    `json:"title"`
	Target    float64   `json:"target"`
	Current   float64   `json:"current"`
	Period    *Period   `json:"period,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsActive verifica se a meta vale para o instante. Sem período, a meta vale desde a criação.
func (g Goal) IsActive(now time.Time) bool {
	if g.Period != nil {
		return g.Period.Contains(now)
	}
	return !g.CreatedAt.After(now)
}

// Package planning cuida das metas de venda e das despesas da loja
package planning

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/vfg2006/c4-store-api/infrastructure/repository"
	"github.com/vfg2006/c4-store-api/internal/dialog"
	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/pkg/apiErrors"
)

type PlanningService interface {
	ListGoals(ctx context.Context) ([]*domain.Goal, error)
	SaveGoal(ctx context.Context, id string, input GoalInput) (*domain.Goal, error)
	ListExpenses(ctx context.Context, month bool) ([]*domain.Expense, error)
	CreateExpense(ctx context.Context, input ExpenseInput) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, id string, dlg dialog.Dialog) error
}

type GoalInput struct {
	Type   domain.GoalType `json:"type"`
	Title  string          `json:"title"`
	Target float64         `json:"target"`
	Period *domain.Period  `json:"period"`
}

func (in GoalInput) validate() error {
	verr := domain.NewValidationError()

	if !in.Type.Valid() {
		verr.Add("type", "Tipo de meta inválido")
	}
	if in.Target <= 0 {
		verr.Add("target", "Informe um valor maior que zero")
	}
	if in.Period != nil && in.Period.End.Before(in.Period.Start) {
		verr.Add("period", "O fim do período deve ser posterior ao início")
	}

	return verr.OrNil()
}

type ExpenseInput struct {
	Category    domain.ExpenseCategory `json:"category"`
	Description string                 `json:"description"`
	Amount      float64                `json:"amount"`
	Date        *time.Time             `json:"date"`
}

func (in ExpenseInput) validate() error {
	verr := domain.NewValidationError()

	if !in.Category.Valid() {
		verr.Add("category", "Categoria inválida")
	}
	if strings.TrimSpace(in.Description) == "" {
		verr.Add("description", "Este campo é obrigatório")
	}
	if in.Amount <= 0 {
		verr.Add("amount", "Informe um valor maior que zero")
	}

	return verr.OrNil()
}

type Service struct {
	goals    repository.GoalRepository
	expenses repository.ExpenseRepository
	loc      *time.Location
	clock    func() time.Time
}

func NewService(
	goals repository.GoalRepository,
	expenses repository.ExpenseRepository,
	loc *time.Location,
) *Service {
	if loc == nil {
		loc = time.Local
	}

	return &Service{
		goals:    goals,
		expenses: expenses,
		loc:      loc,
		clock:    time.Now,
	}
}

// WithClock substitui o relógio usado nos períodos padrão
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

func (s *Service) now() time.Time {
	return s.clock().In(s.loc)
}

func (s *Service) ListGoals(ctx context.Context) ([]*domain.Goal, error) {
	goals, err := s.goals.List(ctx, nil)
	if err != nil {
		return nil, NewPlanningError(ErrFetchGoals, apiErrors.ErrDatabaseOperation, "", err.Error())
	}
	return goals, nil
}

// SaveGoal cria a meta quando id é vazio ou a atualiza. Metas mensais sem período valem para o mês corrente.
func (s *Service) SaveGoal(ctx context.Context, id string, input GoalInput) (*domain.Goal, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	if input.Period == nil && input.Type == domain.GoalTypeMonthly {
		month := domain.MonthPeriod(s.now())
		input.Period = &month
	}
	if input.Title == "" {
		input.Title = "Meta de vendas"
	}

	if id == "" {
		created, err := s.goals.Create(ctx, &domain.Goal{
			Type:   input.Type,
			Title:  input.Title,
			Target: input.Target,
			Period: input.Period,
		})
		if err != nil {
			return nil, NewPlanningError(ErrSaveGoal, apiErrors.ErrDatabaseOperation, "", err.Error())
		}
		return created, nil
	}

	patch := domain.Record{
		"type":   input.Type,
		"title":  input.Title,
		"target": input.Target,
	}
	if input.Period != nil {
		patch["period"] = input.Period
	}

	updated, err := s.goals.Update(ctx, id, patch)
	if err != nil {
		return nil, NewPlanningError(ErrSaveGoal, apiErrors.ErrDatabaseOperation, id, err.Error())
	}
	return updated, nil
}

// ListExpenses retorna as despesas mais recentes primeiro, opcionalmente só as do mês corrente
func (s *Service) ListExpenses(ctx context.Context, month bool) ([]*domain.Expense, error) {
	expenses, err := s.expenses.List(ctx, nil)
	if err != nil {
		return nil, NewPlanningError(ErrFetchExpenses, apiErrors.ErrDatabaseOperation, "", err.Error())
	}

	if month {
		period := domain.MonthPeriod(s.now())
		filtered := expenses[:0:0]
		for _, e := range expenses {
			if period.Contains(e.Date) {
				filtered = append(filtered, e)
			}
		}
		expenses = filtered
	}

	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date.After(expenses[j].Date)
	})

	return expenses, nil
}

func (s *Service) CreateExpense(ctx context.Context, input ExpenseInput) (*domain.Expense, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	date := s.now()
	if input.Date != nil {
		date = *input.Date
	}

	created, err := s.expenses.Create(ctx, &domain.Expense{
		Category:    input.Category,
		Description: strings.TrimSpace(input.Description),
		Amount:      input.Amount,
		Date:        date,
	})
	if err != nil {
		return nil, NewPlanningError(ErrCreateExpense, apiErrors.ErrDatabaseOperation, "", err.Error())
	}
	return created, nil
}

func (s *Service) DeleteExpense(ctx context.Context, id string, dlg dialog.Dialog) error {
	if !dlg.Confirm(ctx, "Tem certeza que deseja excluir esta despesa?") {
		return NewPlanningError(ErrDeletionNotConfirmed, apiErrors.ErrConfirmationRequired, id, "")
	}

	if err := s.expenses.Delete(ctx, id); err != nil {
		return NewPlanningError(ErrDeleteExpense, apiErrors.ErrDatabaseOperation, id, err.Error())
	}
	return nil
}

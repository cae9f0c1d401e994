package customer

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/vfg2006/c4-store-api/infrastructure/repository"
	"github.com/vfg2006/c4-store-api/internal/dialog"
	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/pkg/apiErrors"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigits    = regexp.MustCompile(`\D`)
)

type ClientService interface {
	List(ctx context.Context, search string) ([]*domain.Client, error)
	Get(ctx context.Context, id string) (*domain.Client, error)
	Create(ctx context.Context, input ClientInput) (*domain.Client, error)
	Update(ctx context.Context, id string, input ClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id string, dlg dialog.Dialog) error
}

type ClientInput struct {
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Phone   string         `json:"phone"`
	Address domain.Address `json:"address"`
	Notes   string         `json:"notes"`
}

func (in ClientInput) normalized() ClientInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	return in
}

// validate exige o nome; e-mail e telefone só são verificados quando informados
func (in ClientInput) validate() error {
	verr := domain.NewValidationError()

	if in.Name == "" {
		verr.Add("name", "Este campo é obrigatório")
	}
	if in.Email != "" && !emailPattern.MatchString(in.Email) {
		verr.Add("email", "E-mail inválido")
	}
	if in.Phone != "" {
		if digits := nonDigits.ReplaceAllString(in.Phone, ""); len(digits) < 10 || len(digits) > 11 {
			verr.Add("phone", "Telefone inválido")
		}
	}

	return verr.OrNil()
}

type Service struct {
	clients repository.ClientRepository
}

func NewService(clients repository.ClientRepository) ClientService {
	return &Service{clients: clients}
}

// List retorna os clientes em ordem alfabética, filtrando por nome, e-mail ou telefone
func (s *Service) List(ctx context.Context, search string) ([]*domain.Client, error) {
	clients, err := s.clients.List(ctx, nil)
	if err != nil {
		return nil, NewClientError(ErrFetchClients, apiErrors.ErrDatabaseOperation, "", err.Error())
	}

	term := strings.ToLower(strings.TrimSpace(search))
	out := make([]*domain.Client, 0, len(clients))
	for _, c := range clients {
		if term != "" &&
			!strings.Contains(strings.ToLower(c.Name), term) &&
			!strings.Contains(strings.ToLower(c.Email), term) &&
			!strings.Contains(c.Phone, term) {
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})

	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Client, error) {
	client, err := s.clients.Get(ctx, id)
	if err != nil {
		return nil, NewClientError(ErrFetchClients, apiErrors.ErrDatabaseOperation, id, err.Error())
	}
	return client, nil
}

func (s *Service) Create(ctx context.Context, input ClientInput) (*domain.Client, error) {
	input = input.normalized()
	if err := input.validate(); err != nil {
		return nil, err
	}

	created, err := s.clients.Create(ctx, &domain.Client{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
		Notes:   input.Notes,
	})
	if err != nil {
		return nil, NewClientError(ErrCreateClient, apiErrors.ErrDatabaseOperation, "", err.Error())
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, input ClientInput) (*domain.Client, error) {
	input = input.normalized()
	if err := input.validate(); err != nil {
		return nil, err
	}

	updated, err := s.clients.Update(ctx, id, domain.Record{
		"name":    input.Name,
		"email":   input.Email,
		"phone":   input.Phone,
		"address": input.Address,
		"notes":   input.Notes,
	})
	if err != nil {
		return nil, NewClientError(ErrUpdateClient, apiErrors.ErrDatabaseOperation, id, err.Error())
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string, dlg dialog.Dialog) error {
	if !dlg.Confirm(ctx, "Tem certeza que deseja excluir este cliente?") {
		return NewClientError(ErrDeletionNotConfirmed, apiErrors.ErrConfirmationRequired, id, "")
	}

	if err := s.clients.Delete(ctx, id); err != nil {
		return NewClientError(ErrDeleteClient, apiErrors.ErrDatabaseOperation, id, err.Error())
	}
	return nil
}

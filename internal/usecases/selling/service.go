package selling

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/vfg2006/c4-store-api/infrastructure/repository"
	"github.com/vfg2006/c4-store-api/internal/dialog"
	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/internal/usecases/stocking"
	"github.com/vfg2006/c4-store-api/pkg/apiErrors"
	"github.com/vfg2006/c4-store-api/pkg/log"
	"github.com/vfg2006/c4-store-api/pkg/utils"
)

type SaleService interface {
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	Get(ctx context.Context, id string) (*SaleView, error)
	Create(ctx context.Context, input SaleInput) (*SaleResult, error)
	Update(ctx context.Context, id string, input SaleInput) (*SaleView, error)
	Complete(ctx context.Context, id string) (*SaleView, error)
	Cancel(ctx context.Context, id string, dlg dialog.Dialog) (*SaleResult, error)
	Delete(ctx context.Context, id string, dlg dialog.Dialog) error
}

// SaleView é a venda com os rótulos de exibição
type SaleView struct {
	domain.Sale
	StatusLabel        string `json:"statusLabel"`
	PaymentMethodLabel string `json:"paymentMethodLabel"`
}

func newView(sale *domain.Sale) *SaleView {
	return &SaleView{
		Sale:               *sale,
		StatusLabel:        sale.Status.Label(),
		PaymentMethodLabel: sale.PaymentMethod.Label(),
	}
}

// SaleResult acompanha o relatório do ajuste de estoque feito pela operação
type SaleResult struct {
	Sale  *SaleView        `json:"sale"`
	Stock *stocking.Report `json:"stock,omitempty"`
}

type Service struct {
	sales    repository.SaleRepository
	products repository.ProductRepository
	clients  repository.ClientRepository
	adjuster stocking.StockAdjuster
	clock    func() time.Time
	loc      *time.Location
}

func NewService(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	clients repository.ClientRepository,
	adjuster stocking.StockAdjuster,
	loc *time.Location,
) *Service {
	if loc == nil {
		loc = time.Local
	}

	return &Service{
		sales:    sales,
		products: products,
		clients:  clients,
		adjuster: adjuster,
		clock:    time.Now,
		loc:      loc,
	}
}

// WithClock substitui o relógio usado nos filtros por período
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

func (s *Service) Get(ctx context.Context, id string) (*SaleView, error) {
	sale, err := s.sales.Get(ctx, id)
	if err != nil {
		return nil, NewSaleError(ErrFetchSales, apiErrors.ErrDatabaseOperation, id, err.Error())
	}
	if sale == nil {
		return nil, nil
	}
	return newView(sale), nil
}

// Create registra a venda e baixa o estoque dos itens
func (s *Service) Create(ctx context.Context, input SaleInput) (*SaleResult, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	sale, err := s.build(ctx, input)
	if err != nil {
		return nil, err
	}
	if sale.Status == "" {
		sale.Status = domain.SaleStatusCompleted
	}

	created, err := s.sales.Create(ctx, sale)
	if err != nil {
		return nil, NewSaleError(ErrCreateSale, apiErrors.ErrDatabaseOperation, "", err.Error())
	}

	report := s.adjuster.ApplySale(ctx, created)
	if !report.OK() {
		log.ForComponent(ctx, "selling").WithField("id", created.ID).
			Warnf("Venda registrada com %d item(ns) sem ajuste de estoque", report.Failed)
	}

	return &SaleResult{Sale: newView(created), Stock: &report}, nil
}

// Update substitui os dados da venda e recalcula os totais. O estoque não é ajustado.
func (s *Service) Update(ctx context.Context, id string, input SaleInput) (*SaleView, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	current, err := s.sales.Get(ctx, id)
	if err != nil {
		return nil, NewSaleError(ErrFetchSales, apiErrors.ErrDatabaseOperation, id, err.Error())
	}
	if current == nil {
		return nil, nil
	}

	sale, err := s.build(ctx, input)
	if err != nil {
		return nil, err
	}
	if sale.Status == "" {
		sale.Status = current.Status
	}
	s.warnUnusualTransition(ctx, current, sale.Status)

	updated, err := s.sales.Update(ctx, id, domain.Record{
		"clientId":      sale.ClientID,
		"clientName":    sale.ClientName,
		"items":         sale.Items,
		"subtotal":      sale.Subtotal,
		"shipping":      sale.Shipping,
		"discount":      sale.Discount,
		"total":         sale.Total,
		"paymentMethod": sale.PaymentMethod,
		"status":        sale.Status,
		"notes":         sale.Notes,
	})
	if err != nil {
		return nil, NewSaleError(ErrUpdateSale, apiErrors.ErrDatabaseOperation, id, err.Error())
	}
	if updated == nil {
		return nil, nil
	}

	return newView(updated), nil
}

func (s *Service) Complete(ctx context.Context, id string) (*SaleView, error) {
	current, err := s.sales.Get(ctx, id)
	if err != nil {
		return nil, NewSaleError(ErrFetchSales, apiErrors.ErrDatabaseOperation, id, err.Error())
	}
	if current == nil {
		return nil, nil
	}

	updated, err := s.setStatus(ctx, current, domain.SaleStatusCompleted)
	if err != nil || updated == nil {
		return nil, err
	}
	return newView(updated), nil
}

// Cancel exige confirmação. O estoque só volta quando a política de devolução está ativa.
func (s *Service) Cancel(ctx context.Context, id string, dlg dialog.Dialog) (*SaleResult, error) {
	current, err := s.sales.Get(ctx, id)
	if err != nil {
		return nil, NewSaleError(ErrFetchSales, apiErrors.ErrDatabaseOperation, id, err.Error())
	}
	if current == nil {
		return nil, nil
	}

	if !dlg.Confirm(ctx, "Tem certeza que deseja cancelar esta venda?") {
		return nil, NewSaleError(ErrCancellationNotConfirmed, apiErrors.ErrConfirmationRequired, id, "")
	}

	updated, err := s.setStatus(ctx, current, domain.SaleStatusCancelled)
	if err != nil || updated == nil {
		return nil, err
	}

	result := &SaleResult{Sale: newView(updated)}
	if s.adjuster.RestoreOnCancel() && current.Status != domain.SaleStatusCancelled {
		report := s.adjuster.RestoreSale(ctx, updated)
		result.Stock = &report
	}

	return result, nil
}

func (s *Service) Delete(ctx context.Context, id string, dlg dialog.Dialog) error {
	if !dlg.Confirm(ctx, "Tem certeza que deseja excluir esta venda?") {
		return NewSaleError(ErrDeletionNotConfirmed, apiErrors.ErrConfirmationRequired, id, "")
	}

	if err := s.sales.Delete(ctx, id); err != nil {
		return NewSaleError(ErrDeleteSale, apiErrors.ErrDatabaseOperation, id, err.Error())
	}
	return nil
}

func (s *Service) setStatus(ctx context.Context, current *domain.Sale, status domain.SaleStatus) (*domain.Sale, error) {
	s.warnUnusualTransition(ctx, current, status)

	updated, err := s.sales.Update(ctx, current.ID, domain.Record{"status": status})
	if err != nil {
		return nil, NewSaleError(ErrUpdateSale, apiErrors.ErrDatabaseOperation, current.ID, err.Error())
	}
	return updated, nil
}

// warnUnusualTransition registra transições suspeitas sem bloqueá-las
func (s *Service) warnUnusualTransition(ctx context.Context, current *domain.Sale, to domain.SaleStatus) {
	if !current.Status.IsUnusualTransition(to) {
		return
	}

	log.ForComponent(ctx, "selling").WithFields(log.Fields{
		"id":   current.ID,
		"from": current.Status,
		"to":   to,
	}).Warnf("Transição incomum de status: %s → %s", current.Status.Label(), to.Label())
}

// build monta a venda resolvendo os nomes que não vieram no formulário
func (s *Service) build(ctx context.Context, input SaleInput) (*domain.Sale, error) {
	items := make([]domain.SaleItem, len(input.Items))
	copy(items, input.Items)

	for i := range items {
		if items[i].ProductName != "" {
			continue
		}

		product, err := s.products.Get(ctx, items[i].ProductID)
		if err != nil {
			return nil, NewSaleError(ErrResolveName, apiErrors.ErrDatabaseOperation, "", err.Error())
		}
		items[i].ProductName = domain.DefaultSaleProductName
		if product != nil && product.Name != "" {
			items[i].ProductName = product.Name
		}
	}

	clientName := input.ClientName
	if clientName == "" {
		clientName = domain.DefaultSaleClientName
		if input.ClientID != "" {
			client, err := s.clients.Get(ctx, input.ClientID)
			if err != nil {
				return nil, NewSaleError(ErrResolveName, apiErrors.ErrDatabaseOperation, "", err.Error())
			}
			if client != nil && client.Name != "" {
				clientName = client.Name
			}
		}
	}

	sale := &domain.Sale{
		ClientID:      input.ClientID,
		ClientName:    clientName,
		Items:         items,
		Shipping:      input.Shipping,
		Discount:      input.Discount,
		PaymentMethod: input.PaymentMethod,
		Status:        input.Status,
		Notes:         input.Notes,
	}
	sale.Recalculate()

	return sale, nil
}

type DateRange string

const (
	RangeAll   DateRange = ""
	RangeToday DateRange = "today"
	RangeWeek  DateRange = "week"
	RangeMonth DateRange = "month"
	RangeYear  DateRange = "year"
)

type ListFilter struct {
	Status domain.SaleStatus
	Range  DateRange
	Search string
	Sort   string // date ou total
	Order  string // asc ou desc
}

type Summary struct {
	TotalSales    float64 `json:"totalSales"`
	TotalOrders   int     `json:"totalOrders"`
	AverageTicket float64 `json:"averageTicket"`
}

type ListResult struct {
	Sales   []*SaleView `json:"sales"`
	Summary Summary     `json:"summary"`
}

func (s *Service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	sales, err := s.sales.List(ctx, nil)
	if err != nil {
		return nil, NewSaleError(ErrFetchSales, apiErrors.ErrDatabaseOperation, "", err.Error())
	}

	filtered := FilterSales(sales, filter, s.clock().In(s.loc))

	result := &ListResult{Sales: make([]*SaleView, 0, len(filtered))}
	for _, sale := range filtered {
		result.Sales = append(result.Sales, newView(sale))
		result.Summary.TotalSales += sale.Total
	}

	result.Summary.TotalOrders = len(filtered)
	result.Summary.TotalSales = utils.RoundWithTwoDecimalPlace(result.Summary.TotalSales)
	if result.Summary.TotalOrders > 0 {
		result.Summary.AverageTicket = utils.RoundWithTwoDecimalPlace(result.Summary.TotalSales / float64(result.Summary.TotalOrders))
	}

	return result, nil
}

// RangeStart retorna o início do período; a semana são os últimos sete dias corridos
func RangeStart(r DateRange, now time.Time) (time.Time, bool) {
	switch r {
	case RangeToday:
		return utils.StartOfDay(now), true
	case RangeWeek:
		return now.Add(-7 * 24 * time.Hour), true
	case RangeMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	case RangeYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), true
	}
	return time.Time{}, false
}

// FilterSales aplica status, período, busca e ordenação. A ordem padrão é a data decrescente.
func FilterSales(sales []*domain.Sale, filter ListFilter, now time.Time) []*domain.Sale {
	start, hasStart := RangeStart(filter.Range, now)
	term := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]*domain.Sale, 0, len(sales))
	for _, sale := range sales {
		if filter.Status != "" && sale.Status != filter.Status {
			continue
		}
		if hasStart && sale.CreatedAt.Before(start) {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(sale.ClientName), term) &&
			!strings.Contains(strings.ToLower(sale.ID), term) {
			continue
		}
		out = append(out, sale)
	}

	desc := filter.Order != "asc"
	less := func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	}
	if filter.Sort == "total" {
		less = func(i, j int) bool {
			return out[i].Total < out[j].Total
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(j, i)
		}
		return less(i, j)
	})

	return out
}

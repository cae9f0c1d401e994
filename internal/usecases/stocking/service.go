package stocking

import (
	"context"
	"sync"

	"github.com/vfg2006/c4-store-api/infrastructure/repository"
	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/pkg/apiErrors"
	"github.com/vfg2006/c4-store-api/pkg/log"
)

type StockAdjuster interface {
	ApplySale(ctx context.Context, sale *domain.Sale) Report
	RestoreSale(ctx context.Context, sale *domain.Sale) Report
	Adjust(ctx context.Context, productID string, delta int) (*domain.Product, error)
	RestoreOnCancel() bool
	Movements(ctx context.Context, productID string) ([]*domain.StockMovement, error)
}

// Config define as políticas de ajuste
type Config struct {
	RestoreOnCancel   bool
	RollbackOnFailure bool
}

type ItemResult struct {
	ProductID     string `json:"productId"`
	ProductName   string `json:"productName"`
	Delta         int    `json:"delta"`
	PreviousStock int    `json:"previousStock"`
	NewStock      int    `json:"newStock"`
	Error         string `json:"error,omitempty"`
}

type Report struct {
	SaleID     string       `json:"saleId"`
	Items      []ItemResult `json:"items"`
	Failed     int          `json:"failed"`
	RolledBack bool         `json:"rolledBack"`
}

func (r Report) OK() bool {
	return r.Failed == 0
}

// Adjuster altera o estoque um item por vez. O mutex serializa os ajustes do processo,
// mas não há atomicidade entre itens: sem RollbackOnFailure, os itens já aplicados permanecem.
type Adjuster struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	cfg       Config
	mu        sync.Mutex
}

func NewAdjuster(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	cfg Config,
) *Adjuster {
	return &Adjuster{
		products:  products,
		movements: movements,
		cfg:       cfg,
	}
}

func (a *Adjuster) RestoreOnCancel() bool {
	return a.cfg.RestoreOnCancel
}

// ApplySale baixa o estoque de cada item da venda, nunca abaixo de zero
func (a *Adjuster) ApplySale(ctx context.Context, sale *domain.Sale) Report {
	return a.applyItems(ctx, sale, -1, domain.MovementTypeSale)
}

// RestoreSale devolve ao estoque as quantidades da venda
func (a *Adjuster) RestoreSale(ctx context.Context, sale *domain.Sale) Report {
	return a.applyItems(ctx, sale, 1, domain.MovementTypeCancelRestore)
}

func (a *Adjuster) applyItems(ctx context.Context, sale *domain.Sale, sign int, movementType domain.MovementType) Report {
	a.mu.Lock()
	defer a.mu.Unlock()

	logger := log.ForComponent(ctx, "stock_adjuster").WithField("sale_id", sale.ID)
	report := Report{SaleID: sale.ID, Items: make([]ItemResult, 0, len(sale.Items))}
	applied := make([]ItemResult, 0, len(sale.Items))

	for _, item := range sale.Items {
		result, err := a.change(ctx, item.ProductID, sign*item.Quantity, movementType, sale.ID)
		if err != nil {
			result.Error = err.Error()
			report.Failed++
			report.Items = append(report.Items, result)

			logger.WithError(err).WithField("product_id", item.ProductID).Warn("Falha ao ajustar estoque do item")

			if a.cfg.RollbackOnFailure {
				a.rollback(ctx, sale.ID, applied)
				report.RolledBack = true
				return report
			}
			continue
		}

		report.Items = append(report.Items, result)
		applied = append(applied, result)
	}

	logger.WithFields(log.Fields{
		"items":  len(report.Items),
		"failed": report.Failed,
	}).Debug("Ajuste de estoque concluído")

	return report
}

// rollback devolve os itens já aplicados ao estoque anterior
func (a *Adjuster) rollback(ctx context.Context, saleID string, applied []ItemResult) {
	logger := log.ForComponent(ctx, "stock_adjuster").WithField("sale_id", saleID)

	for i := len(applied) - 1; i >= 0; i-- {
		item := applied[i]

		product, err := a.products.Update(ctx, item.ProductID, domain.Record{"stock": item.PreviousStock})
		if err != nil || product == nil {
			logger.WithError(err).WithField("product_id", item.ProductID).Error("Erro ao reverter estoque do item")
			continue
		}

		a.record(ctx, &domain.StockMovement{
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			SaleID:        saleID,
			Type:          domain.MovementTypeReversal,
			Delta:         -item.Delta,
			PreviousStock: item.NewStock,
			NewStock:      item.PreviousStock,
		})
	}
}

// Adjust aplica um ajuste manual ao estoque do produto
func (a *Adjuster) Adjust(ctx context.Context, productID string, delta int) (*domain.Product, error) {
	if delta == 0 {
		return nil, NewStockError(ErrInvalidDelta, apiErrors.ErrInvalidRequest, productID, "")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	result, err := a.change(ctx, productID, delta, domain.MovementTypeAdjustment, "")
	if err != nil {
		return nil, err
	}

	return a.products.Get(ctx, result.ProductID)
}

func (a *Adjuster) Movements(ctx context.Context, productID string) ([]*domain.StockMovement, error) {
	movements, err := a.movements.List(ctx, domain.Filters{"productId": productID})
	if err != nil {
		return nil, NewStockError(err, apiErrors.ErrDatabaseOperation, productID, "Falha ao listar movimentações")
	}

	filtered := make([]*domain.StockMovement, 0, len(movements))
	for _, m := range movements {
		if productID == "" || m.ProductID == productID {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

// change deve ser chamado com o mutex adquirido
func (a *Adjuster) change(ctx context.Context, productID string, delta int, movementType domain.MovementType, saleID string) (ItemResult, error) {
	result := ItemResult{ProductID: productID, Delta: delta}

	if productID == "" {
		return result, NewStockError(ErrInvalidItem, apiErrors.ErrInvalidRequest, productID, "")
	}

	product, err := a.products.Get(ctx, productID)
	if err != nil {
		return result, NewStockError(ErrUpdateStock, apiErrors.ErrDatabaseOperation, productID, err.Error())
	}
	if product == nil {
		return result, NewStockError(ErrProductNotFound, apiErrors.ErrNotFound, productID, "")
	}

	result.ProductName = product.Name
	result.PreviousStock = product.Stock
	result.NewStock = product.Stock + delta
	if result.NewStock < 0 {
		result.NewStock = 0
	}

	updated, err := a.products.Update(ctx, productID, domain.Record{"stock": result.NewStock})
	if err != nil {
		return result, NewStockError(ErrUpdateStock, apiErrors.ErrDatabaseOperation, productID, err.Error())
	}
	if updated == nil {
		return result, NewStockError(ErrProductNotFound, apiErrors.ErrNotFound, productID, "")
	}

	a.record(ctx, &domain.StockMovement{
		ProductID:     productID,
		ProductName:   product.Name,
		SaleID:        saleID,
		Type:          movementType,
		Delta:         delta,
		PreviousStock: result.PreviousStock,
		NewStock:      result.NewStock,
	})

	return result, nil
}

// record grava o histórico; falha aqui não desfaz o ajuste
func (a *Adjuster) record(ctx context.Context, movement *domain.StockMovement) {
	if a.movements == nil {
		return
	}

	if _, err := a.movements.Create(ctx, movement); err != nil {
		log.ForComponent(ctx, "stock_adjuster").WithError(err).WithField("product_id", movement.ProductID).
			Warnf("Erro ao registrar movimentação %s", movement.Type)
	}
}

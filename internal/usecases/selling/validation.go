package selling

import (
	"fmt"

	"github.com/vfg2006/c4-store-api/internal/domain"
)

// SaleInput são os dados informados no formulário de venda
type SaleInput struct {
	ClientID      string               `json:"clientId"`
	ClientName    string               `json:"clientName"`
	Items         []domain.SaleItem    `json:"items"`
	Shipping      float64              `json:"shipping"`
	Discount      float64              `json:"discount"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	Status        domain.SaleStatus    `json:"status"`
	Notes         string               `json:"notes"`
}

func (in SaleInput) validate() error {
	verr := domain.NewValidationError()

	if len(in.Items) == 0 {
		verr.Add("items", "Adicione pelo menos um produto")
	}

	for i, item := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		if item.ProductID == "" {
			verr.Add(field+".productId", "Este campo é obrigatório")
		}
		if item.Quantity < 1 || item.Quantity > domain.MaxSaleItemQuantity {
			verr.Add(field+".quantity", fmt.Sprintf("Quantidade deve estar entre 1 e %d", domain.MaxSaleItemQuantity))
		}
		if item.Price < 0 {
			verr.Add(field+".price", "Valor mínimo: 0")
		}
	}

	if in.Shipping < 0 {
		verr.Add("shipping", "Valor mínimo: 0")
	}
	if in.Discount < 0 {
		verr.Add("discount", "Valor mínimo: 0")
	}
	if !in.PaymentMethod.Valid() {
		verr.Add("paymentMethod", "Selecione uma forma de pagamento válida")
	}
	if in.Status != "" && !in.Status.Valid() {
		verr.Add("status", "Status inválido")
	}

	return verr.OrNil()
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
)

var saleStatusLabels = map[SaleStatus]string{
	SaleStatusPending:   "Pendente",
	SaleStatusCompleted: "Concluída",
	SaleStatusCancelled: "Cancelada",
}

func (s SaleStatus) Valid() bool {
	_, ok := saleStatusLabels[s]
	return ok
}

func (s SaleStatus) Label() string {
	if label, ok := saleStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// IsUnusualTransition sinaliza transições permitidas mas suspeitas,
// como reabrir uma venda cancelada ou voltar uma concluída para pendente.
func (s SaleStatus) IsUnusualTransition(to SaleStatus) bool {
	if s == to {
		return false
	}
	if s == SaleStatusCancelled {
		return true
	}
	return s == SaleStatusCompleted && to == SaleStatusPending
}

type PaymentMethod string

const (
	PaymentMethodPix          PaymentMethod = "pix"
	PaymentMethodCard         PaymentMethod = "cartao"
	PaymentMethodCash         PaymentMethod = "dinheiro"
	PaymentMethodBankTransfer PaymentMethod = "transferencia"
)

// Valores usados quando a venda não traz os nomes do produto ou do cliente
const (
	DefaultSaleProductName = "Produto"
	DefaultSaleClientName  = "Cliente"
	MaxSaleItemQuantity    = 9999
)

var paymentMethodLabels = map[PaymentMethod]string{
	PaymentMethodPix:          "PIX",
	PaymentMethodCard:         "Cartão",
	PaymentMethodCash:         "Dinheiro",
	PaymentMethodBankTransfer: "Transferência",
}

func (m PaymentMethod) Valid() bool {
	_, ok := paymentMethodLabels[m]
	return ok
}

func (m PaymentMethod) Label() string {
	if label, ok := paymentMethodLabels[m]; ok {
		return label
	}
	return string(m)
}

type SaleItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type Sale struct {
	ID            string        `json:"id"`
	ClientID      string        `json:"clientId"`
	ClientName    string        `json:"clientName"`
	Items         []SaleItem    `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Shipping      float64       `json:"shipping"`
	Discount      float64       `json:"discount"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Status        SaleStatus    `json:"status"`
	Notes         string        `json:"notes,omitempty"`
	UserID        string        `json:"user_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// CalculateSaleTotals retorna subtotal = Σ quantidade×preço e total = subtotal + frete - desconto,
// arredondados em centavos.
func CalculateSaleTotals(items []SaleItem, shipping, discount float64) (subtotal float64, total float64) {
	sum := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		sum = sum.Add(line)
	}

	grand := sum.Add(decimal.NewFromFloat(shipping)).Sub(decimal.NewFromFloat(discount))

	return sum.Round(2).InexactFloat64(), grand.Round(2).InexactFloat64()
}

// Recalculate atualiza subtotal e total a partir dos itens
func (s *Sale) Recalculate() {
	s.Subtotal, s.Total = CalculateSaleTotals(s.Items, s.Shipping, s.Discount)
}

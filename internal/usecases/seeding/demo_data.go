package seeding

import (
	"time"

	"github.com/vfg2006/c4-store-api/internal/domain"
)

// demoSale referencia produtos e clientes pela posição na lista de demonstração
type demoSale struct {
	client        int
	items         []demoItem
	shipping      float64
	discount      float64
	paymentMethod domain.PaymentMethod
	status        domain.SaleStatus
}

type demoItem struct {
	product  int
	quantity int
}

var demoProducts = []domain.Product{
	{Name: "Blusa Rosa Feminina", Category: "roupas", Cost: 20, Price: 45, Stock: 15, MinStock: 5, Description: "Blusa feminina em tecido leve, cor rosa, tamanhos P, M e G"},
	{Name: "Brinco Dourado Elegante", Category: "acessorios", Cost: 12, Price: 25, Stock: 8, MinStock: 3, Description: "Brinco dourado com design elegante, hipoalergênico"},
	{Name: "Sandália Nude Confortável", Category: "calcados", Cost: 35, Price: 65, Stock: 12, MinStock: 4, Description: "Sandália nude com salto baixo, muito confortável para o dia a dia"},
	{Name: "Vestido Floral Verão", Category: "roupas", Cost: 28, Price: 55, Stock: 6, MinStock: 5, Description: "Vestido com estampa floral, perfeito para o verão"},
	{Name: "Bolsa Pequena Preta", Category: "acessorios", Cost: 22, Price: 42, Stock: 3, MinStock: 5, Description: "Bolsa pequena preta, ideal para ocasiões especiais"},
}

var demoClients = []domain.Client{
	{Name: "Maria Silva", Email: "maria.silva@email.com", Phone: "(11) 99999-1111", Address: domain.Address{Street: "Rua das Flores, 123", City: "São Paulo", State: "SP", Zip: "01234-567"}},
	{Name: "Ana Santos", Email: "ana.santos@email.com", Phone: "(11) 99999-2222", Address: domain.Address{Street: "Av. Principal, 456", City: "São Paulo", State: "SP", Zip: "01234-890"}},
	{Name: "Carla Oliveira", Email: "carla.oliveira@email.com", Phone: "(11) 99999-3333", Address: domain.Address{Street: "Rua do Comércio, 789", City: "São Paulo", State: "SP", Zip: "01234-012"}},
}

var demoSales = []demoSale{
	{client: 0, items: []demoItem{{0, 2}, {1, 1}}, shipping: 12, paymentMethod: domain.PaymentMethodPix, status: domain.SaleStatusCompleted},
	{client: 1, items: []demoItem{{2, 1}}, discount: 5, paymentMethod: domain.PaymentMethodCard, status: domain.SaleStatusCompleted},
	{client: 2, items: []demoItem{{3, 1}, {4, 1}}, shipping: 8, paymentMethod: domain.PaymentMethodCash, status: domain.SaleStatusPending},
	{client: 0, items: []demoItem{{0, 1}}, paymentMethod: domain.PaymentMethodPix, status: domain.SaleStatusCompleted},
}

func demoGoal(now time.Time) domain.Goal {
	period := domain.MonthPeriod(now)
	return domain.Goal{
		Type:   domain.GoalTypeMonthly,
		Title:  "Meta do mês",
		Target: 5000,
		Period: &period,
	}
}

func demoExpenses(now time.Time) []domain.Expense {
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return []domain.Expense{
		{Category: domain.ExpenseCategoryFixed, Description: "Aluguel do ateliê", Amount: 800, Date: month.AddDate(0, 0, 4)},
		{Category: domain.ExpenseCategoryVariable, Description: "Tecidos e materiais", Amount: 350, Date: month.AddDate(0, 0, 14)},
		{Category: domain.ExpenseCategoryOther, Description: "Impulsionamento Instagram", Amount: 100, Date: month.AddDate(0, 0, 19)},
	}
}

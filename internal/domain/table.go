package domain

// Tabelas conhecidas pelo armazenamento
const (
	TableProducts       = "products"
	TableClients        = "clients"
	TableSales          = "sales"
	TableGoals          = "goals"
	TableExpenses       = "expenses"
	TableStockMovements = "stock_movements"
	TableUsers          = "users"
)

// DemoUserID identifica registros criados sem usuário autenticado
const DemoUserID = "demo_user"

var tablePrefixes = map[string]string{
	TableProducts:       "prod",
	TableClients:        "client",
	TableSales:          "sale",
	TableGoals:          "goal",
	TableExpenses:       "expense",
	TableStockMovements: "mov",
	TableUsers:          "user",
}

// Tables retorna todas as tabelas na ordem de sincronização
func Tables() []string {
	return []string{
		TableProducts,
		TableClients,
		TableSales,
		TableGoals,
		TableExpenses,
		TableStockMovements,
		TableUsers,
	}
}

// IsKnownTable valida o nome de uma tabela
func IsKnownTable(table string) bool {
	_, ok := tablePrefixes[table]
	return ok
}

// TablePrefix retorna o prefixo usado nos IDs gerados para a tabela
func TablePrefix(table string) string {
	if prefix, ok := tablePrefixes[table]; ok {
		return prefix
	}
	return "rec"
}

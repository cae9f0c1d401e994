package handler

import (
	"net/http"

	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/internal/usecases/reporting"
	"github.com/vfg2006/c4-store-api/pkg/apiErrors"
)

var statsPeriods = map[domain.StatsPeriod]bool{
	domain.StatsPeriodDay:   true,
	domain.StatsPeriodWeek:  true,
	domain.StatsPeriodMonth: true,
	domain.StatsPeriodYear:  true,
}

func GetDashboard(service reporting.ReportService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dashboard, err := service.Dashboard(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao montar o painel")
			return
		}

		writeJSON(w, http.StatusOK, dashboard)
	})
}

// GetSalesStats usa o mês quando ?period= não é informado
func GetSalesStats(service reporting.ReportService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		period := domain.StatsPeriod(r.URL.Query().Get("period"))
		if period == "" {
			period = domain.StatsPeriodMonth
		}
		if !statsPeriods[period] {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Período inválido. Valores aceitos: day, week, month, year", nil)
			return
		}

		stats, err := service.SalesStats(r.Context(), period)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao calcular estatísticas de vendas")
			return
		}

		writeJSON(w, http.StatusOK, stats)
	})
}

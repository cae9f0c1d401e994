package handler

import (
	"net/http"

	"github.com/vfg2006/c4-store-api/internal/dialog"
	"github.com/vfg2006/c4-store-api/internal/domain"
	"github.com/vfg2006/c4-store-api/internal/usecases/selling"
)

func ListSales(service selling.SaleService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		result, err := service.List(r.Context(), selling.ListFilter{
			Status: domain.SaleStatus(query.Get("status")),
			Range:  selling.DateRange(query.Get("range")),
			Search: query.Get("search"),
			Sort:   query.Get("sort"),
			Order:  query.Get("order"),
		})
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar vendas")
			return
		}

		writeJSON(w, http.StatusOK, result)
	})
}

func GetSale(service selling.SaleService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		sale, err := service.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar venda")
			return
		}

		writeFound(w, sale, "Venda não encontrada")
	})
}

// CreateSale devolve a venda e o relatório da baixa de estoque
func CreateSale(service selling.SaleService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var input selling.SaleInput
		if !decodeBody(w, r, &input) {
			return
		}

		result, err := service.Create(r.Context(), input)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao registrar venda")
			return
		}

		writeJSON(w, http.StatusCreated, result)
	})
}

func UpdateSale(service selling.SaleService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var input selling.SaleInput
		if !decodeBody(w, r, &input) {
			return
		}

		sale, err := service.Update(r.Context(), id, input)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar venda")
			return
		}

		writeFound(w, sale, "Venda não encontrada")
	})
}

func CompleteSale(service selling.SaleService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		sale, err := service.Complete(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao concluir venda")
			return
		}

		writeFound(w, sale, "Venda não encontrada")
	})
}

func CancelSale(service selling.SaleService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		result, err := service.Cancel(r.Context(), id, dialog.FromRequest(r))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao cancelar venda")
			return
		}

		writeFound(w, result, "Venda não encontrada")
	})
}

func DeleteSale(service selling.SaleService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := service.Delete(r.Context(), id, dialog.FromRequest(r)); err != nil {
			writeServiceError(w, r, err, "Erro ao excluir venda")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

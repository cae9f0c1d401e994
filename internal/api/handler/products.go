package handler

import (
	"net/http"

	"github.com/vfg2006/c4-store-api/internal/dialog"
	"github.com/vfg2006/c4-store-api/internal/usecases/cataloging"
	"github.com/vfg2006/c4-store-api/pkg/apiErrors"
)

type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

func ListProducts(service cataloging.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		products, err := service.List(r.Context(), cataloging.ListFilter{
			Search:   query.Get("search"),
			Category: query.Get("category"),
			Sort:     query.Get("sort"),
			Order:    query.Get("order"),
		})
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar produtos")
			return
		}

		writeJSON(w, http.StatusOK, products)
	})
}

func GetProduct(service cataloging.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		product, err := service.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar produto")
			return
		}

		writeFound(w, product, "Produto não encontrado")
	})
}

func CreateProduct(service cataloging.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var input cataloging.ProductInput
		if !decodeBody(w, r, &input) {
			return
		}

		product, err := service.Create(r.Context(), input)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar produto")
			return
		}

		writeJSON(w, http.StatusCreated, product)
	})
}

func UpdateProduct(service cataloging.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var input cataloging.ProductInput
		if !decodeBody(w, r, &input) {
			return
		}

		product, err := service.Update(r.Context(), id, input)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar produto")
			return
		}

		writeFound(w, product, "Produto não encontrado")
	})
}

func DeleteProduct(service cataloging.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := service.Delete(r.Context(), id, dialog.FromRequest(r)); err != nil {
			writeServiceError(w, r, err, "Erro ao excluir produto")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// DuplicateProduct usa ?answer= como nome da cópia
func DuplicateProduct(service cataloging.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		product, err := service.Duplicate(r.Context(), id, dialog.FromRequest(r))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao duplicar produto")
			return
		}

		writeJSON(w, http.StatusCreated, product)
	})
}

func ProductCategories(service cataloging.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		categories, err := service.Categories(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar categorias")
			return
		}

		writeJSON(w, http.StatusOK, categories)
	})
}

func LowStockProducts(service cataloging.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		products, err := service.LowStock(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar produtos com estoque baixo")
			return
		}

		writeJSON(w, http.StatusOK, products)
	})
}

func AdjustProductStock(service cataloging.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req AdjustStockRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Delta == 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Ajuste de estoque deve ser diferente de zero", nil)
			return
		}

		product, err := service.AdjustStock(r.Context(), id, req.Delta)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao ajustar estoque")
			return
		}

		writeFound(w, product, "Produto não encontrado")
	})
}

func ProductMovements(service cataloging.CatalogService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		movements, err := service.Movements(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar movimentações de estoque")
			return
		}

		writeJSON(w, http.StatusOK, movements)
	})
}

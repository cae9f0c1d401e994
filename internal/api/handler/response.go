package handler

import (
	"net/http"
	"reflect"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/c4-store-api/infrastructure/storage/medium"
	"github.com/vfg2006/c4-store-api/internal/usecases/authenticating"
	"github.com/vfg2006/c4-store-api/internal/usecases/cataloging"
	"github.com/vfg2006/c4-store-api/internal/usecases/customer"
	"github.com/vfg2006/c4-store-api/internal/usecases/planning"
	"github.com/vfg2006/c4-store-api/internal/usecases/selling"
	"github.com/vfg2006/c4-store-api/internal/usecases/stocking"
	"github.com/vfg2006/c4-store-api/pkg/apiErrors"
	"github.com/vfg2006/c4-store-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Error("Erro ao codificar resposta")
	}
}

// writeFound responde 404 quando o serviço devolveu nil para o id
func writeFound(w http.ResponseWriter, body any, message string) {
	if body == nil || (reflect.ValueOf(body).Kind() == reflect.Ptr && reflect.ValueOf(body).IsNil()) {
		apiErrors.WriteError(w, apiErrors.ErrNotFound, message, nil)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if id == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID é obrigatório", nil)
		return "", false
	}
	return id, true
}

// errorCode extrai o código dos erros tipados dos casos de uso
func errorCode(err error) (string, bool) {
	var (
		authErr     *authenticating.AuthError
		productErr  *cataloging.ProductError
		clientErr   *customer.ClientError
		planningErr *planning.PlanningError
		saleErr     *selling.SaleError
		stockErr    *stocking.StockError
	)

	switch {
	case errors.As(err, &authErr):
		return authErr.Code, true
	case errors.As(err, &productErr):
		return productErr.Code, true
	case errors.As(err, &clientErr):
		return clientErr.Code, true
	case errors.As(err, &planningErr):
		return planningErr.Code, true
	case errors.As(err, &saleErr):
		return saleErr.Code, true
	case errors.As(err, &stockErr):
		return stockErr.Code, true
	}
	return "", false
}

// writeServiceError converte o erro do caso de uso na resposta padronizada
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, message string) {
	if apiErrors.WriteValidationError(w, err) {
		return
	}

	if errors.Is(err, medium.ErrUnavailable) || errors.Is(err, medium.ErrQuotaExceeded) {
		log.ForComponent(r.Context(), "handler").WithError(err).Error(message)
		apiErrors.WriteError(w, apiErrors.ErrStorageUnavailable, message, nil)
		return
	}

	code, ok := errorCode(err)
	if !ok {
		code = apiErrors.ErrInternalServer
	}

	logger := log.ForComponent(r.Context(), "handler").WithError(err).WithField("path", r.URL.Path)
	if apiErrors.Status(code) >= http.StatusInternalServerError {
		logger.Error(message)
	} else {
		logger.Warn(message)
	}

	apiErrors.WriteError(w, code, err.Error(), nil)
}

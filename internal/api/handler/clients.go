package handler

import (
	"net/http"

	"github.com/vfg2006/c4-store-api/internal/dialog"
	"github.com/vfg2006/c4-store-api/internal/usecases/customer"
)

func ListClients(service customer.ClientService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clients, err := service.List(r.Context(), r.URL.Query().Get("search"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar clientes")
			return
		}

		writeJSON(w, http.StatusOK, clients)
	})
}

func GetClient(service customer.ClientService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		client, err := service.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar cliente")
			return
		}

		writeFound(w, client, "Cliente não encontrado")
	})
}

func CreateClient(service customer.ClientService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var input customer.ClientInput
		if !decodeBody(w, r, &input) {
			return
		}

		client, err := service.Create(r.Context(), input)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar cliente")
			return
		}

		writeJSON(w, http.StatusCreated, client)
	})
}

func UpdateClient(service customer.ClientService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var input customer.ClientInput
		if !decodeBody(w, r, &input) {
			return
		}

		client, err := service.Update(r.Context(), id, input)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar cliente")
			return
		}

		writeFound(w, client, "Cliente não encontrado")
	})
}

func DeleteClient(service customer.ClientService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := service.Delete(r.Context(), id, dialog.FromRequest(r)); err != nil {
			writeServiceError(w, r, err, "Erro ao excluir cliente")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

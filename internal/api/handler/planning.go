package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/c4-store-api/internal/dialog"
	"github.com/vfg2006/c4-store-api/internal/usecases/planning"
)

func ListGoals(service planning.PlanningService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		goals, err := service.ListGoals(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar metas")
			return
		}

		writeJSON(w, http.StatusOK, goals)
	})
}

// SaveGoal cria a meta no POST e atualiza a do id no PUT
func SaveGoal(service planning.PlanningService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var input planning.GoalInput
		if !decodeBody(w, r, &input) {
			return
		}

		goal, err := service.SaveGoal(r.Context(), id, input)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao salvar meta")
			return
		}

		if id == "" {
			writeJSON(w, http.StatusCreated, goal)
			return
		}
		writeFound(w, goal, "Meta não encontrada")
	})
}

// ListExpenses aceita ?month=true para restringir ao mês corrente
func ListExpenses(service planning.PlanningService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		month, _ := strconv.ParseBool(r.URL.Query().Get("month"))

		expenses, err := service.ListExpenses(r.Context(), month)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar despesas")
			return
		}

		writeJSON(w, http.StatusOK, expenses)
	})
}

func CreateExpense(service planning.PlanningService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var input planning.ExpenseInput
		if !decodeBody(w, r, &input) {
			return
		}

		expense, err := service.CreateExpense(r.Context(), input)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao registrar despesa")
			return
		}

		writeJSON(w, http.StatusCreated, expense)
	})
}

func DeleteExpense(service planning.PlanningService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := service.DeleteExpense(r.Context(), id, dialog.FromRequest(r)); err != nil {
			writeServiceError(w, r, err, "Erro ao excluir despesa")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

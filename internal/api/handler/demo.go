package handler

import (
	"net/http"
	"strconv"

	"github.com/vfg2006/c4-store-api/internal/usecases/seeding"
)

// LoadDemo instala os dados de demonstração; ?force=true reinstala
func LoadDemo(seeder seeding.Seeder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		force, _ := strconv.ParseBool(r.URL.Query().Get("force"))

		result, err := seeder.Load(r.Context(), force)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao instalar dados de demonstração")
			return
		}

		writeJSON(w, http.StatusOK, result)
	})
}

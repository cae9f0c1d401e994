package handler

import (
	"net/http"
	"time"
)

func HealthcheckHandler(version string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
			"time":    time.Now().Format(time.RFC3339),
		})
	})
}

package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/c4-store-api/pkg/apiErrors"
)

// Tipos de rotina que podem ser disparadas manualmente
const (
	CronJobTypeOfflineSync = "offline-sync"
	CronJobTypeAll         = "all"
)

type ManualJob interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

type StatusJob interface {
	GetStatus() map[string]any
}

// CronJobServices contém as rotinas agendadas expostas pela API
type CronJobServices struct {
	OfflineSync ManualJob
	Reconnect   StatusJob
	CacheSweep  StatusJob
}

// RunCronJob executa manualmente uma rotina específica
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de rotina não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeOfflineSync, CronJobTypeAll:
			if services.OfflineSync == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização offline não disponível", nil)
				return
			}
			services.OfflineSync.TriggerManualSync()
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de rotina inválido. Valores aceitos: offline-sync, all", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Rotina iniciada com sucesso",
			"type":    cronType,
		})
	})
}

// GetCronStatus retorna o status das rotinas agendadas
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{}
		if services.OfflineSync != nil {
			status["offline-sync"] = services.OfflineSync.GetStatus()
		}
		if services.Reconnect != nil {
			status["reconnect"] = services.Reconnect.GetStatus()
		}
		if services.CacheSweep != nil {
			status["cache-sweep"] = services.CacheSweep.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	})
}

package handler

import (
	"net/http"

	"github.com/vfg2006/c4-store-api/infrastructure/repository"
	"github.com/vfg2006/c4-store-api/infrastructure/storage/kvs"
	"github.com/vfg2006/c4-store-api/internal/notification"
	"github.com/vfg2006/c4-store-api/pkg/apiErrors"
	"github.com/vfg2006/c4-store-api/pkg/log"
)

// BackupStore é a parte do KVS exposta pela API
type BackupStore interface {
	Export() (kvs.Snapshot, error)
	Import(snapshot kvs.Snapshot) error
	Size() (kvs.Stats, error)
	ClearCache() error
}

type StatusSource interface {
	Status() repository.Status
}

type NotificationFeed interface {
	Recent() []notification.Entry
}

func ExportBackup(store BackupStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := store.Export()
		if err != nil {
			writeServiceError(w, r, err, "Erro ao exportar dados")
			return
		}

		w.Header().Set("Content-Disposition", `attachment; filename="c4app-backup.json"`)
		writeJSON(w, http.StatusOK, snapshot)
	})
}

// ImportBackup substitui todo o armazenamento local pelo snapshot enviado
func ImportBackup(store BackupStore, feed notification.Notifier) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var snapshot kvs.Snapshot
		if !decodeBody(w, r, &snapshot) {
			return
		}

		if snapshot.Data == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, kvs.ErrInvalidSnapshot.Error(), nil)
			return
		}

		if err := store.Import(snapshot); err != nil {
			feed.Notify(r.Context(), notification.LevelError, "Erro ao importar dados")
			writeServiceError(w, r, err, "Erro ao importar dados")
			return
		}

		log.ForComponent(r.Context(), "backup").WithField("items", len(snapshot.Data)).Info("Backup importado")
		feed.Notify(r.Context(), notification.LevelSuccess, "Dados importados com sucesso")
		writeJSON(w, http.StatusOK, map[string]any{"imported": len(snapshot.Data)})
	})
}

func StorageStats(store BackupStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stats, err := store.Size()
		if err != nil {
			writeServiceError(w, r, err, "Erro ao calcular uso do armazenamento")
			return
		}

		writeJSON(w, http.StatusOK, stats)
	})
}

func ClearCache(store BackupStore) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := store.ClearCache(); err != nil {
			writeServiceError(w, r, err, "Erro ao limpar cache")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func StoreStatus(source StatusSource) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, source.Status())
	})
}

func Notifications(feed NotificationFeed) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, feed.Recent())
	})
}

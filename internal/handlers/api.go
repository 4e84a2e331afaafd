package handlers

import (
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dartview/internal/common"
	"github.com/ternarybob/dartview/internal/interfaces"
)

type APIHandler struct {
	storage interfaces.CompanyStorage
	logger  arbor.ILogger
}

func NewAPIHandler(storage interfaces.CompanyStorage, logger arbor.ILogger) *APIHandler {
	return &APIHandler{
		storage: storage,
		logger:  logger,
	}
}

// VersionHandler returns version information
func (h *APIHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	info := common.GetVersionInfo()
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"version":    info.Version,
		"build":      info.Build,
		"git_commit": info.GitCommit,
	})
}

// HealthHandler probes the company directory and reports its row count
func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	timestamp := time.Now().Format(time.RFC3339)

	count, err := h.storage.Count(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Health check failed")
		WriteJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success":   false,
			"message":   msgUnhealthy,
			"status":    "unhealthy",
			"error":     err.Error(),
			"timestamp": timestamp,
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"status":          "healthy",
		"database":        "connected",
		"total_companies": count,
		"timestamp":       timestamp,
	})
}

// NotFoundHandler handles unmatched paths with a JSON 404
func (h *APIHandler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug().Str("path", r.URL.Path).Msg("No route matched")
	WriteError(w, http.StatusNotFound, msgResourceNotFound)
}

package handler

import (
	"net/http"

	"github.com/osse101/ContestBot_Go/internal/registry"
)

// HandleGetCacheStats returns participant cache statistics
// @Summary Get participant cache stats
// @Description Returns cache hit/miss statistics for monitoring (admin only)
// @Tags admin
// @Produce json
// @Success 200 {object} registry.CacheStats
// @Router /api/v1/admin/cache/stats [get]
func HandleGetCacheStats(svc registry.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, svc.GetCacheStats())
	}
}

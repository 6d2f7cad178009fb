package http

import (
	"net/http"

	"github.com/MrArnoldPalmer/delivlib/pkg/domain/model"
	"github.com/MrArnoldPalmer/delivlib/pkg/domain/types"
)

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, &model.HealthStatus{
		Status:  "healthy",
		Service: types.AppName,
		Version: types.Version,
	})
}

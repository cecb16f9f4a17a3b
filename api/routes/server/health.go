package server

import (
	"context"
	"net/http"
	"time"

	"github.com/Voltaic314/ShelfDB/types/api"
)

type HealthResponseData struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Backends int    `json:"backends"`
}

// HandleHealth reports whether the shared directory database answers
func HandleHealth(w http.ResponseWriter, r *http.Request, server interface{}) {
	s := server.(interface {
		Ping(ctx context.Context) error
		OpenBackends() int
	})

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	data := HealthResponseData{Status: "healthy", Service: "ShelfDB", Backends: s.OpenBackends()}
	if err := s.Ping(ctx); err != nil {
		data.Status = "unhealthy"
		resp := api.NewErrorResponse("unavailable", err.Error())
		resp.Data = data
		resp.SendJSON(w, http.StatusServiceUnavailable)
		return
	}
	api.Success(w, data)
}

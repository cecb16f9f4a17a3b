package objects

import (
	"net/http"

	"github.com/Voltaic314/ShelfDB/core/objects"
	"github.com/Voltaic314/ShelfDB/metrics"
	"github.com/Voltaic314/ShelfDB/types/api"
)

// AllocateRequest is the body of POST /api/objects
type AllocateRequest struct {
	Type string `json:"type"`
}

type AllocateResponseData struct {
	TableName string `json:"table_name"`
}

// HandleAllocate creates the next object table for a type prefix
func HandleAllocate(w http.ResponseWriter, r *http.Request, server interface{}) {
	b, ok := api.Backend(w, r, server)
	if !ok {
		return
	}

	var req AllocateRequest
	if !api.DecodeJSON(w, r, &req) {
		return
	}

	s := server.(interface{ Metrics() *metrics.Metrics })
	resp, err := objects.Allocate(r.Context(), b.DB, s.Metrics(), objects.AllocateRequest{Type: req.Type})
	if err != nil {
		api.Fail(w, r, server, err)
		return
	}

	api.Created(w, AllocateResponseData{TableName: resp.TableName.String()})
}

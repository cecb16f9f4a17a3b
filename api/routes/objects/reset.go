package objects

import (
	"net/http"

	"github.com/Voltaic314/ShelfDB/core/canvas"
	"github.com/Voltaic314/ShelfDB/core/objects"
	"github.com/Voltaic314/ShelfDB/types/api"
)

// ResetRequest is the optional body of POST /api/reset
type ResetRequest struct {
	ClearCanvas bool `json:"clear_canvas"`
}

type ResetResponseData struct {
	Dropped int `json:"dropped"`
}

// HandleReset drops every object table of the caller, and the canvas
// snapshot when asked to.
func HandleReset(w http.ResponseWriter, r *http.Request, server interface{}) {
	b, ok := api.Backend(w, r, server)
	if !ok {
		return
	}

	var req ResetRequest
	if r.ContentLength != 0 && !api.DecodeJSON(w, r, &req) {
		return
	}

	resp, err := objects.Reset(r.Context(), b.DB)
	if err != nil {
		api.Fail(w, r, server, err)
		return
	}
	if req.ClearCanvas {
		if err := canvas.Clear(r.Context(), b.DB); err != nil {
			api.Fail(w, r, server, err)
			return
		}
	}

	api.Success(w, ResetResponseData{Dropped: len(resp.Dropped)})
}

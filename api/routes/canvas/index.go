package canvas

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/Voltaic314/ShelfDB/core/canvas"
	"github.com/Voltaic314/ShelfDB/types/api"
	"github.com/go-chi/chi/v5"
)

// maxStateBytes bounds the size of a canvas snapshot upload.
const maxStateBytes = 8 << 20

// RegisterRoutes registers the canvas snapshot routes
func RegisterRoutes(r chi.Router, server interface{}) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		HandleLoad(w, r, server)
	})
	r.Put("/", func(w http.ResponseWriter, r *http.Request) {
		HandleSave(w, r, server)
	})
	r.Delete("/", func(w http.ResponseWriter, r *http.Request) {
		HandleClear(w, r, server)
	})
}

type LoadResponseData struct {
	State json.RawMessage `json:"state"`
}

// HandleLoad returns the saved snapshot; state is null when there is none.
func HandleLoad(w http.ResponseWriter, r *http.Request, server interface{}) {
	b, ok := api.Backend(w, r, server)
	if !ok {
		return
	}

	resp, err := canvas.Load(r.Context(), b.DB)
	if err != nil {
		api.Fail(w, r, server, err)
		return
	}

	state := resp.State
	if !resp.Found {
		state = json.RawMessage("null")
	}
	api.Success(w, LoadResponseData{State: state})
}

// HandleSave replaces the snapshot with the request body
func HandleSave(w http.ResponseWriter, r *http.Request, server interface{}) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxStateBytes+1))
	if err != nil {
		api.BadRequest(w, "Could not read body")
		return
	}
	if len(body) > maxStateBytes {
		api.BadRequest(w, "Canvas state is too large")
		return
	}

	b, ok := api.Backend(w, r, server)
	if !ok {
		return
	}

	if err := canvas.Save(r.Context(), b.DB, canvas.SaveRequest{State: body}); err != nil {
		api.Fail(w, r, server, err)
		return
	}
	api.SuccessEmpty(w)
}

// HandleClear removes the snapshot
func HandleClear(w http.ResponseWriter, r *http.Request, server interface{}) {
	b, ok := api.Backend(w, r, server)
	if !ok {
		return
	}

	if err := canvas.Clear(r.Context(), b.DB); err != nil {
		api.Fail(w, r, server, err)
		return
	}
	api.SuccessEmpty(w)
}

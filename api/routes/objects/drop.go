package objects

import (
	"net/http"

	"github.com/Voltaic314/ShelfDB/core/objects"
	"github.com/Voltaic314/ShelfDB/ident"
	"github.com/Voltaic314/ShelfDB/types/api"
	"github.com/go-chi/chi/v5"
)

// HandleDrop drops an object table. Dropping a missing table succeeds.
func HandleDrop(w http.ResponseWriter, r *http.Request, server interface{}) {
	b, ok := api.Backend(w, r, server)
	if !ok {
		return
	}

	table := ident.TableName(chi.URLParam(r, "table"))
	if err := objects.Drop(r.Context(), b.DB, objects.DropRequest{Table: table}); err != nil {
		api.Fail(w, r, server, err)
		return
	}

	api.SuccessEmpty(w)
}

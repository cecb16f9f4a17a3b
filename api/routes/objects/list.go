package objects

import (
	"net/http"

	"github.com/Voltaic314/ShelfDB/core/objects"
	"github.com/Voltaic314/ShelfDB/types/api"
	dbTypes "github.com/Voltaic314/ShelfDB/types/db"
)

type ListResponseData struct {
	Tables []dbTypes.TableInfo `json:"tables"`
}

// HandleList lists the caller's object tables
func HandleList(w http.ResponseWriter, r *http.Request, server interface{}) {
	b, ok := api.Backend(w, r, server)
	if !ok {
		return
	}

	resp, err := objects.List(r.Context(), b.DB)
	if err != nil {
		api.Fail(w, r, server, err)
		return
	}

	api.Success(w, ListResponseData{Tables: resp.Tables})
}

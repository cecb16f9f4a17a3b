package objects

import (
	"net/http"

	"github.com/Voltaic314/ShelfDB/core/objects"
	"github.com/Voltaic314/ShelfDB/ident"
	"github.com/Voltaic314/ShelfDB/types/api"
)

// RenameRequest is the body of POST /api/objects/rename
type RenameRequest struct {
	TableName string `json:"table_name"`
	NewName   string `json:"new_name"`
}

type RenameResponseData struct {
	Rows int64 `json:"rows"`
}

// HandleRename overwrites the display name of every row of an object
func HandleRename(w http.ResponseWriter, r *http.Request, server interface{}) {
	b, ok := api.Backend(w, r, server)
	if !ok {
		return
	}

	var req RenameRequest
	if !api.DecodeJSON(w, r, &req) {
		return
	}

	resp, err := objects.Rename(r.Context(), b.DB, objects.RenameRequest{
		Table:   ident.TableName(req.TableName),
		NewName: req.NewName,
	})
	if err != nil {
		api.Fail(w, r, server, err)
		return
	}

	api.Success(w, RenameResponseData{Rows: resp.Rows})
}

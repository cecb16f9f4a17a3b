package contents

import (
	"net/http"

	"github.com/Voltaic314/ShelfDB/core/contents"
	"github.com/Voltaic314/ShelfDB/ident"
	"github.com/Voltaic314/ShelfDB/types/api"
	dbTypes "github.com/Voltaic314/ShelfDB/types/db"
)

// InsertRequest is the body of POST /api/contents
type InsertRequest struct {
	TableName string `json:"table_name"`
	dbTypes.NewContent
}

type InsertResponseData struct {
	ID int64 `json:"id"`
}

// HandleInsert adds one row to an object table
func HandleInsert(w http.ResponseWriter, r *http.Request, server interface{}) {
	b, ok := api.Backend(w, r, server)
	if !ok {
		return
	}

	var req InsertRequest
	if !api.DecodeJSON(w, r, &req) {
		return
	}

	resp, err := contents.Insert(r.Context(), b.DB, contents.InsertRequest{
		Table:   ident.TableName(req.TableName),
		Content: req.NewContent,
	})
	if err != nil {
		api.Fail(w, r, server, err)
		return
	}

	api.Created(w, InsertResponseData{ID: resp.ID})
}

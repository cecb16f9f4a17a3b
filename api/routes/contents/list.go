package contents

import (
	"net/http"

	"github.com/Voltaic314/ShelfDB/core/contents"
	"github.com/Voltaic314/ShelfDB/ident"
	"github.com/Voltaic314/ShelfDB/types/api"
	dbTypes "github.com/Voltaic314/ShelfDB/types/db"
)

// ListRequest is the body of POST /api/contents/list
type ListRequest struct {
	TableName string `json:"table_name"`
}

type ListResponseData struct {
	Rows []dbTypes.ContentRow `json:"rows"`
}

// HandleList returns the rows of an object table in id order. Row positions
// used by delete refer to this order.
func HandleList(w http.ResponseWriter, r *http.Request, server interface{}) {
	b, ok := api.Backend(w, r, server)
	if !ok {
		return
	}

	var req ListRequest
	if !api.DecodeJSON(w, r, &req) {
		return
	}

	resp, err := contents.List(r.Context(), b.DB, contents.ListRequest{Table: ident.TableName(req.TableName)})
	if err != nil {
		api.Fail(w, r, server, err)
		return
	}

	api.Success(w, ListResponseData{Rows: resp.Rows})
}

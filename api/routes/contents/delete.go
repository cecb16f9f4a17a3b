package contents

import (
	"net/http"

	"github.com/Voltaic314/ShelfDB/core/contents"
	"github.com/Voltaic314/ShelfDB/ident"
	"github.com/Voltaic314/ShelfDB/types/api"
)

// DeleteRequest is the body of POST /api/contents/delete. Indices are
// zero-based positions in the id-ordered row list.
type DeleteRequest struct {
	TableName string `json:"table_name"`
	Indices   []int  `json:"indices"`
}

type DeleteResponseData struct {
	Deleted []int64 `json:"deleted"`
}

// HandleDelete removes rows by position
func HandleDelete(w http.ResponseWriter, r *http.Request, server interface{}) {
	b, ok := api.Backend(w, r, server)
	if !ok {
		return
	}

	var req DeleteRequest
	if !api.DecodeJSON(w, r, &req) {
		return
	}

	resp, err := contents.DeleteByPositions(r.Context(), b.DB, contents.DeleteRequest{
		Table:     ident.TableName(req.TableName),
		Positions: req.Indices,
	})
	if err != nil {
		api.Fail(w, r, server, err)
		return
	}

	deleted := resp.Deleted
	if deleted == nil {
		deleted = []int64{}
	}
	api.Success(w, DeleteResponseData{Deleted: deleted})
}

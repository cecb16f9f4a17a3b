package objects

import (
	"net/http"

	"github.com/Voltaic314/ShelfDB/core/contents"
	"github.com/Voltaic314/ShelfDB/ident"
	"github.com/Voltaic314/ShelfDB/types/api"
	dbTypes "github.com/Voltaic314/ShelfDB/types/db"
	"github.com/go-chi/chi/v5"
)

type ChildrenResponseData struct {
	Children []dbTypes.Child `json:"children"`
}

// HandleChildren lists the rows nested under an object
func HandleChildren(w http.ResponseWriter, r *http.Request, server interface{}) {
	b, ok := api.Backend(w, r, server)
	if !ok {
		return
	}

	parent := ident.TableName(chi.URLParam(r, "table"))
	resp, err := contents.Children(r.Context(), b.DB, contents.ChildrenRequest{Parent: parent})
	if err != nil {
		api.Fail(w, r, server, err)
		return
	}

	api.Success(w, ChildrenResponseData{Children: resp.Children})
}

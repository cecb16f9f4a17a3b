package contents

import (
	"net/http"

	"github.com/Voltaic314/ShelfDB/core/contents"
	"github.com/Voltaic314/ShelfDB/metrics"
	"github.com/Voltaic314/ShelfDB/types/api"
	dbTypes "github.com/Voltaic314/ShelfDB/types/db"
	"go.uber.org/zap"
)

// SearchRequest is the body of POST /api/contents/search
type SearchRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type SearchResponseData struct {
	Matches []dbTypes.Match `json:"matches"`
}

// HandleSearch finds the tables whose rows match the name and category terms
func HandleSearch(w http.ResponseWriter, r *http.Request, server interface{}) {
	b, ok := api.Backend(w, r, server)
	if !ok {
		return
	}

	var req SearchRequest
	if !api.DecodeJSON(w, r, &req) {
		return
	}

	s := server.(interface {
		Metrics() *metrics.Metrics
		Logger() *zap.Logger
	})
	resp, err := contents.Search(r.Context(), b.DB, s.Logger(), s.Metrics(), contents.SearchRequest{
		Name:     req.Name,
		Category: req.Category,
	})
	if err != nil {
		api.Fail(w, r, server, err)
		return
	}

	api.Success(w, SearchResponseData{Matches: resp.Matches})
}

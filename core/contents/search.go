package contents

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/Voltaic314/ShelfDB/db"
	"github.com/Voltaic314/ShelfDB/db/tables"
	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
	"github.com/Voltaic314/ShelfDB/metrics"
	dbTypes "github.com/Voltaic314/ShelfDB/types/db"
	"go.uber.org/zap"
)

// SearchRequest represents the input for searching contents
type SearchRequest struct {
	Name     string
	Category string
}

// SearchResponse represents the output for searching contents
type SearchResponse struct {
	Matches []dbTypes.Match
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search finds the object tables holding rows whose item name and category
// contain the given substrings, and reports each distinct parent reference of
// those rows. An empty query term matches anything; when both are empty the
// result is empty and storage is not touched.
//
// A table whose query fails is skipped so one broken table cannot hide the
// rest of the results.
func Search(ctx context.Context, database *db.DB, log *zap.Logger, m *metrics.Metrics, req SearchRequest) (*SearchResponse, error) {
	const op = "contents.Search"

	resp := &SearchResponse{Matches: []dbTypes.Match{}}
	if req.Name == "" && req.Category == "" {
		return resp, nil
	}

	dynamic, err := tables.DynamicTables(ctx, database)
	if err != nil {
		return nil, kerrors.Storage(op, err)
	}

	for _, table := range dynamic {
		q := sq.Select("DISTINCT " + tables.ColParent).From(table.Quoted())
		if req.Name != "" {
			q = q.Where(contains(tables.ColItemName, req.Name))
		}
		if req.Category != "" {
			q = q.Where(contains(tables.ColCategory, req.Category))
		}
		query, args, err := q.OrderBy(tables.ColParent).ToSql()
		if err != nil {
			return nil, kerrors.Storage(op, err)
		}

		var parents []sql.NullString
		if err := database.Select(ctx, &parents, query, args...); err != nil {
			if m != nil {
				m.SearchTablesSkipped.Inc()
			}
			if log != nil {
				log.Warn("search skipped table", zap.String("table", table.String()), zap.Error(err))
			}
			continue
		}

		for _, p := range parents {
			match := dbTypes.Match{TableName: table.String()}
			if p.Valid {
				parent := p.String
				match.ParentTableName = &parent
			}
			resp.Matches = append(resp.Matches, match)
		}
	}
	return resp, nil
}

func contains(column, term string) sq.Sqlizer {
	return sq.Expr(column+` ILIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(term)+"%")
}

// Package canvas stores the per-tenant canvas snapshot: one opaque JSON
// document, fully replaced on every save.
package canvas

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/Voltaic314/ShelfDB/db"
	"github.com/Voltaic314/ShelfDB/db/tables"
	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
)

// SaveRequest represents the input for saving the canvas
type SaveRequest struct {
	State json.RawMessage
}

// LoadResponse represents the output for loading the canvas. Found is false
// when nothing was saved yet.
type LoadResponse struct {
	State json.RawMessage
	Found bool
}

// Save replaces the snapshot. The state must be valid JSON.
func Save(ctx context.Context, database *db.DB, req SaveRequest) error {
	const op = "canvas.Save"

	if len(req.State) == 0 || !json.Valid(req.State) {
		return kerrors.Invalid(op, "canvas state must be a JSON document")
	}
	if err := tables.SaveCanvas(ctx, database, string(req.State)); err != nil {
		return kerrors.Storage(op, err)
	}
	return nil
}

// Load returns the snapshot, or Found=false when there is none.
func Load(ctx context.Context, database *db.DB) (*LoadResponse, error) {
	const op = "canvas.Load"

	state, err := tables.GetCanvas(ctx, database)
	if errors.Is(err, sql.ErrNoRows) {
		return &LoadResponse{}, nil
	}
	if err != nil {
		return nil, kerrors.Storage(op, err)
	}
	return &LoadResponse{State: json.RawMessage(state), Found: true}, nil
}

// Clear removes the snapshot.
func Clear(ctx context.Context, database *db.DB) error {
	if err := tables.ClearCanvas(ctx, database); err != nil {
		return kerrors.Storage("canvas.Clear", err)
	}
	return nil
}

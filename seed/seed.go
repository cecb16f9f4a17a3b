// Package seed fills a tenant with a reproducible demo inventory: shelves
// holding items, some with a box nested under them.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Voltaic314/ShelfDB/sdk"
	dbTypes "github.com/Voltaic314/ShelfDB/types/db"
)

// Options controls the generated inventory.
type Options struct {
	// Seed drives every random choice. Zero picks one from the clock.
	Seed     int64
	Shelves  int
	MinItems int
	MaxItems int
	// BoxProb is the chance that a shelf gets a nested box.
	BoxProb float64
}

// DefaultOptions returns a small inventory.
func DefaultOptions() Options {
	return Options{Shelves: 3, MinItems: 2, MaxItems: 6, BoxProb: 0.5}
}

// Result summarizes what was generated.
type Result struct {
	Seed   int64
	Tables []string
	Rows   int
}

type item struct {
	name     string
	category string
}

var catalog = []item{
	{"Coffee Cup", "kitchen"},
	{"Tea Pot", "kitchen"},
	{"Plate", "kitchen"},
	{"Novel", "reading"},
	{"Atlas", "reading"},
	{"Notebook", "stationery"},
	{"Pencil", "stationery"},
	{"Scissors", "tools"},
	{"Screwdriver", "tools"},
	{"Candle", "decor"},
	{"Picture Frame", "decor"},
	{"Batteries", "electronics"},
}

// Validate checks the ranges of o.
func (o Options) Validate() error {
	if o.Shelves < 0 {
		return fmt.Errorf("invalid shelf count: %d", o.Shelves)
	}
	if o.MinItems < 0 || o.MaxItems < o.MinItems {
		return fmt.Errorf("invalid item range: min=%d, max=%d", o.MinItems, o.MaxItems)
	}
	if o.BoxProb < 0.0 || o.BoxProb > 1.0 {
		return fmt.Errorf("invalid box probability: %f (must be 0.0-1.0)", o.BoxProb)
	}
	return nil
}

// Seed generates the inventory through c. The same seed on an empty tenant
// always produces the same tables and rows.
func Seed(ctx context.Context, c *sdk.ShelfDBClient, o Options) (*Result, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	res := &Result{Seed: seed}
	for i := 0; i < o.Shelves; i++ {
		shelf, err := c.AllocateObject(ctx, "shelf")
		if err != nil {
			return res, err
		}
		res.Tables = append(res.Tables, shelf)

		n, err := fill(ctx, c, rng, shelf, fmt.Sprintf("Shelf %d", i+1), "", o)
		res.Rows += n
		if err != nil {
			return res, err
		}

		if rng.Float64() >= o.BoxProb {
			continue
		}
		box, err := c.AllocateObject(ctx, "box")
		if err != nil {
			return res, err
		}
		res.Tables = append(res.Tables, box)

		n, err = fill(ctx, c, rng, box, fmt.Sprintf("Box on shelf %d", i+1), shelf, o)
		res.Rows += n
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

// fill inserts a random number of catalog items into table. With a parent,
// the rows are marked as nested under it.
func fill(ctx context.Context, c *sdk.ShelfDBClient, rng *rand.Rand, table, objectName, parent string, o Options) (int, error) {
	n := o.MinItems + rng.Intn(o.MaxItems-o.MinItems+1)
	for j := 0; j < n; j++ {
		it := catalog[rng.Intn(len(catalog))]
		content := dbTypes.NewContent{
			ObjectName: objectName,
			ItemName:   it.name,
			Category:   it.category,
			Count:      float64(1 + rng.Intn(5)),
		}
		if parent != "" {
			content.NestType = 1.0
			content.ParentTableName = parent
		}
		if _, err := c.InsertContent(ctx, table, content); err != nil {
			return j, fmt.Errorf("seed %s: %w", table, err)
		}
	}
	return n, nil
}

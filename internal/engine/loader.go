package engine

import (
	"time"

	"github.com/labstack/gommon/log"

	"supermarket/internal/models"
)

// Dataset is the immutable table shared by all requests.
type Dataset struct {
	Seed    int64
	Records []models.StoreRecord
	Store   *ColumnStore
}

// Load generates the table and builds its column store.
func Load(n int, seed int64) (*Dataset, error) {
	start := time.Now()
	log.Infof("Generating %d stores (seed %d)...", n, seed)

	records, err := Generate(n, seed)
	if err != nil {
		return nil, err
	}
	ds := &Dataset{
		Seed:    seed,
		Records: records,
		Store:   NewColumnStore(records),
	}

	log.Infof("Load Complete. Rows: %d. Time: %v", ds.Store.NumRows(), time.Since(start))
	return ds, nil
}

func (ds *Dataset) Release() {
	if ds != nil && ds.Store != nil {
		ds.Store.Release()
	}
}

package engine

import (
	"fmt"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"

	"supermarket/internal/models"
)

// Column names, shared by the Arrow schema, CSV export and the correlation matrix.
const (
	ColStoreID       = "store_id"
	ColMarket        = "market"
	ColCity          = "city"
	ColSquareMeters  = "square_m"
	ColDailyVisitors = "daily_visitors"
	ColAvgCheck      = "avg_check_uah"
	ColRating        = "rating"
	ColParking       = "parking_spaces"
	ColDailyRevenue  = "daily_revenue"
)

// NumericColumns lists the columns the correlation matrix is computed over, in schema order.
var NumericColumns = []string{
	ColStoreID,
	ColSquareMeters,
	ColDailyVisitors,
	ColAvgCheck,
	ColRating,
	ColParking,
	ColDailyRevenue,
}

var storeSchema = arrow.NewSchema([]arrow.Field{
	{Name: ColStoreID, Type: arrow.PrimitiveTypes.Int64},
	{Name: ColMarket, Type: arrow.BinaryTypes.String},
	{Name: ColCity, Type: arrow.BinaryTypes.String},
	{Name: ColSquareMeters, Type: arrow.PrimitiveTypes.Int64},
	{Name: ColDailyVisitors, Type: arrow.PrimitiveTypes.Int64},
	{Name: ColAvgCheck, Type: arrow.PrimitiveTypes.Float64},
	{Name: ColRating, Type: arrow.PrimitiveTypes.Float64},
	{Name: ColParking, Type: arrow.PrimitiveTypes.Int64},
	{Name: ColDailyRevenue, Type: arrow.PrimitiveTypes.Float64},
}, nil)

// ColumnStore holds the generated table in columnar (Arrow) form for statistics and export.
// It is read-only once built.
type ColumnStore struct {
	mem    memory.Allocator
	record arrow.Record
}

func NewColumnStore(records []models.StoreRecord) *ColumnStore {
	mem := memory.NewGoAllocator()
	b := array.NewRecordBuilder(mem, storeSchema)
	defer b.Release()

	ids := b.Field(0).(*array.Int64Builder)
	markets := b.Field(1).(*array.StringBuilder)
	cities := b.Field(2).(*array.StringBuilder)
	squares := b.Field(3).(*array.Int64Builder)
	visitors := b.Field(4).(*array.Int64Builder)
	checks := b.Field(5).(*array.Float64Builder)
	ratings := b.Field(6).(*array.Float64Builder)
	parking := b.Field(7).(*array.Int64Builder)
	revenues := b.Field(8).(*array.Float64Builder)

	b.Reserve(len(records))
	for _, r := range records {
		ids.Append(int64(r.StoreID))
		markets.Append(r.Market)
		cities.Append(r.City)
		squares.Append(int64(r.SquareMeters))
		visitors.Append(int64(r.DailyVisitors))
		checks.Append(r.AvgCheck)
		ratings.Append(r.Rating)
		parking.Append(int64(r.ParkingSpaces))
		revenues.Append(r.DailyRevenue)
	}

	return &ColumnStore{mem: mem, record: b.NewRecord()}
}

func (cs *ColumnStore) Release() {
	if cs.record != nil {
		cs.record.Release()
		cs.record = nil
	}
}

func (cs *ColumnStore) Schema() *arrow.Schema { return cs.record.Schema() }

func (cs *ColumnStore) NumRows() int { return int(cs.record.NumRows()) }

// Float64Column returns a numeric column widened to float64.
func (cs *ColumnStore) Float64Column(name string) ([]float64, error) {
	col, err := cs.column(name)
	if err != nil {
		return nil, err
	}
	switch arr := col.(type) {
	case *array.Float64:
		out := make([]float64, arr.Len())
		copy(out, arr.Float64Values())
		return out, nil
	case *array.Int64:
		out := make([]float64, arr.Len())
		for i, v := range arr.Int64Values() {
			out[i] = float64(v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("column %q is %s, not numeric: %w", name, col.DataType(), ErrInvalidArgument)
	}
}

// StringColumn returns a string column.
func (cs *ColumnStore) StringColumn(name string) ([]string, error) {
	col, err := cs.column(name)
	if err != nil {
		return nil, err
	}
	arr, ok := col.(*array.String)
	if !ok {
		return nil, fmt.Errorf("column %q is %s, not string: %w", name, col.DataType(), ErrInvalidArgument)
	}
	out := make([]string, arr.Len())
	for i := range out {
		out[i] = arr.Value(i)
	}
	return out, nil
}

func (cs *ColumnStore) column(name string) (arrow.Array, error) {
	idx := cs.record.Schema().FieldIndices(name)
	if len(idx) == 0 {
		return nil, fmt.Errorf("unknown column %q: %w", name, ErrInvalidArgument)
	}
	return cs.record.Column(idx[0]), nil
}

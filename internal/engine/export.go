package engine

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v18/arrow/csv"
	"github.com/apache/arrow/go/v18/arrow/ipc"
)

// WriteCSV writes the table as CSV with a header row.
func (cs *ColumnStore) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w, cs.Schema(), csv.WithHeader(true))
	if err := cw.Write(cs.record); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	if err := cw.Flush(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return cw.Error()
}

// WriteIPC writes the table as an Arrow IPC stream.
func (cs *ColumnStore) WriteIPC(w io.Writer) error {
	iw := ipc.NewWriter(w, ipc.WithSchema(cs.Schema()), ipc.WithAllocator(cs.mem))
	if err := iw.Write(cs.record); err != nil {
		iw.Close()
		return fmt.Errorf("write ipc: %w", err)
	}
	if err := iw.Close(); err != nil {
		return fmt.Errorf("close ipc: %w", err)
	}
	return nil
}

// Package trace records an audit trail of the gradient operators a
// Backward Builder emits, as a columnar parquet log a review tool can scan
// without replaying construction.
package trace

import (
	"io"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Record is one traced gradient leaf.
type Record struct {
	Seq         int64  `parquet:"seq"`
	Kind        string `parquet:"kind"`
	ForwardKind string `parquet:"forward_kind"`
	Inputs      string `parquet:"inputs"`
	Outputs     string `parquet:"outputs"`
}

// Writer implements backward.Tracer by appending one Record per call to a
// parquet file. It is not safe for concurrent use; a Backward invocation
// is single-threaded and so is every Tracer it drives.
type Writer struct {
	w   *parquet.GenericWriter[Record]
	seq int64
}

// NewWriter wraps dst as a parquet-backed Writer. The caller owns dst and
// must Close the Writer (which flushes, but does not close dst) before
// reading the file back.
func NewWriter(dst io.Writer) *Writer {
	return &Writer{w: parquet.NewGenericWriter[Record](dst)}
}

// Record implements backward.Tracer.
func (w *Writer) Record(kind, forwardKind string, inputs, outputs []string) error {
	rec := Record{
		Seq:         w.seq,
		Kind:        kind,
		ForwardKind: forwardKind,
		Inputs:      strings.Join(inputs, ","),
		Outputs:     strings.Join(outputs, ","),
	}
	w.seq++

	_, err := w.w.Write([]Record{rec})

	return err
}

// Close flushes and finalizes the parquet footer.
func (w *Writer) Close() error {
	return w.w.Close()
}

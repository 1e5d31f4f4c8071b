// Package report implements the supply/buy statistics pipeline: it reads a
// delimited transaction log, accumulates totals for supply and buy
// operations, and renders a fixed three-line report which is both returned
// to the caller and written to an object store.
package report

import (
	"fmt"
	"strings"
)

// Operation tags and the field delimiter used in both the source log and
// the rendered report.
const (
	OpSupply  = "supply"
	OpBuy     = "buy"
	OpResult  = "result"
	Delimiter = ","
)

// Totals holds the running sums accumulated from valid records during a
// single aggregation pass. Values are signed; they are never mutated after
// the pass completes.
type Totals struct {
	Supply int
	Buy    int
}

// Report is the immutable three-line statistics artifact. Result is always
// Supply - Buy and may be negative.
type Report struct {
	Supply int
	Buy    int
	Result int
}

// NewReport computes the derived result from the given totals.
func NewReport(t Totals) Report {
	return Report{
		Supply: t.Supply,
		Buy:    t.Buy,
		Result: t.Supply - t.Buy,
	}
}

// Lines returns the report as its three ordered entries.
func (r Report) Lines() []string {
	return []string{
		fmt.Sprintf("%s%s%d", OpSupply, Delimiter, r.Supply),
		fmt.Sprintf("%s%s%d", OpBuy, Delimiter, r.Buy),
		fmt.Sprintf("%s%s%d", OpResult, Delimiter, r.Result),
	}
}

// String renders the report exactly as it is written to the destination:
// three lines joined with "\n" and no trailing newline.
func (r Report) String() string {
	return strings.Join(r.Lines(), "\n")
}

package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadTotals consumes the transaction log line by line and accumulates the
// supply and buy totals. Each valid record has the form "<tag>,<amount>"
// with an integer amount. Records whose tag is neither "supply" nor "buy"
// contribute to neither total and are never an error.
//
// In lenient mode (strict == false) lines with the wrong field count or a
// non-numeric amount are skipped silently. In strict mode either condition
// fails the whole read.
func ReadTotals(r io.Reader, strict bool) (Totals, error) {
	var totals Totals

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		fields := strings.Split(scanner.Text(), Delimiter)
		if len(fields) != 2 {
			if strict {
				return Totals{}, fmt.Errorf("line %d: expected 2 fields, got %d", lineno, len(fields))
			}
			continue
		}

		amount, err := strconv.Atoi(fields[1])
		if err != nil {
			if strict {
				return Totals{}, fmt.Errorf("line %d: invalid amount %q: %w", lineno, fields[1], err)
			}
			continue
		}

		switch fields[0] {
		case OpSupply:
			totals.Supply += amount
		case OpBuy:
			totals.Buy += amount
		}
	}
	if err := scanner.Err(); err != nil {
		return Totals{}, err
	}

	return totals, nil
}

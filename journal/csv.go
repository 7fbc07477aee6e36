package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

var csvHeader = []string{"date", "profit", "trades", "wins", "losses"}

// WriteCSV writes the journal in date order.
func WriteCSV(w io.Writer, st TrackerState) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, date := range st.SortedDates() {
		e := st[date]
		err := cw.Write([]string{
			date,
			f(e.Profit),
			strconv.Itoa(e.Trades),
			strconv.Itoa(e.Wins),
			strconv.Itoa(e.Losses()),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the journal to path.
func ExportCSV(path string, st TrackerState) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(fh, st); err != nil {
		_ = fh.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return fh.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}

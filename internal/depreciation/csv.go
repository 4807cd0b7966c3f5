package depreciation

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

// WriteScheduleCSV writes the schedule to path with amounts in cents.
func WriteScheduleCSV(path string, s *Schedule) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return EncodeScheduleCSV(f, s)
}

func EncodeScheduleCSV(out io.Writer, s *Schedule) error {
	w := csv.NewWriter(out)

	header := []string{
		"index",
		"method",
		"depreciation_expense",
		"accumulated_depreciation",
		"book_value",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, p := range s.Periods {
		row := []string{
			strconv.Itoa(p.Index),
			s.Method,
			fmtAmount(p.DepreciationExpense),
			fmtAmount(p.AccumulatedDepreciation),
			fmtAmount(p.BookValue),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// RoundCents rounds an amount half away from zero to two places.
func RoundCents(x float64) float64 {
	v, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return v
}

func fmtAmount(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(2)
}

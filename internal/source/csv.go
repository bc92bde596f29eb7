package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/theirongolddev/saastrack/internal/model"
)

// HistoryHeader is the header row written to and accepted from history CSVs.
var HistoryHeader = []string{"month", "users", "revenue"}

// ReadHistoryCSV parses month,users,revenue rows. A leading header row is
// skipped. progress, if non-nil, is called after each data row with the
// number of rows read so far. Every malformed row is reported with its line
// number; no points are returned unless all rows parse.
func ReadHistoryCSV(r io.Reader, progress func(rows int)) ([]model.MonthPoint, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var (
		points []model.MonthPoint
		errs   []error
		first  = true
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading history csv: %w", err)
		}
		line, _ := cr.FieldPos(0)

		if first {
			first = false
			if len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "month") {
				continue
			}
		}

		p, err := parseRow(rec)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		points = append(points, p)
		if progress != nil {
			progress(len(points))
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid history csv: %w", errors.Join(errs...))
	}
	return points, nil
}

func parseRow(rec []string) (model.MonthPoint, error) {
	var p model.MonthPoint
	if len(rec) != 3 {
		return p, fmt.Errorf("want 3 fields (month,users,revenue), got %d", len(rec))
	}

	p.Month = strings.TrimSpace(rec[0])
	if p.Month == "" {
		return p, errors.New("month is empty")
	}

	users, err := strconv.Atoi(strings.TrimSpace(rec[1]))
	if err != nil || users < 0 {
		return p, fmt.Errorf("invalid users %q", rec[1])
	}
	p.Users = users

	rev := strings.TrimPrefix(strings.TrimSpace(rec[2]), "$")
	revenue, err := strconv.ParseFloat(rev, 64)
	if err != nil || revenue < 0 {
		return p, fmt.Errorf("invalid revenue %q", rec[2])
	}
	p.Revenue = revenue
	return p, nil
}

// WriteHistoryCSV writes the recorded months of history with a header row.
// Projected entries are skipped.
func WriteHistoryCSV(w io.Writer, history []model.MonthPoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(HistoryHeader); err != nil {
		return err
	}
	for _, p := range history {
		if p.Projected {
			continue
		}
		row := []string{
			p.Month,
			strconv.Itoa(p.Users),
			strconv.FormatFloat(p.Revenue, 'f', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

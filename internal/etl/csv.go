package etl

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/copperfin/runway/internal/model"
)

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
}

// ImportCSV parses a bank or processor export into cash events. The file
// must carry a header row naming at least date, amount, and description
// columns (order and extra columns don't matter). Unparseable rows are
// logged and skipped rather than failing the whole import.
func ImportCSV(path string, rules Rules, log *logrus.Logger) ([]model.CashEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var events []model.CashEvent
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			log.WithError(err).WithField("line", line).Warn("skipping malformed csv row")
			continue
		}
		if len(record) <= cols.date || len(record) <= cols.amount || len(record) <= cols.description {
			log.WithField("line", line).Warn("skipping short csv row")
			continue
		}

		date, err := parseDate(record[cols.date])
		if err != nil {
			log.WithField("line", line).WithField("value", record[cols.date]).Warn("skipping row with bad date")
			continue
		}
		amount, err := parseAmount(record[cols.amount])
		if err != nil {
			log.WithField("line", line).WithField("value", record[cols.amount]).Warn("skipping row with bad amount")
			continue
		}

		description := strings.TrimSpace(record[cols.description])
		category, lagDays := rules.Categorize(description)
		if lagDays > 0 {
			date = date.AddDate(0, 0, lagDays)
		}

		events = append(events, model.CashEvent{
			Date:        date,
			Amount:      amount,
			Category:    category,
			Description: description,
		})
	}

	log.WithFields(logrus.Fields{
		"file":     path,
		"imported": len(events),
	}).Info("csv import complete")
	return events, nil
}

type columnIndex struct {
	date, amount, description int
}

func mapColumns(header []string) (columnIndex, error) {
	idx := columnIndex{date: -1, amount: -1, description: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date", "event_date", "posted date", "transaction date":
			idx.date = i
		case "amount", "net", "net_amount":
			idx.amount = i
		case "description", "memo", "payee", "details":
			idx.description = i
		}
	}
	if idx.date < 0 || idx.amount < 0 || idx.description < 0 {
		return idx, fmt.Errorf("csv header missing date, amount, or description column: %v", header)
	}
	return idx, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseAmount handles currency symbols, thousands separators, and
// parenthesized negatives, rounding to cents.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	if negative {
		d = d.Neg()
	}
	return d.Round(2).InexactFloat64(), nil
}

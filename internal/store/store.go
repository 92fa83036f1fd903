// Package store provides the SQLite-backed cash warehouse: actual and
// forecast cash events, recurring obligations, and loan payment schedules.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/copperfin/runway/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

const dateLayout = "2006-01-02"

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveEvents upserts cash events, assigning IDs to rows that lack one.
func (s *Store) SaveEvents(events []model.CashEvent) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, e := range events {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		isForecast := 0
		if e.IsForecast {
			isForecast = 1
		}
		_, err = tx.Exec(`INSERT OR REPLACE INTO cash_events
			(id, event_date, amount, category, description, is_forecast, scenario_id)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.Date.Format(dateLayout), e.Amount, e.Category, e.Description, isForecast, e.ScenarioID,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ActualsSince returns non-forecast events dated on or after since,
// ordered by date.
func (s *Store) ActualsSince(since time.Time) ([]model.CashEvent, error) {
	rows, err := s.db.Query(`SELECT id, event_date, amount, category, description, is_forecast, scenario_id
		FROM cash_events
		WHERE is_forecast = 0 AND event_date >= ?
		ORDER BY event_date`, since.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

// ForecastEvents returns the stored forecast rows for one scenario.
func (s *Store) ForecastEvents(scenarioID string) ([]model.CashEvent, error) {
	rows, err := s.db.Query(`SELECT id, event_date, amount, category, description, is_forecast, scenario_id
		FROM cash_events
		WHERE is_forecast = 1 AND scenario_id = ?
		ORDER BY event_date`, scenarioID)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]model.CashEvent, error) {
	defer func() { _ = rows.Close() }()

	var events []model.CashEvent
	for rows.Next() {
		var e model.CashEvent
		var dateStr string
		var description, scenarioID sql.NullString
		var isForecast int
		if err := rows.Scan(&e.ID, &dateStr, &e.Amount, &e.Category, &description, &isForecast, &scenarioID); err != nil {
			return nil, err
		}
		e.Date, _ = time.Parse(dateLayout, dateStr)
		e.Description = description.String
		e.ScenarioID = scenarioID.String
		e.IsForecast = isForecast != 0
		events = append(events, e)
	}
	return events, rows.Err()
}

// ReplaceForecast atomically swaps the stored forecast for one scenario:
// old rows are deleted and the new rows inserted in a single transaction.
func (s *Store) ReplaceForecast(scenarioID string, events []model.CashEvent) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM cash_events WHERE is_forecast = 1 AND scenario_id = ?", scenarioID); err != nil {
		return err
	}
	for _, e := range events {
		id := e.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, err = tx.Exec(`INSERT INTO cash_events
			(id, event_date, amount, category, description, is_forecast, scenario_id)
			VALUES (?, ?, ?, ?, ?, 1, ?)`,
			id, e.Date.Format(dateLayout), e.Amount, e.Category, e.Description, scenarioID,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SaveRecurring upserts recurring obligations keyed by name.
func (s *Store) SaveRecurring(items []model.RecurringObligation) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, r := range items {
		active := 0
		if r.Active {
			active = 1
		}
		_, err = tx.Exec(`INSERT OR REPLACE INTO recurring_obligations
			(name, amount, category, frequency, day_of_month, active)
			VALUES (?, ?, ?, ?, ?, ?)`,
			r.Name, r.Amount, r.Category, string(r.Frequency), r.DayOfMonth, active,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Recurring returns all obligations; set activeOnly to skip disabled ones.
func (s *Store) Recurring(activeOnly bool) ([]model.RecurringObligation, error) {
	query := `SELECT name, amount, category, frequency, day_of_month, active
		FROM recurring_obligations ORDER BY name`
	if activeOnly {
		query = `SELECT name, amount, category, frequency, day_of_month, active
			FROM recurring_obligations WHERE active = 1 ORDER BY name`
	}
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []model.RecurringObligation
	for rows.Next() {
		var r model.RecurringObligation
		var freq string
		var active int
		if err := rows.Scan(&r.Name, &r.Amount, &r.Category, &freq, &r.DayOfMonth, &active); err != nil {
			return nil, err
		}
		r.Frequency = model.Frequency(freq)
		r.Active = active != 0
		items = append(items, r)
	}
	return items, rows.Err()
}

// ReplaceLoanSchedule swaps the full payment schedule for one loan.
func (s *Store) ReplaceLoanSchedule(loanID string, schedule []model.DebtPaymentRow) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM debt_schedule WHERE loan_id = ?", loanID); err != nil {
		return err
	}
	for _, row := range schedule {
		isPaid := 0
		if row.IsPaid {
			isPaid = 1
		}
		_, err = tx.Exec(`INSERT INTO debt_schedule
			(schedule_id, loan_id, loan_name, lender, payment_date, payment_number,
			 payment_amount, principal_amount, interest_amount, fees_amount,
			 beginning_principal, ending_principal, interest_rate, payment_type, is_paid)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			row.ScheduleID, row.LoanID, row.LoanName, row.Lender,
			row.PaymentDate.Format(dateLayout), row.PaymentNumber,
			row.PaymentAmount, row.PrincipalAmount, row.InterestAmount, row.FeesAmount,
			row.BeginningPrincipal, row.EndingPrincipal, row.InterestRate,
			string(row.PaymentType), isPaid,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// UnpaidDebtRows returns every unpaid schedule row, ordered by date.
func (s *Store) UnpaidDebtRows() ([]model.DebtPaymentRow, error) {
	return s.debtRows("WHERE is_paid = 0")
}

// AllDebtRows returns the full schedule across all loans.
func (s *Store) AllDebtRows() ([]model.DebtPaymentRow, error) {
	return s.debtRows("")
}

func (s *Store) debtRows(where string) ([]model.DebtPaymentRow, error) {
	rows, err := s.db.Query(`SELECT schedule_id, loan_id, loan_name, lender, payment_date,
		payment_number, payment_amount, principal_amount, interest_amount, fees_amount,
		beginning_principal, ending_principal, interest_rate, payment_type, is_paid
		FROM debt_schedule ` + where + ` ORDER BY payment_date, loan_id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.DebtPaymentRow
	for rows.Next() {
		var row model.DebtPaymentRow
		var dateStr, payType string
		var loanName, lender sql.NullString
		var isPaid int
		err := rows.Scan(&row.ScheduleID, &row.LoanID, &loanName, &lender, &dateStr,
			&row.PaymentNumber, &row.PaymentAmount, &row.PrincipalAmount, &row.InterestAmount,
			&row.FeesAmount, &row.BeginningPrincipal, &row.EndingPrincipal, &row.InterestRate,
			&payType, &isPaid)
		if err != nil {
			return nil, err
		}
		row.LoanName = loanName.String
		row.Lender = lender.String
		row.PaymentDate, _ = time.Parse(dateLayout, dateStr)
		row.PaymentType = model.PaymentType(payType)
		row.IsPaid = isPaid != 0
		out = append(out, row)
	}
	return out, rows.Err()
}

// LoanIDs returns the distinct loan IDs present in the schedule.
func (s *Store) LoanIDs() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT loan_id FROM debt_schedule ORDER BY loan_id")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// EventCount returns the number of stored cash events.
func (s *Store) EventCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM cash_events").Scan(&count)
	return count, err
}

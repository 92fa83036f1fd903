package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS cash_events (
    id                   TEXT PRIMARY KEY,
    event_date           TEXT NOT NULL,
    amount               REAL NOT NULL,
    category             TEXT NOT NULL,
    description          TEXT,
    is_forecast          INTEGER NOT NULL DEFAULT 0,
    scenario_id          TEXT
);

CREATE TABLE IF NOT EXISTS recurring_obligations (
    name                 TEXT PRIMARY KEY,
    amount               REAL NOT NULL,
    category             TEXT NOT NULL,
    frequency            TEXT NOT NULL,
    day_of_month         INTEGER NOT NULL,
    active               INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS debt_schedule (
    schedule_id          TEXT PRIMARY KEY,
    loan_id              TEXT NOT NULL,
    loan_name            TEXT,
    lender               TEXT,
    payment_date         TEXT NOT NULL,
    payment_number       INTEGER NOT NULL,
    payment_amount       REAL NOT NULL,
    principal_amount     REAL NOT NULL,
    interest_amount      REAL NOT NULL,
    fees_amount          REAL NOT NULL DEFAULT 0,
    beginning_principal  REAL NOT NULL,
    ending_principal     REAL NOT NULL,
    interest_rate        REAL NOT NULL,
    payment_type         TEXT NOT NULL,
    is_paid              INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_events_date ON cash_events(event_date);
CREATE INDEX IF NOT EXISTS idx_events_forecast ON cash_events(is_forecast, scenario_id);
CREATE INDEX IF NOT EXISTS idx_debt_loan ON debt_schedule(loan_id);
CREATE INDEX IF NOT EXISTS idx_debt_date ON debt_schedule(payment_date);
`

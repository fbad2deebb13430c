package storage

const schemaV1 = `
CREATE TABLE IF NOT EXISTS runs (
    run_id          INTEGER PRIMARY KEY AUTOINCREMENT,
    run_uuid        TEXT UNIQUE NOT NULL,
    account_id      TEXT NOT NULL,
    run_profile     TEXT,
    run_timestamp   DATETIME DEFAULT CURRENT_TIMESTAMP,
    run_duration    INTEGER,
    total_tasks     INTEGER DEFAULT 0,
    found_count     INTEGER DEFAULT 0,
    not_found_count INTEGER DEFAULT 0,
    denied_count    INTEGER DEFAULT 0,
    error_count     INTEGER DEFAULT 0,
    item_count      INTEGER DEFAULT 0,
    cli_version     TEXT,
    run_flags       TEXT,
    created_at      DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_account_timestamp
    ON runs(account_id, run_timestamp);
CREATE INDEX IF NOT EXISTS idx_runs_timestamp
    ON runs(run_timestamp DESC);

CREATE TABLE IF NOT EXISTS results (
    result_id       INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id          INTEGER NOT NULL,
    service         TEXT NOT NULL,
    region          TEXT NOT NULL,
    operation       TEXT NOT NULL,
    status          TEXT NOT NULL,
    error_code      TEXT,
    diagnostic      TEXT,
    item_count      INTEGER DEFAULT 0,
    attempts        INTEGER DEFAULT 0,
    duration_ms     INTEGER DEFAULT 0,
    payload         TEXT,
    created_at      DATETIME DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(run_id, service, region, operation),
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_results_run ON results(run_id);
CREATE INDEX IF NOT EXISTS idx_results_status ON results(status);
CREATE INDEX IF NOT EXISTS idx_results_service ON results(service, region);
`

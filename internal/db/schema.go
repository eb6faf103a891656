package db

// SchemaSQL is the complete schema for fresh installs.
//
// This is the single source of truth for the database layout. Tests build
// their in-memory databases from GetSchemaSQL() rather than hardcoding
// CREATE TABLE statements, so repository code referencing a column that
// does not exist here fails immediately with "no such column".
//
// When changing the schema: add a migration in migrations.go and update
// SchemaSQL to match.
const SchemaSQL = `
-- Wines (bottle records; zone_id set by the external classifier or by
-- reconfiguration actions)
CREATE TABLE IF NOT EXISTS wines (
	id TEXT PRIMARY KEY,
	cellar_id TEXT NOT NULL,
	name TEXT NOT NULL,
	color TEXT NOT NULL CHECK(color IN ('red', 'white', 'rose', 'sparkling')),
	grape TEXT,
	country TEXT,
	style TEXT,
	vintage INTEGER,
	zone_id TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_wines_cellar ON wines(cellar_id);
CREATE INDEX IF NOT EXISTS idx_wines_zone ON wines(cellar_id, zone_id);

-- Physical slots (cellar grid R1C1..R19C9 plus fridge F1..F9)
CREATE TABLE IF NOT EXISTS slots (
	cellar_id TEXT NOT NULL,
	location_code TEXT NOT NULL,
	row_num INTEGER NOT NULL,
	col_num INTEGER NOT NULL,
	wine_id TEXT,
	UNIQUE(cellar_id, location_code),
	FOREIGN KEY (wine_id) REFERENCES wines(id)
);

CREATE INDEX IF NOT EXISTS idx_slots_wine ON slots(cellar_id, wine_id);

-- Zone allocations (zone -> ordered row list; rows stored as JSON text)
CREATE TABLE IF NOT EXISTS zone_allocations (
	cellar_id TEXT NOT NULL,
	zone_id TEXT NOT NULL,
	rows TEXT NOT NULL DEFAULT '[]',
	wine_count INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(cellar_id, zone_id)
);

-- Short-lived stored plans awaiting apply (15-minute validity window)
CREATE TABLE IF NOT EXISTS stored_plans (
	id TEXT PRIMARY KEY,
	cellar_id TEXT NOT NULL,
	plan_json TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_stored_plans_cellar ON stored_plans(cellar_id);

-- Reconfiguration history (never deleted, only marked undone)
CREATE TABLE IF NOT EXISTS reconfigurations (
	id TEXT PRIMARY KEY,
	cellar_id TEXT NOT NULL,
	plan_json TEXT NOT NULL,
	skipped_json TEXT NOT NULL DEFAULT '[]',
	auto_skipped_json TEXT NOT NULL DEFAULT '[]',
	snapshot_json TEXT NOT NULL,
	zones_changed INTEGER NOT NULL DEFAULT 0,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	undone_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_reconfigurations_cellar ON reconfigurations(cellar_id);

-- Per-cellar bottle-level change counters for the threshold gate
CREATE TABLE IF NOT EXISTS change_counters (
	cellar_id TEXT PRIMARY KEY,
	change_count INTEGER NOT NULL DEFAULT 0,
	last_reconfig_at DATETIME,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Zone pins (planner constraints such as never_merge)
CREATE TABLE IF NOT EXISTS zone_pins (
	id TEXT PRIMARY KEY,
	cellar_id TEXT NOT NULL,
	zone_id TEXT NOT NULL,
	pin_type TEXT NOT NULL CHECK(pin_type IN ('never_merge', 'never_retire')),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(cellar_id, zone_id, pin_type)
);

-- Per-cellar settings overrides
CREATE TABLE IF NOT EXISTS settings (
	cellar_id TEXT NOT NULL,
	key TEXT NOT NULL,
	value TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(cellar_id, key)
);

-- Review telemetry (persisted for every review attempt)
CREATE TABLE IF NOT EXISTS review_telemetry (
	id TEXT PRIMARY KEY,
	cellar_id TEXT NOT NULL,
	plan_id TEXT NOT NULL,
	verdict TEXT NOT NULL,
	escalated INTEGER NOT NULL DEFAULT 0,
	fallback_used INTEGER NOT NULL DEFAULT 0,
	latency_ms INTEGER NOT NULL DEFAULT 0,
	stability_score REAL NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Activity log (warnings: filtered actions, GC failures, skipped actions)
CREATE TABLE IF NOT EXISTS activity_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	cellar_id TEXT,
	event TEXT NOT NULL,
	detail TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// InitSchema creates the database schema and applies pending migrations.
func InitSchema() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	var tableCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		// Fresh install: create the modern schema and mark all migrations
		// applied so they never run against it.
		if _, err := db.Exec(SchemaSQL); err != nil {
			return err
		}
		if _, err := db.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`); err != nil {
			return err
		}
		for _, m := range migrations {
			if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
				return err
			}
		}
		return nil
	}

	return RunMigrations()
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
func GetSchemaSQL() string {
	return SchemaSQL
}

// store/schema.go
package store

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	date DATETIME NOT NULL,
	pair TEXT NOT NULL,
	type TEXT NOT NULL,
	strategy TEXT NOT NULL,
	entry_price REAL NOT NULL,
	exit_price REAL,
	stop_loss REAL NOT NULL,
	take_profit REAL NOT NULL,
	lot_size REAL NOT NULL,
	status TEXT NOT NULL,
	outcome TEXT NOT NULL,
	pnl REAL NOT NULL DEFAULT 0,
	pips REAL NOT NULL DEFAULT 0,
	notes TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '[]',
	linked_goals TEXT NOT NULL DEFAULT '[]',
	screenshots TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date);

CREATE TABLE IF NOT EXISTS goals (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL,
	timeframe TEXT NOT NULL,
	target REAL NOT NULL,
	current REAL NOT NULL DEFAULT 0,
	start_date DATETIME NOT NULL,
	end_date DATETIME NOT NULL,
	status TEXT NOT NULL,
	progress REAL NOT NULL DEFAULT 0,
	trend TEXT NOT NULL DEFAULT 'neutral',
	days_remaining INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

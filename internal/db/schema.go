package db

const schema = `
CREATE TABLE IF NOT EXISTS settles (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session TEXT NOT NULL,
    snap_index INTEGER NOT NULL,
    spec TEXT NOT NULL,
    offset_y REAL NOT NULL,
    screen_height REAL NOT NULL,
    dismissed INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_settles_created ON settles(created_at);
CREATE INDEX IF NOT EXISTS idx_settles_session ON settles(session);
`

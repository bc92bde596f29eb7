package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshot (
    id                   INTEGER PRIMARY KEY CHECK (id = 1),
    revision             TEXT NOT NULL,
    name                 TEXT NOT NULL,
    current_users        INTEGER NOT NULL,
    goal_users           INTEGER NOT NULL,
    monthly_revenue      REAL NOT NULL,
    revenue_goal         REAL NOT NULL,
    churn_rate           REAL NOT NULL,
    growth_rate          REAL NOT NULL,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS history (
    position             INTEGER PRIMARY KEY,
    month                TEXT NOT NULL,
    users                INTEGER NOT NULL,
    revenue              REAL NOT NULL
);
`

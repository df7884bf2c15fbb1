package repository

const schema = `
CREATE TABLE IF NOT EXISTS creators (
    id   TEXT PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS platforms (
    id         TEXT PRIMARY KEY,
    creator_id TEXT NOT NULL REFERENCES creators(id) ON DELETE CASCADE,
    type       TEXT NOT NULL,
    handle     TEXT NOT NULL DEFAULT '',
    UNIQUE(type, handle)
);

CREATE INDEX IF NOT EXISTS idx_platforms_creator ON platforms(creator_id);

CREATE TABLE IF NOT EXISTS metrics (
    id                    TEXT PRIMARY KEY,
    creator_id            TEXT NOT NULL REFERENCES creators(id) ON DELETE CASCADE,
    platform_id           TEXT NOT NULL REFERENCES platforms(id) ON DELETE CASCADE,
    date                  DATETIME NOT NULL,
    audience_size         INTEGER NOT NULL DEFAULT 0,
    engagement_rate_pct   REAL NOT NULL DEFAULT 0,
    estimated_revenue_usd REAL NOT NULL DEFAULT 0,
    avg_view_duration_sec INTEGER NOT NULL DEFAULT 0,
    has_view_duration     BOOLEAN NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_metrics_creator_date ON metrics(creator_id, date);
CREATE INDEX IF NOT EXISTS idx_metrics_platform ON metrics(platform_id);

CREATE TABLE IF NOT EXISTS credit_scores (
    id            TEXT PRIMARY KEY,
    creator_id    TEXT NOT NULL REFERENCES creators(id) ON DELETE CASCADE,
    overall_score INTEGER NOT NULL,
    month         TEXT NOT NULL,
    timestamp     DATETIME NOT NULL,
    UNIQUE(creator_id, month)
);

CREATE INDEX IF NOT EXISTS idx_credit_scores_creator ON credit_scores(creator_id, timestamp);

CREATE TABLE IF NOT EXISTS platform_scores (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    credit_score_id TEXT NOT NULL REFERENCES credit_scores(id) ON DELETE CASCADE,
    platform_id     TEXT NOT NULL,
    platform_type   TEXT NOT NULL,
    score           INTEGER NOT NULL,
    factors         TEXT NOT NULL DEFAULT '[]'
);

CREATE INDEX IF NOT EXISTS idx_platform_scores_parent ON platform_scores(credit_score_id);
`

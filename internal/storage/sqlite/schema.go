package sqlite

// dropSchemaSQL removes the directory tables; the FTS table goes first since it reads from companies
const dropSchemaSQL = `
DROP TABLE IF EXISTS companies_fts;
DROP TABLE IF EXISTS companies;
`

// createSchemaSQL creates the company directory and its external-content FTS5 index
const createSchemaSQL = `
CREATE TABLE companies (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	corp_code TEXT UNIQUE NOT NULL,
	corp_name TEXT NOT NULL,
	corp_eng_name TEXT,
	stock_code TEXT,
	modify_date TEXT
);

CREATE INDEX idx_corp_name ON companies(corp_name);
CREATE INDEX idx_corp_code ON companies(corp_code);
CREATE INDEX idx_stock_code ON companies(stock_code);

CREATE VIRTUAL TABLE companies_fts USING fts5(
	corp_code,
	corp_name,
	corp_eng_name,
	stock_code,
	content='companies',
	content_rowid='id'
);
`

// rebuildFTSSQL repopulates the external-content index from companies
const rebuildFTSSQL = `INSERT INTO companies_fts(companies_fts) VALUES('rebuild')`

// companyColumns is the select list shared by every directory query
const companyColumns = `c.corp_code, c.corp_name, COALESCE(c.corp_eng_name, ''), COALESCE(c.stock_code, ''), COALESCE(c.modify_date, '')`

package fakesendmail

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

const (
	sqliteSaveQuery          string = "insert into saves (id, invocation_id, occurred_at, category, severity, path, detail) values ($1, $2, $3, $4, $5, $6, $7)"
	sqliteDeliverQuery       string = "insert into deliveries (id, invocation_id, occurred_at, mail_from, mail_to, code, elapse) values ($1, $2, $3, $4, $5, $6, $7)"
	sqliteSaveCreateTable    string = `
	create table if not exists saves (
    id text primary key,
    invocation_id text,
    category text,
    severity text,
    path text,
    detail text,
    occurred_at datetime default CURRENT_TIMESTAMP
	)`
	sqliteDeliverCreateTable string = `
	create table if not exists deliveries (
    id text primary key,
    invocation_id text,
    mail_from text,
    mail_to text,
    code integer,
    occurred_at datetime default CURRENT_TIMESTAMP,
    elapse integer
	)`
)

type HookSqlite struct {
	pool *sql.DB // Database connection pool.
}

func (h *HookSqlite) Name() string {
	return "sqlite"
}

func (h *HookSqlite) conn() (*sql.DB, error) {
	if h.pool != nil {
		return h.pool, nil
	}

	dsn := os.Getenv("DSN")
	if len(dsn) == 0 {
		return nil, fmt.Errorf("missing dsn for sqlite, please set `DSN`")
	}

	var err error
	h.pool, err = sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open error: %s(%#v)\n", err.Error(), err)
	}

	return h.pool, nil
}

func (h *HookSqlite) AfterInit() {
	conn, err := h.conn()
	if err != nil {
		fmt.Printf("[%s] %s\n", h.Name(), err)
		return
	}

	_, err = conn.Exec(sqliteSaveCreateTable)
	if err != nil {
		fmt.Printf("[%s] db exec error: %s\n", h.Name(), err)
	}

	_, err = conn.Exec(sqliteDeliverCreateTable)
	if err != nil {
		fmt.Printf("[%s] db exec error: %s\n", h.Name(), err)
	}
}

func (h *HookSqlite) AfterSave(d *AfterSaveData) {
	conn, err := h.conn()
	if err != nil {
		fmt.Printf("[%s] %s\n", h.Name(), err)
		return
	}

	_, err = conn.Exec(
		sqliteSaveQuery,
		GenID().String(),
		d.InvocationID,
		d.OccurredAt.Format(TimeFormat),
		string(d.Category),
		string(d.Category.Severity()),
		d.Path,
		d.Detail,
	)
	if err != nil {
		fmt.Printf("[%s] db exec error: %s\n", h.Name(), err)
	}
}

func (h *HookSqlite) AfterDeliver(d *AfterDeliverData) {
	conn, err := h.conn()
	if err != nil {
		fmt.Printf("[%s] %s\n", h.Name(), err)
		return
	}

	_, err = conn.Exec(
		sqliteDeliverQuery,
		GenID().String(),
		d.InvocationID,
		d.OccurredAt.Format(TimeFormat),
		d.MailFrom,
		d.MailTo,
		d.Code,
		d.Elapse,
	)
	if err != nil {
		fmt.Printf("[%s] db exec error: %s\n", h.Name(), err)
	}
}

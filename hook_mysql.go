package fakesendmail

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/go-sql-driver/mysql"
)

const (
	mysqlSaveQuery    string = "insert into saves (id, invocation_id, occurred_at, category, severity, path, detail) values (?, ?, ?, ?, ?, ?, ?)"
	mysqlDeliverQuery string = "insert into deliveries (id, invocation_id, occurred_at, mail_from, mail_to, code, elapse) values (?, ?, ?, ?, ?, ?, ?)"
)

type HookMysql struct {
	pool *sql.DB // Database connection pool.
}

func (h *HookMysql) Name() string {
	return "mysql"
}

func (h *HookMysql) conn() (*sql.DB, error) {
	if h.pool != nil {
		return h.pool, nil
	}

	dsn := os.Getenv("DSN")
	if len(dsn) == 0 {
		return nil, fmt.Errorf("missing dsn for mysql, please set `DSN`")
	}

	var err error
	h.pool, err = sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open error: %s\n", err)
	}

	return h.pool, nil
}

func (h *HookMysql) AfterInit() {
}

func (h *HookMysql) AfterSave(d *AfterSaveData) {
	conn, err := h.conn()
	if err != nil {
		fmt.Printf("[%s] %s\n", h.Name(), err)
		return
	}

	_, err = conn.Exec(
		mysqlSaveQuery,
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

func (h *HookMysql) AfterDeliver(d *AfterDeliverData) {
	conn, err := h.conn()
	if err != nil {
		fmt.Printf("[%s] %s\n", h.Name(), err)
		return
	}

	_, err = conn.Exec(
		mysqlDeliverQuery,
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

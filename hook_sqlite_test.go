package fakesendmail

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestHookSqliteConst(t *testing.T) {
	var expect string
	var got string

	expect = "insert into saves (id, invocation_id, occurred_at, category, severity, path, detail) values ($1, $2, $3, $4, $5, $6, $7)"
	got = sqliteSaveQuery
	if got != expect {
		t.Errorf("expected %s, got %s", expect, got)
	}

	expect = "insert into deliveries (id, invocation_id, occurred_at, mail_from, mail_to, code, elapse) values ($1, $2, $3, $4, $5, $6, $7)"
	got = sqliteDeliverQuery
	if got != expect {
		t.Errorf("expected %s, got %s", expect, got)
	}
}

func TestHookSqliteName(t *testing.T) {
	sqlite := &HookSqlite{}
	expect := "sqlite"
	got := sqlite.Name()
	if got != expect {
		t.Errorf("expected %s, got %s", expect, got)
	}
}

func TestHookSqliteConn(t *testing.T) {
	expectError := "missing dsn for sqlite, please set `DSN`"
	sqlite := &HookSqlite{}
	_, err := sqlite.conn()

	if err != nil && fmt.Sprintf("%s", err) != expectError {
		t.Errorf("expected %s, got %s", expectError, err)
	}
}

func TestHookSqliteAfterSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	ti := time.Date(2023, time.August, 16, 14, 48, 0, 0, time.UTC)

	mock.ExpectExec("insert into saves").WithArgs(
		AnyID{},
		"abcdefg",
		ti.Format(TimeFormat),
		"ok",
		"notice",
		"/var/log/fakesendmail/ok/1700000000_AB12",
		"",
	).WillReturnResult(sqlmock.NewResult(1, 1))

	data := &AfterSaveData{
		InvocationID: "abcdefg",
		OccurredAt:   ti,
		Category:     CategoryOK,
		Path:         "/var/log/fakesendmail/ok/1700000000_AB12",
	}

	sqlite := &HookSqlite{pool: db}
	sqlite.AfterSave(data)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %s", err)
	}
}

func TestHookSqliteAfterDeliver(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	ti := time.Date(2023, time.August, 16, 14, 48, 0, 0, time.UTC)

	mock.ExpectExec("insert into deliveries").WithArgs(
		AnyID{},
		"abcdefg",
		ti.Format(TimeFormat),
		[]byte("alice@example.local"),
		[]byte("bob@example.test"),
		75,
		20,
	).WillReturnResult(sqlmock.NewResult(1, 1))

	data := &AfterDeliverData{
		InvocationID: "abcdefg",
		OccurredAt:   ti,
		MailFrom:     []byte("alice@example.local"),
		MailTo:       []byte("bob@example.test"),
		Code:         75,
		Elapse:       20,
	}

	sqlite := &HookSqlite{pool: db}
	sqlite.AfterDeliver(data)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %s", err)
	}
}

func TestHookSqliteCreateTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	mock.ExpectExec("create table if not exists saves").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("create table if not exists deliveries").WillReturnResult(sqlmock.NewResult(0, 0))

	sqlite := &HookSqlite{pool: db}
	sqlite.AfterInit()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %s", err)
	}
}

package fakesendmail

import (
	"fmt"
	"time"
)

const TimeFormat string = "2006-01-02T15:04:05.999999"

// Category is the terminal outcome of one invocation. It names the
// quarantine subdirectory and drives the audit severity.
type Category string

const (
	CategoryUnauthorized Category = "unauthorized_sender"
	CategorySpam         Category = "spam"
	CategoryOK           Category = "ok"
	CategoryDeliverFail  Category = "deliver_fail"
)

type Severity string

const (
	SeverityNotice  Severity = "notice"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Severity maps an outcome category to its audit severity.
func (c Category) Severity() Severity {
	switch c {
	case CategoryOK:
		return SeverityNotice
	case CategoryDeliverFail:
		return SeverityError
	default:
		return SeverityWarning
	}
}

type Elapse int64

func (e Elapse) String() string {
	return fmt.Sprintf("%d msec", int64(e))
}

// Hook receives audit events: one AfterSave per quarantined copy and
// one AfterDeliver per transport run.
type Hook interface {
	Name() string
	AfterInit()
	AfterSave(*AfterSaveData)
	AfterDeliver(*AfterDeliverData)
}

type AfterSaveData struct {
	InvocationID string
	OccurredAt   time.Time
	Category
	Path   string
	Detail string
}

type AfterDeliverData struct {
	InvocationID string
	OccurredAt   time.Time
	MailFrom     []byte
	MailTo       []byte
	Code         int
	Elapse
}

package fakesendmail

import (
	"fmt"
	"io"
	"os"
	"time"
)

const (
	fileSaveJson string = `{"type":"save","occurred_at":"%s","invocation_id":"%s","category":"%s","severity":"%s","path":"%s","detail":"%s"}
`
	fileDeliverJson string = `{"type":"deliver","occurred_at":"%s","invocation_id":"%s","from":"%s","to":"%s","code":%d,"elapse":"%s"}
`
)

type HookFile struct {
	file io.Writer
}

func (h *HookFile) Name() string {
	return "file"
}

func (h *HookFile) writer() (io.Writer, error) {
	if h.file != nil {
		return h.file, nil
	}

	path := os.Getenv("AUDIT_FILE_PATH")
	if len(path) == 0 {
		return nil, fmt.Errorf("missing path for file, please set `AUDIT_FILE_PATH`")
	}

	var err error
	h.file, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("os.OpenFile error: %s\n", err)
	}

	return h.file, nil
}

func (h *HookFile) AfterInit() {
}

func (h *HookFile) AfterSave(d *AfterSaveData) {
	writer, err := h.writer()
	if err != nil {
		fmt.Printf("[%s] %s\n", h.Name(), err)
		return
	}

	if _, err := fmt.Fprintf(writer, fileSaveJson, d.OccurredAt.Format(time.RFC3339), d.InvocationID, d.Category, d.Category.Severity(), d.Path, d.Detail); err != nil {
		fmt.Printf("[%s] file append error: %s\n", h.Name(), err)
	}
}

func (h *HookFile) AfterDeliver(d *AfterDeliverData) {
	writer, err := h.writer()
	if err != nil {
		fmt.Printf("[%s] %s\n", h.Name(), err)
		return
	}

	if _, err := fmt.Fprintf(writer, fileDeliverJson, d.OccurredAt.Format(time.RFC3339), d.InvocationID, d.MailFrom, d.MailTo, d.Code, d.Elapse); err != nil {
		fmt.Printf("[%s] file append error: %s\n", h.Name(), err)
	}
}

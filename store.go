package fakesendmail

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"os"
	"path/filepath"
	"time"
)

const (
	plainLogName  string = "fakesendmail.log"
	nameAlphabet  string = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	nameRandChars int    = 4
)

// Store is the write-only quarantine under the log root. One file per
// terminal outcome, one plain-log entry per save, one AfterSave event
// per hook. It never reads back or overwrites its own files.
type Store struct {
	Dir   string
	Hooks []Hook

	logger   *log.Logger
	id       string
	params   string
	lastPath string
}

func NewStore(dir string, hooks []Hook, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{Dir: dir, Hooks: hooks, logger: logger}
}

// SetContext records the invocation id and the argument list rendered
// into every plain-log entry.
func (s *Store) SetContext(id, params string) {
	s.id = id
	s.params = params
}

// LastPath returns the most recently written quarantine path, empty
// when nothing was saved this run.
func (s *Store) LastPath() string {
	return s.lastPath
}

// Save writes the raw message under <dir>/<category>/ with a
// collision-resistant name, creating directories as needed. The detail
// text lands in the plain log and the audit records. Concurrent
// invocations never race: names embed four characters from a
// cryptographic source.
func (s *Store) Save(msg *Message, category Category, suffix, detail string) (string, error) {
	subdir := filepath.Join(s.Dir, string(category))
	if err := os.MkdirAll(subdir, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll error: %s", err)
	}

	name, err := randomName()
	if err != nil {
		return "", err
	}
	fullpath := filepath.Join(subdir, name+suffix)

	if err := s.LogEntry(fullpath, detail); err != nil {
		s.logger.Printf("[%s] plain log error: %s", s.id, err)
	}

	if err := os.WriteFile(fullpath, msg.Raw(), 0644); err != nil {
		return "", fmt.Errorf("os.WriteFile error: %s", err)
	}
	s.lastPath = fullpath

	s.logger.Printf("[%s] %s: saved as %s", s.id, category.Severity(), fullpath)
	now := time.Now()
	for _, hook := range s.Hooks {
		hook.AfterSave(&AfterSaveData{
			InvocationID: s.id,
			OccurredAt:   now,
			Category:     category,
			Path:         fullpath,
			Detail:       detail,
		})
	}

	return fullpath, nil
}

// LogEntry appends a human-readable record to fakesendmail.log under
// the log root: timestamp, the PARAMS line, the saved file if any and
// any diagnostic text.
func (s *Store) LogEntry(fullpath, diagnostic string) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(s.Dir, plainLogName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "%s\n", time.Now().Format(TimeFormat))
	fmt.Fprintf(f, "PARAMS: %s\n", s.params)
	if fullpath != "" {
		fmt.Fprintf(f, "FILE: %s\n", fullpath)
	}
	if diagnostic != "" {
		fmt.Fprintf(f, "%s\n", diagnostic)
	}
	fmt.Fprintf(f, "\n-------\n")

	return nil
}

// randomName builds `<unix timestamp>_<4 random chars>` from uppercase
// letters and digits.
func randomName() (string, error) {
	name := fmt.Sprintf("%d_", time.Now().Unix())
	max := big.NewInt(int64(len(nameAlphabet)))
	for i := 0; i < nameRandChars; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("crypto/rand error: %s", err)
		}
		name += string(nameAlphabet[n.Int64()])
	}
	return name, nil
}

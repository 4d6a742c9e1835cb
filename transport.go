package fakesendmail

import (
	"bytes"
	"errors"
	"os/exec"
)

// DeliveryResult is the transport's exit status and captured streams.
type DeliveryResult struct {
	Code   int
	Stdout []byte
	Stderr []byte
}

// Transport runs the real mail delivery executable with the given
// arguments, feeding it the message on standard input. It blocks until
// the subprocess exits. A non-zero exit status is a result, not an
// error; an error means the transport could not be run at all.
type Transport interface {
	Run(args []string, msg []byte) (*DeliveryResult, error)
}

// Sendmail invokes a sendmail-compatible binary.
type Sendmail struct {
	Path string
}

func (s *Sendmail) Run(args []string, msg []byte) (*DeliveryResult, error) {
	cmd := exec.Command(s.Path, args...)
	cmd.Stdin = bytes.NewReader(msg)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, err
		}
		code = exitErr.ExitCode()
	}

	return &DeliveryResult{
		Code:   code,
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}, nil
}

package fakesendmail

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"
)

// Filter is the decision pipeline for one message: parse arguments,
// load the message, run the hard gates, then hand the message to the
// real transport exactly once. Zero-value fields are wired from Config
// on first use so tests can inject fakes.
type Filter struct {
	Config     *Config
	Transport  Transport
	Classifier Classifier
	Hooks      []Hook
	Logger     *log.Logger

	id    string
	allow AllowList
	store *Store
}

// Process runs the whole pipeline and returns the process exit code:
// 0 or the transport's own code on the delivery path, 1 on a rejected
// message, malformed invocation or internal failure. It never calls
// os.Exit; that stays with the cmd entry point.
func (f *Filter) Process(argv []string, stdin io.Reader) int {
	f.setup()

	args, err := ParseArgs(argv)
	if err != nil {
		f.Logger.Printf("[%s] %s: %s", f.id, SeverityError, err)
		if lerr := f.store.LogEntry("", "ERROR: "+err.Error()); lerr != nil {
			f.Logger.Printf("[%s] plain log error: %s", f.id, lerr)
		}
		return 1
	}
	f.store.SetContext(f.id, args.Params())

	msg, err := ReadMessage(stdin)
	if err != nil {
		f.Logger.Printf("[%s] %s: reading message: %s", f.id, SeverityError, err)
		if lerr := f.store.LogEntry("", "ERROR: "+err.Error()); lerr != nil {
			f.Logger.Printf("[%s] plain log error: %s", f.id, lerr)
		}
		return 1
	}

	res, err := f.check(msg, args)
	if err != nil {
		return f.internalFailure(err)
	}
	if res.Action == CheckReject {
		if _, serr := f.store.Save(msg, res.Category, res.Suffix, res.Detail); serr != nil {
			return f.internalFailure(serr)
		}
		f.Logger.Printf("[%s] %s: %s", f.id, res.Category.Severity(), res.Detail)
		return 1
	}

	return f.deliver(msg, args)
}

// deliver invokes the real transport, mirrors its exit code and files
// a copy of the message under ok/ or deliver_fail/.
func (f *Filter) deliver(msg *Message, args *Args) int {
	start := time.Now()
	dr, err := f.Transport.Run(args.TransportArgs(), msg.Raw())
	if err != nil {
		return f.internalFailure(fmt.Errorf("transport error: %s", err))
	}
	elapse := Elapse(time.Since(start).Milliseconds())

	if dr.Code != 0 {
		f.Logger.Printf("[%s] %s: transport exited %d: %s", f.id, SeverityError, dr.Code, dr.Stderr)
		if _, serr := f.store.Save(msg, CategoryDeliverFail, "_"+strconv.Itoa(dr.Code), string(dr.Stderr)); serr != nil {
			f.Logger.Printf("[%s] quarantine error: %s", f.id, serr)
		}
		if f.Config.NotifyOnDeliverFail {
			f.notifyProblem(fmt.Sprintf("transport exited %d: %s", dr.Code, dr.Stderr), f.store.LastPath())
		}
	} else {
		if _, serr := f.store.Save(msg, CategoryOK, "", ""); serr != nil {
			f.Logger.Printf("[%s] quarantine error: %s", f.id, serr)
		}
	}

	now := time.Now()
	for _, hook := range f.Hooks {
		hook.AfterDeliver(&AfterDeliverData{
			InvocationID: f.id,
			OccurredAt:   now,
			MailFrom:     []byte(msg.SenderAddr()),
			MailTo:       []byte(strings.Join(args.Addresses, ",")),
			Code:         dr.Code,
			Elapse:       elapse,
		})
	}

	return dr.Code
}

// internalFailure is the catch-all around the checking phase: log the
// full diagnostic, record it in the plain log, alert the operator. Any
// quarantined path referenced comes from an earlier step; this path
// saves nothing itself.
func (f *Filter) internalFailure(err error) int {
	f.Logger.Printf("[%s] %s: %s", f.id, SeverityError, err)
	if lerr := f.store.LogEntry("", err.Error()); lerr != nil {
		f.Logger.Printf("[%s] plain log error: %s", f.id, lerr)
	}
	f.notifyProblem(err.Error(), f.store.LastPath())
	return 1
}

func (f *Filter) setup() {
	if f.Config == nil {
		f.Config = &Config{}
		f.Config.applyDefaults()
	}
	if f.Logger == nil {
		f.Logger = log.Default()
	}
	if f.id == "" {
		f.id = GenID().String()
	}
	if f.Transport == nil {
		f.Transport = &Sendmail{Path: f.Config.Sendmail}
	}
	if f.Classifier == nil {
		switch f.Config.Classifier {
		case "spamc":
			f.Classifier = &SpamcClassifier{Path: f.Config.SpamcPath}
		default:
			f.Classifier = NewBayesClassifier(f.Config.LogDir)
		}
	}
	if f.allow == nil {
		f.allow = f.Config.AllowList()
	}
	if f.store == nil {
		f.store = NewStore(f.Config.LogDir, f.Hooks, f.Logger)
	}
	for _, hook := range f.Hooks {
		hook.AfterInit()
	}
}

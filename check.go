package fakesendmail

import (
	"fmt"
	"strconv"
)

// CheckAction represents the action to take after the checking phase.
type CheckAction int

const (
	CheckPass   CheckAction = iota // Hand the message to the real transport
	CheckReject                    // Quarantine, log and exit 1
)

// CheckResult is the tagged outcome of one check. Rejects carry the
// quarantine category, a human-readable detail and an optional
// filename suffix.
type CheckResult struct {
	Action   CheckAction
	Category Category
	Detail   string
	Suffix   string
}

var checkPass = &CheckResult{Action: CheckPass}

// check runs the hard gates in order: sender authorization first, then
// spam scoring. The first reject wins; an error means an unexpected
// internal failure, not a reject.
func (f *Filter) check(msg *Message, args *Args) (*CheckResult, error) {
	if msg == nil {
		return nil, fmt.Errorf("no message loaded")
	}

	res := f.checkSender(msg, args)
	if res.Action == CheckReject {
		return res, nil
	}

	return f.checkSpam(msg)
}

// checkSender verifies the extracted sender address against the allow
// list. In inline-address mode every literal address from argv must
// pass too: with -t a caller controls which header addresses the
// transport reads back, so argv strings get the same scrutiny.
func (f *Filter) checkSender(msg *Message, args *Args) *CheckResult {
	allow := f.allow
	if allow == nil {
		return checkPass
	}

	candidates := []string{msg.SenderAddr()}
	if args.InlineAddrs {
		candidates = append(candidates, args.Addresses...)
	}

	for _, addr := range candidates {
		if !allow.Contains(addr) {
			return &CheckResult{
				Action:   CheckReject,
				Category: CategoryUnauthorized,
				Detail:   fmt.Sprintf("unauthorized sender %q", addr),
			}
		}
	}

	return checkPass
}

// checkSpam scores the raw message and rejects above the threshold.
// The threshold is recorded in the quarantine filename for later
// tuning.
func (f *Filter) checkSpam(msg *Message) (*CheckResult, error) {
	score, err := f.Classifier.Score(msg.String())
	if err != nil {
		return nil, fmt.Errorf("spam scoring error: %s", err)
	}

	if IsSpam(score, f.Config.SpamThreshold) {
		return &CheckResult{
			Action:   CheckReject,
			Category: CategorySpam,
			Detail:   fmt.Sprintf("spam score %v over threshold %v", score, f.Config.SpamThreshold),
			Suffix:   "_" + strconv.FormatFloat(f.Config.SpamThreshold, 'f', -1, 64),
		}, nil
	}

	return checkPass, nil
}

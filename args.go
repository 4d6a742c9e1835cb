package fakesendmail

import (
	"fmt"
	"strings"
)

const inlineAddrsFlag string = "-t"

// Args holds the parsed invocation arguments. Flags and Addresses keep
// their original order and spelling so the real transport sees exactly
// what the caller passed.
type Args struct {
	Flags       []string
	Addresses   []string
	InlineAddrs bool
}

// ParseArgs splits the argument vector (without the program name) into
// transport flags and literal recipient addresses. The -t flag switches
// to inline-address mode: recipients come from the message headers and
// no further tokens are collected as addresses.
func ParseArgs(argv []string) (*Args, error) {
	a := &Args{}

	for _, token := range argv {
		t := strings.TrimSpace(token)
		if t == "" {
			continue
		}
		if strings.HasPrefix(t, "-") {
			a.Flags = append(a.Flags, token)
			if t == inlineAddrsFlag {
				a.InlineAddrs = true
			}
			continue
		}
		if !a.InlineAddrs {
			a.Addresses = append(a.Addresses, token)
		}
	}

	if !a.InlineAddrs && len(a.Addresses) == 0 {
		return nil, fmt.Errorf("wrong params, no address list and no %s", inlineAddrsFlag)
	}

	return a, nil
}

// TransportArgs returns the argument list to hand to the real transport.
func (a *Args) TransportArgs() []string {
	args := make([]string, 0, len(a.Flags)+len(a.Addresses))
	args = append(args, a.Flags...)
	args = append(args, a.Addresses...)
	return args
}

// Params renders the arguments for the plain-text log, comma joined.
func (a *Args) Params() string {
	return strings.Join(a.TransportArgs(), ",")
}

package fakesendmail

import (
	"reflect"
	"testing"
)

func TestParseArgs(t *testing.T) {
	var tests = []struct {
		argv        []string
		flags       []string
		addresses   []string
		inlineAddrs bool
	}{
		{
			argv:      []string{"user@example.com"},
			addresses: []string{"user@example.com"},
		},
		{
			argv:      []string{"-i", "-f", "a@example.com", "b@example.com"},
			flags:     []string{"-i", "-f"},
			addresses: []string{"a@example.com", "b@example.com"},
		},
		{
			argv:        []string{"-t"},
			flags:       []string{"-t"},
			inlineAddrs: true,
		},
		{
			// tokens after -t are never collected as addresses
			argv:        []string{"before@example.com", "-t", "after@example.com"},
			flags:       []string{"-t"},
			addresses:   []string{"before@example.com"},
			inlineAddrs: true,
		},
		{
			argv:      []string{"  user@example.com  "},
			addresses: []string{"  user@example.com  "},
		},
	}

	for _, v := range tests {
		args, err := ParseArgs(v.argv)
		if err != nil {
			t.Fatalf("ParseArgs(%v) error: %s", v.argv, err)
		}
		if !reflect.DeepEqual(v.flags, args.Flags) {
			t.Errorf("flags expected %v, got %v", v.flags, args.Flags)
		}
		if !reflect.DeepEqual(v.addresses, args.Addresses) {
			t.Errorf("addresses expected %v, got %v", v.addresses, args.Addresses)
		}
		if v.inlineAddrs != args.InlineAddrs {
			t.Errorf("inlineAddrs expected %v, got %v", v.inlineAddrs, args.InlineAddrs)
		}
	}
}

func TestParseArgsNoAddresses(t *testing.T) {
	var tests = [][]string{
		{},
		{"-i", "-v"},
		{"-T"}, // -t matching is exact
	}

	for _, argv := range tests {
		if _, err := ParseArgs(argv); err == nil {
			t.Errorf("ParseArgs(%v) expected error, got nil", argv)
		}
	}
}

func TestTransportArgs(t *testing.T) {
	args := &Args{
		Flags:     []string{"-i", "-f"},
		Addresses: []string{"a@example.com"},
	}
	expect := []string{"-i", "-f", "a@example.com"}
	got := args.TransportArgs()
	if !reflect.DeepEqual(expect, got) {
		t.Errorf("expected %v, got %v", expect, got)
	}

	expectParams := "-i,-f,a@example.com"
	if args.Params() != expectParams {
		t.Errorf("expected %s, got %s", expectParams, args.Params())
	}
}

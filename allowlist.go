package fakesendmail

import "strings"

// AllowList is a fixed set of sender addresses allowed to leave the
// host. A nil AllowList disables sender authorization entirely.
type AllowList map[string]struct{}

// NewAllowList builds an AllowList, lowercasing and trimming every
// entry. Returns nil when no addresses are given so the check stays
// disabled.
func NewAllowList(addrs ...string) AllowList {
	if len(addrs) == 0 {
		return nil
	}
	a := make(AllowList, len(addrs))
	for _, addr := range addrs {
		addr = strings.ToLower(strings.TrimSpace(addr))
		if addr == "" {
			continue
		}
		a[addr] = struct{}{}
	}
	if len(a) == 0 {
		return nil
	}
	return a
}

// Contains reports whether addr belongs to the list. The candidate is
// normalized the same way as the entries.
func (a AllowList) Contains(addr string) bool {
	_, ok := a[strings.ToLower(strings.TrimSpace(addr))]
	return ok
}

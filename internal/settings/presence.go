package settings

import (
	"fmt"
	"strings"
)

// Presence is the availability state published for the user.
type Presence int

const (
	PresenceAutomatic Presence = iota
	PresenceOnline
	PresenceUnavailable
	PresenceOffline
)

var presenceNames = []string{"automatic", "online", "unavailable", "offline"}

// PresenceNames returns the accepted presence names in display order.
func PresenceNames() []string {
	return append([]string(nil), presenceNames...)
}

// String returns the persisted name of p.
func (p Presence) String() string {
	if p < 0 || int(p) >= len(presenceNames) {
		return fmt.Sprintf("presence(%d)", int(p))
	}
	return presenceNames[p]
}

// ParsePresence converts a persisted name back to a Presence.
func ParsePresence(s string) (Presence, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range presenceNames {
		if n == name {
			return Presence(i), nil
		}
	}
	return PresenceAutomatic, fmt.Errorf("%w: unknown presence %q", ErrInvalidValue, s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Presence) MarshalText() ([]byte, error) {
	if p < 0 || int(p) >= len(presenceNames) {
		return nil, fmt.Errorf("%w: presence %d out of range", ErrInvalidValue, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Presence) UnmarshalText(text []byte) error {
	parsed, err := ParsePresence(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

package reqcache

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects the validity policy of a Cache.
type Mode uint8

const (
	// ModeClient keeps entries for their validity window only.
	// It is the zero value.
	ModeClient Mode = iota

	// ModeServer keeps entries for the lifetime of the Cache, ignoring
	// validity windows. Use it when one Cache is created per request or
	// session and thrown away afterwards.
	ModeServer
)

func (m Mode) String() string {
	switch m {
	case ModeClient:
		return "client"
	case ModeServer:
		return "server"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseMode converts "client" or "server" (case-insensitive) to a Mode.
// An empty string yields ModeClient.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "client":
		return ModeClient, nil
	case "server":
		return ModeServer, nil
	default:
		return ModeClient, errors.Join(ErrInvalidMode, fmt.Errorf("unknown mode %q", s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m != ModeClient && m != ModeServer {
		return nil, errors.Join(ErrInvalidMode, fmt.Errorf("unknown mode %d", uint8(m)))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

package roblox

import "log/slog"

// CookieName is the session cookie the platform authenticates with.
const CookieName = ".ROBLOSECURITY"

const redacted = "[redacted]"

// Credential is the user's session cookie value. It formats and logs as a
// redacted placeholder so it cannot leak through fmt or slog.
type Credential string

// Empty reports whether no credential was supplied.
func (c Credential) Empty() bool {
	return c == ""
}

func (c Credential) String() string {
	if c.Empty() {
		return ""
	}
	return redacted
}

// GoString keeps %#v redacted as well.
func (c Credential) GoString() string {
	return c.String()
}

// LogValue implements slog.LogValuer.
func (c Credential) LogValue() slog.Value {
	return slog.StringValue(c.String())
}

func (c Credential) value() string {
	return string(c)
}

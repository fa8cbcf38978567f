package domain

import "strings"

// Credential is the opaque authorization string of one chat account.
type Credential string

// Redacted returns a form of the credential that is safe to log.
func (c Credential) Redacted() string {
	trimmed := strings.TrimSpace(string(c))
	if trimmed == "" {
		return "<empty>"
	}
	if len(trimmed) <= 6 {
		return "…"
	}

	return trimmed[:6] + "…"
}

type Identity struct {
	ID            string
	Username      string
	Discriminator string
}

// Tag renders the identity the way the platform displays it. Accounts migrated
// to unique usernames report a "0" discriminator, which is omitted.
func (i Identity) Tag() string {
	if i.Discriminator == "" || i.Discriminator == "0" {
		return i.Username
	}

	return i.Username + "#" + i.Discriminator
}

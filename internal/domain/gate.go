package domain

import "crypto/subtle"

// Gate is the admin check: one shared secret, injected at startup,
// compared in exactly one place. No sessions, no per-admin identity.
type Gate struct {
	secret []byte
}

func NewGate(secret string) *Gate {
	return &Gate{secret: []byte(secret)}
}

func (g *Gate) Allow(token string) bool {
	if token == "" {
		return false
	}
	return subtle.ConstantTimeCompare(g.secret, []byte(token)) == 1
}

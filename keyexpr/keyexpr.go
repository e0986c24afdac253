// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package keyexpr defines K, the key expression identifying a topic.
//
// A key expression starts life as a plain literal, e.g. "factory/line4/
// temperature". When it is declared against a session, the session may
// intern its prefix and hand back a numeric expression id; the key
// expression is then rewritten into its wire form, which carries the id
// and is cheaper to put on the wire than the full string.
//
// This package performs structural validation only. Canonicalisation and
// the session's expression table live with the session.
package keyexpr

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Mapping tells which side of a connection an interned expression id
// belongs to.
type Mapping uint8

const (
	// MappingSender indicates the id was interned by the sending side.
	MappingSender Mapping = iota
	// MappingReceiver indicates the id was interned by the receiving side.
	MappingReceiver
)

// String returns the Mapping's name.
func (m Mapping) String() string {
	switch m {
	case MappingSender:
		return "sender"
	case MappingReceiver:
		return "receiver"
	default:
		return "unknown"
	}
}

// wire is the interned state attached to a K once a session has declared
// a prefix for it.
type wire struct {
	exprID    uint32
	mapping   Mapping
	prefixLen uint32
	session   uuid.UUID
}

// K is a key expression. The zero K is invalid.
//
// K values are immutable; rewrites such as WithWire return a new K.
type K struct {
	expr string
	wire *wire
}

// New validates s and returns it as a key expression.
//
// Validation is structural: the expression must be non-empty, must not
// start or end with '/', must not contain an empty chunk ("//"), and
// must not contain '#' or '?'.
func New(s string) (K, error) {
	switch {
	case s == "":
		return K{}, errors.New("keyexpr: empty expression")
	case strings.HasPrefix(s, "/"):
		return K{}, errors.Errorf("keyexpr: %q starts with '/'", s)
	case strings.HasSuffix(s, "/"):
		return K{}, errors.Errorf("keyexpr: %q ends with '/'", s)
	case strings.Contains(s, "//"):
		return K{}, errors.Errorf("keyexpr: %q contains an empty chunk", s)
	case strings.ContainsAny(s, "#?"):
		return K{}, errors.Errorf("keyexpr: %q contains a forbidden character", s)
	}
	return K{expr: s}, nil
}

// Must is like New, but panics on invalid input. It is intended for
// expressions known at compile time.
func Must(s string) K {
	k, err := New(s)
	if err != nil {
		panic(err)
	}
	return k
}

// String returns the full expression string.
func (k K) String() string { return k.expr }

// Len returns the byte length of the expression string.
func (k K) Len() int { return len(k.expr) }

// HasWire returns true if k carries interned wire state.
func (k K) HasWire() bool { return k.wire != nil }

// IsOptimizedFor returns true if k is fully optimized for the given
// session: it carries wire state interned by that session, and the
// interned prefix covers the whole expression.
func (k K) IsOptimizedFor(session uuid.UUID) bool {
	return k.wire != nil &&
		k.wire.session == session &&
		int(k.wire.prefixLen) == len(k.expr)
}

// WithWire returns a copy of k rewritten into its wire form.
func (k K) WithWire(exprID uint32, m Mapping, prefixLen uint32, session uuid.UUID) K {
	return K{
		expr: k.expr,
		wire: &wire{
			exprID:    exprID,
			mapping:   m,
			prefixLen: prefixLen,
			session:   session,
		},
	}
}

// ExprID returns the interned expression id, or 0 when k has no wire
// state.
func (k K) ExprID() uint32 {
	if k.wire == nil {
		return 0
	}
	return k.wire.exprID
}

// Mapping returns the wire state's mapping. Only meaningful when HasWire
// is true.
func (k K) Mapping() Mapping {
	if k.wire == nil {
		return MappingSender
	}
	return k.wire.mapping
}

// PrefixLen returns the interned prefix length, or 0 when k has no wire
// state.
func (k K) PrefixLen() uint32 {
	if k.wire == nil {
		return 0
	}
	return k.wire.prefixLen
}

// WireSession returns the session that interned k's wire state. Only
// meaningful when HasWire is true.
func (k K) WireSession() uuid.UUID {
	if k.wire == nil {
		return uuid.UUID{}
	}
	return k.wire.session
}

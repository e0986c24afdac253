// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package pubsubtest provides an in-memory pubsub.Session for tests.
//
// The Session records every call made against it and can be told to fail
// specific operations, so builder behavior can be asserted without a
// transport.
package pubsubtest

import (
	"sync"

	"github.com/danjacques/gozbus/keyexpr"
	"github.com/danjacques/gozbus/pubsub"

	"github.com/google/uuid"
)

// Session is an in-memory pubsub.Session that records everything routed
// through it.
//
// The error fields, when set, are returned by the corresponding call
// without any other effect, except that a failed DeclarePrefix is still
// counted by PrefixCalls. Session is safe for concurrent use.
type Session struct {
	// DeclarePrefixErr, DeclarePublisherErr, UndeclarePublisherErr and
	// ResolvePutErr, when non-nil, fail the corresponding operation.
	DeclarePrefixErr      error
	DeclarePublisherErr   error
	UndeclarePublisherErr error
	ResolvePutErr         error

	mu sync.Mutex

	id     uuid.UUID
	closed bool

	nextExprID   uint32
	nextEntityID pubsub.EntityID

	prefixes    map[string]uint32
	prefixCalls int

	publishers   map[pubsub.EntityID]keyexpr.K
	undeclared   []pubsub.EntityID
	publications []*pubsub.Publication
}

var _ pubsub.Session = (*Session)(nil)

// New returns an empty Session with a fresh id.
func New() *Session {
	return &Session{
		id:         uuid.New(),
		prefixes:   map[string]uint32{},
		publishers: map[pubsub.EntityID]keyexpr.K{},
	}
}

// ID implements pubsub.Session.
func (s *Session) ID() uuid.UUID { return s.id }

// DeclarePrefix implements pubsub.Session. Each distinct expression
// receives a sequential id starting at 1; re-declaring an expression
// returns its existing id.
func (s *Session) DeclarePrefix(expr string) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefixCalls++
	if s.DeclarePrefixErr != nil {
		return 0, s.DeclarePrefixErr
	}

	if id, ok := s.prefixes[expr]; ok {
		return id, nil
	}
	s.nextExprID++
	s.prefixes[expr] = s.nextExprID
	return s.nextExprID, nil
}

// DeclarePublisher implements pubsub.Session, assigning sequential
// entity ids starting at 1.
func (s *Session) DeclarePublisher(ke keyexpr.K, dst pubsub.Locality) (pubsub.EntityID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.DeclarePublisherErr != nil {
		return 0, s.DeclarePublisherErr
	}

	s.nextEntityID++
	s.publishers[s.nextEntityID] = ke
	return s.nextEntityID, nil
}

// UndeclarePublisher implements pubsub.Session.
func (s *Session) UndeclarePublisher(id pubsub.EntityID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.UndeclarePublisherErr != nil {
		return s.UndeclarePublisherErr
	}

	delete(s.publishers, id)
	s.undeclared = append(s.undeclared, id)
	return nil
}

// ResolvePut implements pubsub.Session, recording p.
func (s *Session) ResolvePut(p *pubsub.Publication) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ResolvePutErr != nil {
		return s.ResolvePutErr
	}

	s.publications = append(s.publications, p)
	return nil
}

// Downgrade implements pubsub.Session. The returned reference fails to
// upgrade once Close has been called.
func (s *Session) Downgrade() pubsub.WeakSession { return &weak{s: s} }

// Close severs every weak reference handed out by Downgrade.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// PrefixCalls returns the number of DeclarePrefix calls observed,
// including failed ones.
func (s *Session) PrefixCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefixCalls
}

// Publishers returns the currently-declared publishers by entity id.
func (s *Session) Publishers() map[pubsub.EntityID]keyexpr.K {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[pubsub.EntityID]keyexpr.K, len(s.publishers))
	for id, ke := range s.publishers {
		out[id] = ke
	}
	return out
}

// Undeclared returns the entity ids that have been undeclared, in order.
func (s *Session) Undeclared() []pubsub.EntityID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]pubsub.EntityID(nil), s.undeclared...)
}

// Publications returns every recorded publication, in resolution order.
func (s *Session) Publications() []*pubsub.Publication {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*pubsub.Publication(nil), s.publications...)
}

type weak struct {
	s *Session
}

func (w *weak) Get() (pubsub.Session, bool) {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()

	if w.s.closed {
		return nil, false
	}
	return w.s, true
}

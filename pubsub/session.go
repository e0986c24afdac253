// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package pubsub

import (
	"github.com/danjacques/gozbus/keyexpr"
	"github.com/danjacques/gozbus/zbytes"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrSessionClosed is returned when a weak session reference can no
// longer be upgraded.
var ErrSessionClosed = errors.New("pubsub: session closed")

// Publication is a fully-resolved put or delete, as handed to the
// session.
//
// All builder state collapses into this record at resolution time; the
// session owns everything that happens afterwards (batching, ordering to
// the wire, routing).
type Publication struct {
	// KeyExpr is the key expression being published to.
	KeyExpr keyexpr.K
	// Payload is the sample's payload. Empty for deletes.
	Payload zbytes.B
	// Kind tells whether this is a put or a delete.
	Kind SampleKind
	// Encoding describes the payload bytes. Deletes carry EncodingZBytes.
	Encoding Encoding

	// CongestionControl, Priority, IsExpress, Destination and Reliability
	// are the QoS settings the publication was resolved with.
	//
	// IsExpress asks the session to bypass batching for this publication.
	CongestionControl CongestionControl
	Priority          Priority
	IsExpress         bool
	Destination       Locality
	Reliability       Reliability

	// Timestamp, SourceInfo and Attachment are optional sample metadata;
	// nil when not set.
	Timestamp  *Timestamp
	SourceInfo *SourceInfo
	Attachment *zbytes.B
}

// Session is the middleware session the publication surface runs
// against. Implementations live outside this package; everything here
// consumes the interface only.
//
// The three declaration/publication calls may block while the session
// negotiates with its transport. None of them spawn work on behalf of
// this package.
type Session interface {
	// ID returns the session's unique id.
	ID() uuid.UUID

	// DeclarePrefix interns expr in the session's expression table and
	// returns the assigned expression id.
	DeclarePrefix(expr string) (uint32, error)

	// DeclarePublisher registers a publisher on ke, restricted to dst,
	// and returns its entity id.
	DeclarePublisher(ke keyexpr.K, dst Locality) (EntityID, error)

	// UndeclarePublisher removes a publisher registration.
	UndeclarePublisher(id EntityID) error

	// ResolvePut routes one publication.
	ResolvePut(p *Publication) error

	// Downgrade returns a weak reference to the session. Publisher
	// handles hold the weak form so an abandoned handle cannot keep the
	// session alive.
	Downgrade() WeakSession
}

// WeakSession is a session reference that does not keep the session
// alive.
type WeakSession interface {
	// Get returns the session, or false if it is gone.
	Get() (Session, bool)
}

// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package pubsub

import (
	"sync"

	"github.com/danjacques/gozbus/keyexpr"
	"github.com/danjacques/gozbus/support/logging"
	"github.com/danjacques/gozbus/zbytes"
)

// Publisher is a declared publishing endpoint on a session.
//
// A Publisher is created by resolving a PublisherBuilder. Its QoS
// settings are fixed at declaration time; individual publications can
// only add sample-level metadata.
//
// A Publisher holds a weak reference to its session, so an abandoned
// handle cannot keep the session alive. Publications resolved after the
// session is gone fail with ErrSessionClosed.
//
// Close the Publisher when finished with it to release its registration
// on the session.
type Publisher struct {
	logger logging.L

	session WeakSession
	id      EntityID
	keyExpr keyexpr.K

	encoding          Encoding
	congestionControl CongestionControl
	priority          Priority
	isExpress         bool
	destination       Locality
	reliability       Reliability

	// undeclareOnDrop records whether Close should undeclare the
	// publisher against the session.
	undeclareOnDrop bool
	undeclareOnce   sync.Once
}

// ID returns the publisher's entity id, assigned by the session.
func (p *Publisher) ID() EntityID { return p.id }

// KeyExpr returns the publisher's key expression, in the form it was
// declared with (wire form when the session interned a prefix).
func (p *Publisher) KeyExpr() keyexpr.K { return p.keyExpr }

// Encoding returns the default encoding applied to this publisher's
// puts.
func (p *Publisher) Encoding() Encoding { return p.encoding }

// CongestionControl returns the publisher's congestion control setting.
func (p *Publisher) CongestionControl() CongestionControl { return p.congestionControl }

// Priority returns the publisher's priority.
func (p *Publisher) Priority() Priority { return p.priority }

// IsExpress returns true if this publisher's publications bypass
// batching.
func (p *Publisher) IsExpress() bool { return p.isExpress }

// Destination returns the publisher's destination restriction.
func (p *Publisher) Destination() Locality { return p.destination }

// Reliability returns the publisher's reliability hint.
func (p *Publisher) Reliability() Reliability { return p.reliability }

// Put returns a builder publishing payload on this publisher's key
// expression, with this publisher's QoS and default encoding. Resolve it
// with Wait or Resolve.
func (p *Publisher) Put(payload zbytes.B) *PublisherPublicationBuilder {
	return newPublisherPublication(p, publication{
		kind:     SampleKindPut,
		payload:  payload,
		encoding: p.encoding,
	})
}

// Delete returns a builder retracting the value at this publisher's key
// expression. Resolve it with Wait or Resolve.
func (p *Publisher) Delete() *PublisherPublicationBuilder {
	return newPublisherPublication(p, publication{
		kind: SampleKindDelete,
	})
}

// Undeclare removes the publisher's registration from the session and
// returns the session's result. It acts at most once; later calls,
// including through Close, are no-ops.
//
// If the session is already gone there is nothing to remove, and
// Undeclare returns nil.
func (p *Publisher) Undeclare() error {
	var err error
	p.undeclareOnce.Do(func() {
		p.undeclareOnDrop = false
		s, ok := p.session.Get()
		if !ok {
			return
		}
		err = s.UndeclarePublisher(p.id)
	})
	return err
}

// Close releases the Publisher. If the handle still owes the session an
// undeclaration, Close performs it; a failure is logged through the
// publisher's logger, not returned.
//
// Close always returns nil. It exists so a Publisher can be managed as
// an io.Closer.
func (p *Publisher) Close() error {
	if !p.undeclareOnDrop {
		return nil
	}
	if err := p.Undeclare(); err != nil {
		logging.Must(p.logger).Warnf("failed to undeclare publisher %d on %q: %s",
			p.id, p.keyExpr.String(), err)
	}
	return nil
}

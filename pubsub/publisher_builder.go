// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package pubsub

import (
	"math"

	"github.com/danjacques/gozbus/keyexpr"
	"github.com/danjacques/gozbus/support/logging"

	"github.com/pkg/errors"
)

// PublisherBuilder configures and declares a Publisher on a session.
//
// Obtain one from Declare, chain configurators on it, then resolve it
// with Wait or Resolve. A builder is lazy: it performs no session calls
// until resolved, and it resolves at most once.
type PublisherBuilder struct {
	session Session

	// keyExpr is valid only when keyErr is nil. A key expression that
	// failed validation is carried here as an error and surfaced at
	// resolution, so that Declare itself never fails.
	keyExpr keyexpr.K
	keyErr  error

	encoding          Encoding
	congestionControl CongestionControl
	priority          Priority
	isExpress         bool
	reliability       Reliability
	destination       Locality

	logger logging.L

	resolved bool
}

// Declare returns a builder declaring a publisher on expr.
//
// expr is validated immediately; a validation failure is stored in the
// builder and returned by Wait.
func Declare(s Session, expr string) *PublisherBuilder {
	b := newPublisherBuilder(s, expr)
	armUnresolvedWarning(b)
	return b
}

func newPublisherBuilder(s Session, expr string) *PublisherBuilder {
	ke, err := keyexpr.New(expr)
	return &PublisherBuilder{
		session:  s,
		keyExpr:  ke,
		keyErr:   err,
		encoding: EncodingZBytes,
		priority: PriorityDefault,
	}
}

// Encoding sets the default encoding for the publisher's puts.
func (b *PublisherBuilder) Encoding(e Encoding) *PublisherBuilder {
	b.encoding = e
	return b
}

// CongestionControl sets the congestion control to apply when routing
// the publisher's data.
func (b *PublisherBuilder) CongestionControl(c CongestionControl) *PublisherBuilder {
	b.congestionControl = c
	return b
}

// Priority sets the priority of the publisher's data.
func (b *PublisherBuilder) Priority(p Priority) *PublisherBuilder {
	b.priority = p
	return b
}

// Express sets whether the publisher's publications bypass batching.
// Express traffic usually improves latency at the cost of throughput.
func (b *PublisherBuilder) Express(express bool) *PublisherBuilder {
	b.isExpress = express
	return b
}

// AllowedDestination restricts which subscribers may receive the
// publisher's data.
func (b *PublisherBuilder) AllowedDestination(l Locality) *PublisherBuilder {
	b.destination = l
	return b
}

// Reliability sets the publisher's reliability hint. It does not trigger
// retransmission; the session may use it to pick a link.
func (b *PublisherBuilder) Reliability(r Reliability) *PublisherBuilder {
	b.reliability = r
	return b
}

// Logger sets the logger inherited by the declared Publisher.
func (b *PublisherBuilder) Logger(l logging.L) *PublisherBuilder {
	b.logger = l
	return b
}

// Clone returns an independent copy of the builder.
//
// A stored key-expression failure is cloned as a new error annotated as
// cloned; it does not silently become a success.
func (b *PublisherBuilder) Clone() *PublisherBuilder {
	nb := &PublisherBuilder{
		session:           b.session,
		keyExpr:           b.keyExpr,
		encoding:          b.encoding,
		congestionControl: b.congestionControl,
		priority:          b.priority,
		isExpress:         b.isExpress,
		reliability:       b.reliability,
		destination:       b.destination,
		logger:            b.logger,
	}
	if b.keyErr != nil {
		nb.keyErr = errors.WithMessage(b.keyErr, "cloned key expression error")
	}
	armUnresolvedWarning(nb)
	return nb
}

// Wait declares the publisher and returns its handle.
//
// Resolution is single-shot: the first error encountered is returned and
// the builder is consumed either way.
func (b *PublisherBuilder) Wait() (*Publisher, error) {
	if err := b.consume(); err != nil {
		return nil, err
	}
	ke, err := b.declaredKeyExpr()
	if err != nil {
		return nil, err
	}

	id, err := b.session.DeclarePublisher(ke, b.destination)
	if err != nil {
		return nil, err
	}

	return &Publisher{
		logger:            b.logger,
		session:           b.session.Downgrade(),
		id:                id,
		keyExpr:           ke,
		encoding:          b.encoding,
		congestionControl: b.congestionControl,
		priority:          b.priority,
		isExpress:         b.isExpress,
		destination:       b.destination,
		reliability:       b.reliability,
		undeclareOnDrop:   true,
	}, nil
}

// Resolve resolves the builder as Wait does and returns a completion
// already holding the result. No goroutine is spawned; the session calls
// have completed by the time Resolve returns.
func (b *PublisherBuilder) Resolve() <-chan PublisherResult {
	p, err := b.Wait()
	return ready(PublisherResult{Publisher: p, Err: err})
}

// declaredKeyExpr surfaces the stored key expression, interning its
// prefix against the session first if it is not already fully optimized
// for it.
func (b *PublisherBuilder) declaredKeyExpr() (keyexpr.K, error) {
	if b.keyErr != nil {
		return keyexpr.K{}, b.keyErr
	}

	ke := b.keyExpr
	sid := b.session.ID()
	if ke.IsOptimizedFor(sid) {
		return ke, nil
	}

	exprID, err := b.session.DeclarePrefix(ke.String())
	if err != nil {
		return keyexpr.K{}, err
	}
	if uint64(ke.Len()) > math.MaxUint32 {
		panic("pubsub: key expression length exceeds 32 bits")
	}
	return ke.WithWire(exprID, keyexpr.MappingSender, uint32(ke.Len()), sid), nil
}

func (b *PublisherBuilder) warnUnresolved() {
	if b.resolved {
		return
	}
	logging.Must(b.logger).Warnf(
		"publisher builder for %q dropped without being resolved", b.keyExpr.String())
}

// consume marks the builder resolved, failing if it already was.
func (b *PublisherBuilder) consume() error {
	if b.resolved {
		return ErrResolved
	}
	b.resolved = true
	disarmUnresolvedWarning(b)
	return nil
}

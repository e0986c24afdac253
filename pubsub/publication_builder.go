// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package pubsub

import (
	"github.com/danjacques/gozbus/keyexpr"
	"github.com/danjacques/gozbus/support/logging"
	"github.com/danjacques/gozbus/zbytes"
)

// publicationQoS is the QoS snapshot a publication resolves with: the
// unresolved builder's settings on the session path, the declared
// handle's settings on the publisher path.
type publicationQoS struct {
	congestionControl CongestionControl
	priority          Priority
	isExpress         bool
	destination       Locality
	reliability       Reliability
}

// publication is the sample-level intent shared by both publication
// paths: what is being published, and the optional metadata riding with
// it.
type publication struct {
	kind     SampleKind
	payload  zbytes.B
	encoding Encoding

	timestamp  *Timestamp
	sourceInfo *SourceInfo
	attachment *zbytes.B
}

// record collapses the intent and the supplied QoS into the Publication
// handed to the session. Deletes always go out with an empty payload and
// the reserved raw-bytes encoding.
func (pb *publication) record(ke keyexpr.K, qos publicationQoS) *Publication {
	p := &Publication{
		KeyExpr:           ke,
		Payload:           pb.payload,
		Kind:              pb.kind,
		Encoding:          pb.encoding,
		CongestionControl: qos.congestionControl,
		Priority:          qos.priority,
		IsExpress:         qos.isExpress,
		Destination:       qos.destination,
		Reliability:       qos.reliability,
		Timestamp:         pb.timestamp,
		SourceInfo:        pb.sourceInfo,
		Attachment:        pb.attachment,
	}
	if pb.kind == SampleKindDelete {
		p.Payload = zbytes.B{}
		p.Encoding = EncodingZBytes
	}
	return p
}

// PublicationBuilder is a single put or delete issued directly on a
// session.
//
// Obtain one from Put or Delete, configure it, then resolve it with Wait
// or Resolve. The builder wraps an undeclared PublisherBuilder, so QoS
// configurators remain available; resolution nevertheless routes the
// publication straight to the session without declaring a publisher --
// a one-shot put implies no registration.
type PublicationBuilder struct {
	publisher *PublisherBuilder
	publication

	resolved bool
}

// Put returns a builder publishing payload on expr with the session's
// one-shot path.
//
// expr is validated immediately; a validation failure is stored and
// returned by Wait.
func Put(s Session, expr string, payload zbytes.B) *PublicationBuilder {
	b := &PublicationBuilder{
		publisher: newPublisherBuilder(s, expr),
		publication: publication{
			kind:     SampleKindPut,
			payload:  payload,
			encoding: EncodingZBytes,
		},
	}
	armUnresolvedWarning(b)
	return b
}

// Delete returns a builder retracting the value at expr with the
// session's one-shot path.
func Delete(s Session, expr string) *PublicationBuilder {
	b := &PublicationBuilder{
		publisher: newPublisherBuilder(s, expr),
		publication: publication{
			kind: SampleKindDelete,
		},
	}
	armUnresolvedWarning(b)
	return b
}

// Encoding sets the encoding describing the payload. It has no effect on
// deletes, which always carry the reserved raw-bytes encoding.
func (b *PublicationBuilder) Encoding(e Encoding) *PublicationBuilder {
	b.encoding = e
	return b
}

// CongestionControl sets the congestion control for this publication.
func (b *PublicationBuilder) CongestionControl(c CongestionControl) *PublicationBuilder {
	b.publisher.CongestionControl(c)
	return b
}

// Priority sets the priority of this publication.
func (b *PublicationBuilder) Priority(p Priority) *PublicationBuilder {
	b.publisher.Priority(p)
	return b
}

// Express sets whether this publication bypasses batching.
func (b *PublicationBuilder) Express(express bool) *PublicationBuilder {
	b.publisher.Express(express)
	return b
}

// AllowedDestination restricts which subscribers may receive this
// publication.
func (b *PublicationBuilder) AllowedDestination(l Locality) *PublicationBuilder {
	b.publisher.AllowedDestination(l)
	return b
}

// Reliability sets the reliability hint for this publication.
func (b *PublicationBuilder) Reliability(r Reliability) *PublicationBuilder {
	b.publisher.Reliability(r)
	return b
}

// Timestamp attaches an HLC timestamp to the publication.
func (b *PublicationBuilder) Timestamp(ts Timestamp) *PublicationBuilder {
	b.timestamp = &ts
	return b
}

// SourceInfo attaches source information to the publication.
func (b *PublicationBuilder) SourceInfo(si SourceInfo) *PublicationBuilder {
	b.sourceInfo = &si
	return b
}

// Attachment attaches user metadata bytes to the publication.
func (b *PublicationBuilder) Attachment(a zbytes.B) *PublicationBuilder {
	b.attachment = &a
	return b
}

// Logger sets the logger used for builder diagnostics.
func (b *PublicationBuilder) Logger(l logging.L) *PublicationBuilder {
	b.publisher.Logger(l)
	return b
}

// Wait routes the publication on the session and returns the session's
// result.
//
// Wait issues at most one ResolvePut, and none when the key expression
// failed validation or the builder was already resolved. It does not
// declare a publisher and does not intern the key expression's prefix; only an explicit
// Declare does those.
func (b *PublicationBuilder) Wait() error {
	if b.resolved {
		return ErrResolved
	}
	b.resolved = true
	disarmUnresolvedWarning(b)

	pb := b.publisher
	if pb.keyErr != nil {
		return pb.keyErr
	}
	return pb.session.ResolvePut(b.record(pb.keyExpr, publicationQoS{
		congestionControl: pb.congestionControl,
		priority:          pb.priority,
		isExpress:         pb.isExpress,
		destination:       pb.destination,
		reliability:       pb.reliability,
	}))
}

// Resolve resolves the builder as Wait does and returns a completion
// already holding the result.
func (b *PublicationBuilder) Resolve() <-chan error {
	return ready(b.Wait())
}

func (b *PublicationBuilder) warnUnresolved() {
	if b.resolved {
		return
	}
	logging.Must(b.publisher.logger).Warnf(
		"%s publication for %q dropped without being resolved", b.kind, b.publisher.keyExpr.String())
}

// PublisherPublicationBuilder is a single put or delete issued through a
// declared Publisher.
//
// Obtain one from Publisher.Put or Publisher.Delete. The publisher's QoS
// is fixed; only sample-level metadata can be configured here.
type PublisherPublicationBuilder struct {
	publisher *Publisher
	publication

	resolved bool
}

func newPublisherPublication(p *Publisher, pub publication) *PublisherPublicationBuilder {
	b := &PublisherPublicationBuilder{
		publisher:   p,
		publication: pub,
	}
	armUnresolvedWarning(b)
	return b
}

// Encoding sets the encoding describing the payload, overriding the
// publisher's default. It has no effect on deletes.
func (b *PublisherPublicationBuilder) Encoding(e Encoding) *PublisherPublicationBuilder {
	b.encoding = e
	return b
}

// Timestamp attaches an HLC timestamp to the publication.
func (b *PublisherPublicationBuilder) Timestamp(ts Timestamp) *PublisherPublicationBuilder {
	b.timestamp = &ts
	return b
}

// SourceInfo attaches source information to the publication.
func (b *PublisherPublicationBuilder) SourceInfo(si SourceInfo) *PublisherPublicationBuilder {
	b.sourceInfo = &si
	return b
}

// Attachment attaches user metadata bytes to the publication.
func (b *PublisherPublicationBuilder) Attachment(a zbytes.B) *PublisherPublicationBuilder {
	b.attachment = &a
	return b
}

// Wait routes the publication on the publisher's session with the
// publisher's QoS, and returns the session's result.
func (b *PublisherPublicationBuilder) Wait() error {
	if b.resolved {
		return ErrResolved
	}
	b.resolved = true
	disarmUnresolvedWarning(b)

	p := b.publisher
	s, ok := p.session.Get()
	if !ok {
		return ErrSessionClosed
	}
	return s.ResolvePut(b.record(p.keyExpr, publicationQoS{
		congestionControl: p.congestionControl,
		priority:          p.priority,
		isExpress:         p.isExpress,
		destination:       p.destination,
		reliability:       p.reliability,
	}))
}

// Resolve resolves the builder as Wait does and returns a completion
// already holding the result.
func (b *PublisherPublicationBuilder) Resolve() <-chan error {
	return ready(b.Wait())
}

func (b *PublisherPublicationBuilder) warnUnresolved() {
	if b.resolved {
		return
	}
	logging.Must(b.publisher.logger).Warnf(
		"%s publication for %q dropped without being resolved", b.kind, b.publisher.keyExpr.String())
}

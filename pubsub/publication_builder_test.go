// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package pubsub_test

import (
	"github.com/danjacques/gozbus/pubsub"
	"github.com/danjacques/gozbus/pubsub/pubsubtest"
	"github.com/danjacques/gozbus/zbytes"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
)

var _ = Describe("PublicationBuilder (session path)", func() {
	var sess *pubsubtest.Session

	BeforeEach(func() {
		sess = pubsubtest.New()
	})

	It("is lazy until resolved", func() {
		_ = pubsub.Put(sess, "a/b", zbytes.FromString("hello")).
			CongestionControl(pubsub.CongestionBlock)
		_ = pubsub.Delete(sess, "a/b")
		_ = pubsub.Declare(sess, "a/b")

		Expect(sess.Publications()).To(BeEmpty())
		Expect(sess.PrefixCalls()).To(Equal(0))
		Expect(sess.Publishers()).To(BeEmpty())
	})

	It("routes a put with its QoS and payload", func() {
		err := pubsub.Put(sess, "a/b", zbytes.FromString("hello")).
			Encoding(pubsub.EncodingTextPlain).
			CongestionControl(pubsub.CongestionBlock).
			Wait()

		Expect(err).ToNot(HaveOccurred())

		pubs := sess.Publications()
		Expect(pubs).To(HaveLen(1))

		p := pubs[0]
		Expect(p.KeyExpr.String()).To(Equal("a/b"))
		Expect(p.Kind).To(Equal(pubsub.SampleKindPut))
		Expect(p.Payload.Bytes()).To(Equal([]byte("hello")))
		Expect(p.Encoding).To(Equal(pubsub.EncodingTextPlain))
		Expect(p.CongestionControl).To(Equal(pubsub.CongestionBlock))
		Expect(p.Priority).To(Equal(pubsub.PriorityDefault))
		Expect(p.IsExpress).To(BeFalse())
		Expect(p.Timestamp).To(BeNil())
		Expect(p.SourceInfo).To(BeNil())
		Expect(p.Attachment).To(BeNil())
	})

	It("does not declare a publisher or intern a prefix", func() {
		err := pubsub.Put(sess, "a/b", zbytes.FromString("hello")).Wait()

		Expect(err).ToNot(HaveOccurred())
		Expect(sess.Publishers()).To(BeEmpty())
		Expect(sess.PrefixCalls()).To(Equal(0))

		p := sess.Publications()[0]
		Expect(p.KeyExpr.HasWire()).To(BeFalse())
	})

	It("routes a delete as an empty put with the reserved encoding", func() {
		err := pubsub.Delete(sess, "a/b").Wait()

		Expect(err).ToNot(HaveOccurred())

		p := sess.Publications()[0]
		Expect(p.Kind).To(Equal(pubsub.SampleKindDelete))
		Expect(p.Payload.IsEmpty()).To(BeTrue())
		Expect(p.Encoding).To(Equal(pubsub.EncodingZBytes))
	})

	It("carries sample metadata", func() {
		ts := pubsub.Timestamp{Time: 42, ID: uuid.New()}
		si := pubsub.SourceInfo{
			Source: pubsub.GlobalID{Session: uuid.New(), Entity: 7},
			SN:     3,
		}

		err := pubsub.Put(sess, "a/b", zbytes.FromString("x")).
			Timestamp(ts).
			SourceInfo(si).
			Attachment(zbytes.FromString("meta")).
			Wait()

		Expect(err).ToNot(HaveOccurred())

		p := sess.Publications()[0]
		Expect(p.Timestamp).ToNot(BeNil())
		Expect(*p.Timestamp).To(Equal(ts))
		Expect(p.SourceInfo).ToNot(BeNil())
		Expect(*p.SourceInfo).To(Equal(si))
		Expect(p.Attachment).ToNot(BeNil())
		Expect(p.Attachment.Bytes()).To(Equal([]byte("meta")))
	})

	It("surfaces an invalid key expression without touching the session", func() {
		err := pubsub.Put(sess, "//", zbytes.FromString("x")).Wait()

		Expect(err).To(HaveOccurred())
		Expect(sess.Publications()).To(BeEmpty())
	})

	It("propagates a session failure unchanged", func() {
		boom := errors.New("put boom")
		sess.ResolvePutErr = boom

		Expect(pubsub.Put(sess, "a/b", zbytes.B{}).Wait()).To(Equal(boom))
	})

	It("is consumed by resolution", func() {
		b := pubsub.Put(sess, "a/b", zbytes.FromString("x"))

		Expect(b.Wait()).To(Succeed())
		Expect(b.Wait()).To(Equal(pubsub.ErrResolved))
		Expect(sess.Publications()).To(HaveLen(1))
	})

	It("resolves through the asynchronous face identically", func() {
		Expect(<-pubsub.Put(sess, "a/b", zbytes.FromString("x")).Resolve()).To(Succeed())
		Expect(sess.Publications()).To(HaveLen(1))
	})
})

var _ = Describe("PublisherPublicationBuilder (publisher path)", func() {
	var sess *pubsubtest.Session
	var p *pubsub.Publisher

	BeforeEach(func() {
		sess = pubsubtest.New()

		var err error
		p, err = pubsub.Declare(sess, "a/b").
			Encoding(pubsub.EncodingAppJSON).
			CongestionControl(pubsub.CongestionBlock).
			Priority(pubsub.PriorityDataHigh).
			Express(true).
			AllowedDestination(pubsub.LocalityRemote).
			Reliability(pubsub.Reliable).
			Wait()
		Expect(err).ToNot(HaveOccurred())
	})

	It("publishes with the handle's QoS and default encoding", func() {
		Expect(p.Put(zbytes.FromString(`{"v":1}`)).Wait()).To(Succeed())

		pub := sess.Publications()[0]
		Expect(pub.KeyExpr.String()).To(Equal("a/b"))
		Expect(pub.KeyExpr.IsOptimizedFor(sess.ID())).To(BeTrue())
		Expect(pub.Kind).To(Equal(pubsub.SampleKindPut))
		Expect(pub.Encoding).To(Equal(pubsub.EncodingAppJSON))
		Expect(pub.CongestionControl).To(Equal(pubsub.CongestionBlock))
		Expect(pub.Priority).To(Equal(pubsub.PriorityDataHigh))
		Expect(pub.IsExpress).To(BeTrue())
		Expect(pub.Destination).To(Equal(pubsub.LocalityRemote))
		Expect(pub.Reliability).To(Equal(pubsub.Reliable))
	})

	It("allows a per-publication encoding override", func() {
		Expect(p.Put(zbytes.FromString("x")).Encoding(pubsub.EncodingTextPlain).Wait()).To(Succeed())

		Expect(sess.Publications()[0].Encoding).To(Equal(pubsub.EncodingTextPlain))
	})

	It("deletes with an empty payload, the reserved encoding and the handle's QoS", func() {
		Expect(p.Delete().Wait()).To(Succeed())

		pub := sess.Publications()[0]
		Expect(pub.Kind).To(Equal(pubsub.SampleKindDelete))
		Expect(pub.Payload.IsEmpty()).To(BeTrue())
		Expect(pub.Encoding).To(Equal(pubsub.EncodingZBytes))
		Expect(pub.CongestionControl).To(Equal(pubsub.CongestionBlock))
		Expect(pub.Priority).To(Equal(pubsub.PriorityDataHigh))
		Expect(pub.IsExpress).To(BeTrue())
		Expect(pub.Destination).To(Equal(pubsub.LocalityRemote))
		Expect(pub.Reliability).To(Equal(pubsub.Reliable))
	})

	It("fails once the session is gone", func() {
		sess.Close()

		Expect(p.Put(zbytes.FromString("x")).Wait()).To(Equal(pubsub.ErrSessionClosed))
	})

	It("is consumed by resolution", func() {
		b := p.Put(zbytes.FromString("x"))

		Expect(b.Wait()).To(Succeed())
		Expect(b.Wait()).To(Equal(pubsub.ErrResolved))
	})
})

// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package pubsub_test

import (
	"github.com/danjacques/gozbus/pubsub"
	"github.com/danjacques/gozbus/pubsub/pubsubtest"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
)

var _ = Describe("Publisher lifecycle", func() {
	var sess *pubsubtest.Session
	var p *pubsub.Publisher

	BeforeEach(func() {
		sess = pubsubtest.New()

		var err error
		p, err = pubsub.Declare(sess, "a/b").Wait()
		Expect(err).ToNot(HaveOccurred())
	})

	It("undeclares explicitly, once", func() {
		Expect(p.Undeclare()).To(Succeed())
		Expect(sess.Undeclared()).To(Equal([]pubsub.EntityID{p.ID()}))
		Expect(sess.Publishers()).To(BeEmpty())

		// A later Close has nothing left to do.
		Expect(p.Close()).To(Succeed())
		Expect(sess.Undeclared()).To(HaveLen(1))
	})

	It("undeclares on Close", func() {
		Expect(p.Close()).To(Succeed())
		Expect(sess.Undeclared()).To(Equal([]pubsub.EntityID{p.ID()}))

		Expect(p.Close()).To(Succeed())
		Expect(sess.Undeclared()).To(HaveLen(1))
	})

	It("propagates an explicit undeclare failure", func() {
		boom := errors.New("undeclare boom")
		sess.UndeclarePublisherErr = boom

		Expect(p.Undeclare()).To(Equal(boom))
	})

	It("swallows an undeclare failure on Close", func() {
		sess.UndeclarePublisherErr = errors.New("undeclare boom")

		Expect(p.Close()).To(Succeed())
	})

	It("skips undeclaring when the session is gone", func() {
		sess.Close()

		Expect(p.Close()).To(Succeed())
		Expect(sess.Undeclared()).To(BeEmpty())
	})
})

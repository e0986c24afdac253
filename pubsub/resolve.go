// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package pubsub

import (
	"runtime"

	"github.com/pkg/errors"
)

// ErrResolved is returned when a builder is resolved a second time.
// Resolution consumes the builder.
var ErrResolved = errors.New("pubsub: builder already resolved")

// PublisherResult is the outcome of resolving a PublisherBuilder.
type PublisherResult struct {
	Publisher *Publisher
	Err       error
}

// ready returns a completion already holding v.
//
// This is the asynchronous face of builder resolution: resolution itself
// has no suspension point, so the channel a caller receives on is filled
// and closed before it is returned. No goroutine is involved.
func ready[T any](v T) <-chan T {
	ch := make(chan T, 1)
	ch <- v
	close(ch)
	return ch
}

// resolvable is a builder that knows how to complain about being dropped
// unresolved.
type resolvable interface {
	warnUnresolved()
}

// armUnresolvedWarning attaches a diagnostic to b that fires if b is
// garbage collected without having been resolved. Constructing a builder
// and never resolving it is a latent bug: the intended session call
// silently never happens.
func armUnresolvedWarning(b resolvable) {
	runtime.SetFinalizer(b, func(b resolvable) { b.warnUnresolved() })
}

// disarmUnresolvedWarning clears the diagnostic; called on resolution.
func disarmUnresolvedWarning(b resolvable) {
	runtime.SetFinalizer(b, nil)
}

// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

// Package pubsub provides the publication surface of the middleware: the
// fluent builders that declare publishers and publish or delete samples
// on a session.
//
// The Session itself (transport, routing, the expression table) is an
// external collaborator consumed through the Session interface. This
// package turns user intent into exactly the session calls the intent
// requires, and nothing more: builders are lazy and touch the session
// only when resolved with Wait or Resolve.
//
// Optional Prometheus monitoring can be enabled by registering on
// startup (generally init()) via RegisterMonitoring and wrapping the
// session with MonitorSession.
package pubsub

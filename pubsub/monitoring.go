// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package pubsub

import (
	"sync"

	"github.com/danjacques/gozbus/keyexpr"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	publishersOnlineGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "pubsub_publishers_online",
		Help: "Count of currently-declared publishers.",
	},
		[]string{"key"})

	publicationCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pubsub_publications",
		Help: "Count of publications resolved on a session.",
	},
		[]string{"key", "kind"})

	publicationBytes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pubsub_publication_bytes",
		Help: "Count of payload bytes resolved on a session.",
	},
		[]string{"key", "kind"})

	publicationErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pubsub_publication_errors",
		Help: "Count of errors encountered resolving publications.",
	},
		[]string{"key"})
)

// RegisterMonitoring registers all of this package's monitoring metrics.
func RegisterMonitoring(reg prometheus.Registerer) {
	reg.MustRegister(
		publishersOnlineGauge,
		publicationCount,
		publicationBytes,
		publicationErrors,
	)
}

// MonitorSession wraps s in a monitoring shim. Declarations and
// publications resolved through the returned Session, including those
// issued via Publisher handles declared on it, update this package's
// metrics.
func MonitorSession(s Session) Session {
	return &monitoredSession{
		Session: s,
		keys:    map[EntityID]string{},
	}
}

type monitoredSession struct {
	Session

	mu   sync.Mutex
	keys map[EntityID]string
}

func (ms *monitoredSession) DeclarePublisher(ke keyexpr.K, dst Locality) (EntityID, error) {
	id, err := ms.Session.DeclarePublisher(ke, dst)
	if err != nil {
		return id, err
	}

	ms.mu.Lock()
	ms.keys[id] = ke.String()
	ms.mu.Unlock()

	publishersOnlineGauge.With(prometheus.Labels{"key": ke.String()}).Inc()
	return id, nil
}

func (ms *monitoredSession) UndeclarePublisher(id EntityID) error {
	if err := ms.Session.UndeclarePublisher(id); err != nil {
		return err
	}

	ms.mu.Lock()
	key, ok := ms.keys[id]
	delete(ms.keys, id)
	ms.mu.Unlock()

	if ok {
		publishersOnlineGauge.With(prometheus.Labels{"key": key}).Dec()
	}
	return nil
}

func (ms *monitoredSession) ResolvePut(p *Publication) error {
	key := p.KeyExpr.String()
	if err := ms.Session.ResolvePut(p); err != nil {
		publicationErrors.With(prometheus.Labels{"key": key}).Inc()
		return err
	}

	labels := prometheus.Labels{"key": key, "kind": p.Kind.String()}
	publicationCount.With(labels).Inc()
	publicationBytes.With(labels).Add(float64(p.Payload.Len()))
	return nil
}

// Downgrade wraps the underlying weak reference so publications issued
// through Publisher handles stay monitored.
func (ms *monitoredSession) Downgrade() WeakSession {
	return &monitoredWeak{ms: ms, weak: ms.Session.Downgrade()}
}

type monitoredWeak struct {
	ms   *monitoredSession
	weak WeakSession
}

func (mw *monitoredWeak) Get() (Session, bool) {
	if _, ok := mw.weak.Get(); !ok {
		return nil, false
	}
	return mw.ms, true
}

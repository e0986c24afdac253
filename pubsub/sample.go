// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package pubsub

import (
	"fmt"

	"github.com/google/uuid"
)

// SampleKind tells whether a sample carries a value or retracts one.
type SampleKind uint8

const (
	// SampleKindPut publishes a value.
	SampleKindPut SampleKind = iota
	// SampleKindDelete retracts the value at a key expression. On the
	// wire it is a put with an empty payload and the reserved raw-bytes
	// encoding, flagged as a delete.
	SampleKindDelete
)

// String returns the SampleKind's name.
func (k SampleKind) String() string {
	switch k {
	case SampleKindPut:
		return "put"
	case SampleKindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// EntityID identifies a declared entity (e.g. a publisher) within one
// session.
type EntityID uint32

// GlobalID identifies an entity across sessions.
type GlobalID struct {
	// Session is the id of the session owning the entity.
	Session uuid.UUID
	// Entity is the entity's id within that session.
	Entity EntityID
}

// String renders the GlobalID as "session/entity".
func (g GlobalID) String() string {
	return fmt.Sprintf("%s/%d", g.Session, g.Entity)
}

// Timestamp is a hybrid-logical-clock timestamp produced by an external
// HLC. It is carried opaquely with a sample.
type Timestamp struct {
	// Time is the HLC time in NTP64 format.
	Time uint64
	// ID identifies the clock that produced the timestamp.
	ID uuid.UUID
}

// SourceInfo describes where a sample originated. It is carried opaquely
// with a sample.
type SourceInfo struct {
	// Source identifies the entity that produced the sample.
	Source GlobalID
	// SN is the sample's sequence number at the source.
	SN uint32
}

// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package pubsub

// CongestionControl tells the session what to do with a publication when
// the outbound path is congested.
type CongestionControl uint8

const (
	// CongestionDrop drops the publication under congestion. This is the
	// default.
	CongestionDrop CongestionControl = iota
	// CongestionBlock blocks the publisher until the publication can be
	// routed.
	CongestionBlock
)

// String returns the CongestionControl's name.
func (c CongestionControl) String() string {
	switch c {
	case CongestionDrop:
		return "drop"
	case CongestionBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Priority orders publications relative to each other. Lower values are
// more urgent.
type Priority uint8

const (
	// PriorityRealTime is the most urgent priority.
	PriorityRealTime Priority = iota + 1
	// PriorityInteractiveHigh is for high-urgency interactive traffic.
	PriorityInteractiveHigh
	// PriorityInteractiveLow is for low-urgency interactive traffic.
	PriorityInteractiveLow
	// PriorityDataHigh is for high-urgency data traffic.
	PriorityDataHigh
	// PriorityData is for ordinary data traffic. This is the default.
	PriorityData
	// PriorityDataLow is for low-urgency data traffic.
	PriorityDataLow
	// PriorityBackground is the least urgent priority.
	PriorityBackground
)

// PriorityDefault is the priority applied when none is configured.
const PriorityDefault = PriorityData

// String returns the Priority's name.
func (p Priority) String() string {
	switch p {
	case PriorityRealTime:
		return "real_time"
	case PriorityInteractiveHigh:
		return "interactive_high"
	case PriorityInteractiveLow:
		return "interactive_low"
	case PriorityDataHigh:
		return "data_high"
	case PriorityData:
		return "data"
	case PriorityDataLow:
		return "data_low"
	case PriorityBackground:
		return "background"
	default:
		return "unknown"
	}
}

// Reliability is a delivery hint attached to publications.
//
// It does not trigger any retransmission; it is a marker the session may
// use to pick the most suitable link.
type Reliability uint8

const (
	// BestEffort allows the session to drop the publication in transit.
	// This is the default.
	BestEffort Reliability = iota
	// Reliable asks the session to prefer lossless links.
	Reliable
)

// String returns the Reliability's name.
func (r Reliability) String() string {
	switch r {
	case BestEffort:
		return "best_effort"
	case Reliable:
		return "reliable"
	default:
		return "unknown"
	}
}

// Locality restricts which subscribers may receive a publication,
// relative to the publishing session.
type Locality uint8

const (
	// LocalityAny delivers to local and remote subscribers alike. This is
	// the default.
	LocalityAny Locality = iota
	// LocalitySessionLocal delivers only to subscribers on the publishing
	// session.
	LocalitySessionLocal
	// LocalityRemote delivers only to subscribers on other sessions.
	LocalityRemote
)

// String returns the Locality's name.
func (l Locality) String() string {
	switch l {
	case LocalityAny:
		return "any"
	case LocalitySessionLocal:
		return "session_local"
	case LocalityRemote:
		return "remote"
	default:
		return "unknown"
	}
}

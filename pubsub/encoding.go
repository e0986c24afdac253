// Copyright 2018 Dan Jacques. All rights reserved.
// Use of this source code is governed under the MIT License
// that can be found in the LICENSE file.

package pubsub

import "fmt"

// Encoding describes how a payload's bytes should be interpreted.
//
// An Encoding pairs a numeric id, which is what actually travels with a
// sample, with an optional free-form schema refining it. The id space is
// shared with the session; EncodingZBytes's id is reserved and must not
// be reassigned.
type Encoding struct {
	id     uint16
	schema string
}

// Reserved and well-known encodings.
var (
	// EncodingZBytes is raw, uninterpreted bytes. Its id is the reserved
	// on-wire value for payload-less samples such as deletes.
	EncodingZBytes = Encoding{id: 0}
	// EncodingOctetStream is an opaque application byte stream.
	EncodingOctetStream = Encoding{id: 1}
	// EncodingTextPlain is plain UTF-8 text.
	EncodingTextPlain = Encoding{id: 2}
	// EncodingAppJSON is a JSON document.
	EncodingAppJSON = Encoding{id: 3}
)

var encodingNames = map[uint16]string{
	0: "zenoh/bytes",
	1: "application/octet-stream",
	2: "text/plain",
	3: "application/json",
}

// ID returns the Encoding's numeric id.
func (e Encoding) ID() uint16 { return e.id }

// Schema returns the Encoding's schema, or "" when none is set.
func (e Encoding) Schema() string { return e.schema }

// WithSchema returns a copy of e carrying the given schema.
func (e Encoding) WithSchema(schema string) Encoding {
	e.schema = schema
	return e
}

// Equal returns true if o names the same encoding as e.
func (e Encoding) Equal(o Encoding) bool { return e == o }

// String renders the Encoding as "name" or "name;schema".
func (e Encoding) String() string {
	name, ok := encodingNames[e.id]
	if !ok {
		name = fmt.Sprintf("encoding/%d", e.id)
	}
	if e.schema == "" {
		return name
	}
	return name + ";" + e.schema
}

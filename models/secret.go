// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// SecretID is the backend-assigned identifier of a [Secret].
//
// The backend is free to encode it as a JSON number or a JSON string, so the
// client keeps it as an opaque string and never does arithmetic on it.
// Numeric ids are written back as JSON numbers to preserve the wire shape.
type SecretID string

// String returns the id as it is used in request paths.
func (id SecretID) String() string {
	return string(id)
}

// UnmarshalJSON accepts a JSON number, a JSON string or null.
func (id *SecretID) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode secret id: %w", err)
	}

	switch v := raw.(type) {
	case json.Number:
		*id = SecretID(v.String())
	case string:
		*id = SecretID(v)
	case nil:
		*id = ""
	default:
		return fmt.Errorf("unsupported secret id: %s", string(b))
	}

	return nil
}

// MarshalJSON writes integer ids as numbers and everything else as strings.
func (id SecretID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Secret is one stored credential entry owned by the authenticated user.
// The backend is the source of truth; a client-side copy is a cache.
type Secret struct {
	// ID is assigned by the backend and never changes afterwards.
	ID SecretID `json:"id"`

	Title    string `json:"title"`
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Website  string `json:"website"`
	Note     string `json:"note"`
}

// Fields returns the mutable part of the record.
func (s Secret) Fields() SecretFields {
	return SecretFields{
		Title:    s.Title,
		Username: s.Username,
		Password: s.Password,
		Note:     s.Note,
		Email:    s.Email,
		Website:  s.Website,
	}
}

// SecretFields is the set of mutable fields of a [Secret]. It is the request
// body of both create and update calls; Title is required for creation.
type SecretFields struct {
	Title    string `json:"title"`
	Username string `json:"username"`
	Password string `json:"password"`
	Note     string `json:"note"`
	Email    string `json:"email"`
	Website  string `json:"website"`
}

// WithID builds a full record from the fields and the given id.
func (f SecretFields) WithID(id SecretID) Secret {
	return Secret{
		ID:       id,
		Title:    f.Title,
		Username: f.Username,
		Password: f.Password,
		Email:    f.Email,
		Website:  f.Website,
		Note:     f.Note,
	}
}

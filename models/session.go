// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Session is an authenticated account session.
type Session struct {
	DID        string `json:"did"`
	Handle     string `json:"handle"`
	AccessJwt  string `json:"accessJwt"`
	RefreshJwt string `json:"refreshJwt"`
}

// Valid reports whether the session carries an identity and a token.
func (s Session) Valid() bool {
	return s.DID != "" && s.AccessJwt != ""
}

// Credentials are the login inputs for an app-password session.
type Credentials struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// errNoServersAreCreated is returned when no HTTP handler was built.
	errNoServersAreCreated = errors.New("no servers are created")

	// errNoListenAddress is returned for an empty API listen address.
	errNoListenAddress = errors.New("api listen address is empty")
)

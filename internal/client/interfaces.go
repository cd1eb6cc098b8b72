// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/sky-shelf/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// UI is the interactive part of the client.
type UI interface {
	// LoginFlow asks the user for credentials until a session exists.
	LoginFlow(ctx context.Context) (models.Session, error)

	// MainLoop runs the collection browser and reports a logout request.
	MainLoop(ctx context.Context) (logout bool, err error)
}

// Background runs work next to the UI, such as the refresh job.
type Background interface {
	Run(ctx context.Context)
	Stop()
}

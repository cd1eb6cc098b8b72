// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It restores or creates the account session, starts the background refresh
// job and runs the terminal browser until the user quits.
package client

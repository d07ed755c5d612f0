// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Thripura Sri

// Package client implements the interactive client application runtime.
//
// It wires the terminal UI flows, the client services, the capture engine
// and the background session probe into a single process lifecycle.
package client

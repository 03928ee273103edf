// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package dispatch maps a task name and key=value parameters to a fail-fast batch of steps and runs it.
package dispatch

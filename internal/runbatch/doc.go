// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runbatch runs a task as a tree of Runnables and reports a tree of Results.
//
// An OSCommand spawns one external process, streams its output live and keeps a bounded
// copy for the report. A SerialBatch runs its children in order and stops at the first
// failure: every later child is reported as skipped and never started.
package runbatch

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tasklist renders the tasks of a task file for the terminal.
package tasklist

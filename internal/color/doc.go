// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color wraps strings in ANSI escape codes for the result report and the log handler.
// Colour is disabled when NO_COLOR is set, forced on by FORCE_COLOR,
// and otherwise follows whether stderr is a terminal.
package color

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package expand turns step command lines into argv slices.
// Variables are resolved from task parameters, then task file vars, then the process environment.
// Unset and empty variables expand to nothing, so they never produce an empty argument.
package expand

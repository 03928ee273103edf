// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commands turns task file step definitions into runnables.
// Each step type has a Commander, looked up by the step's type through a CommanderFactory.
package commands

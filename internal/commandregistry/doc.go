// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commandregistry provides a registry for step types and their commanders.
// It satisfies the commands.CommanderFactory interface.
package commandregistry

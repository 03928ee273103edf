// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package taskfile loads task definitions.
//
// A task file declares variables and an ordered list of named tasks, each an ordered list of steps.
// YAML and HCL are supported. When no file is found the embedded default is used,
// which provides the deps, lint and run tasks of the movement_primitives project.
package taskfile

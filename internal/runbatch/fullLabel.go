// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runbatch

import (
	"slices"
	"strings"
)

// FullLabel returns the labels from the root down to r, joined by " > ".
func FullLabel(r Runnable) string {
	if r == nil {
		return "Unknown"
	}

	var labels []string
	for n := r; n != nil; n = n.GetParent() {
		labels = append(labels, n.GetLabel())
	}

	slices.Reverse(labels)

	return strings.Join(labels, " > ")
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package taskfile

import (
	"errors"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// hclVars is decoded first so that tasks can refer to var.NAME.
type hclVars struct {
	Vars   map[string]string `hcl:"vars,optional"`
	Remain hcl.Body          `hcl:",remain"`
}

type hclTasks struct {
	Tasks []*Task `hcl:"task,block"`
}

// environ is the source of env.NAME values in HCL files.
var environ = os.Environ

// ParseHCL decodes an HCL task file.
//
//	vars = { PROJECT_NAME = "movement_primitives" }
//
//	task "lint" {
//	  step "format" {
//	    command = "black src/${var.PROJECT_NAME}"
//	  }
//	}
//
// HCL interpolates ${...} itself; write $name or $${name} to leave expansion to the step.
func ParseHCL(data []byte, filename string) (*File, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, errors.Join(ErrParse, diags)
	}

	ectx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": stringObject(envMap()),
		},
		Functions: functions(),
	}

	var vars hclVars
	if diags := gohcl.DecodeBody(file.Body, ectx, &vars); diags.HasErrors() {
		return nil, errors.Join(ErrParse, diags)
	}

	ectx = ectx.NewChild()
	ectx.Variables = map[string]cty.Value{
		"var": stringObject(vars.Vars),
	}

	var tasks hclTasks
	if diags := gohcl.DecodeBody(vars.Remain, ectx, &tasks); diags.HasErrors() {
		return nil, errors.Join(ErrParse, diags)
	}

	return &File{
		Vars:   vars.Vars,
		Tasks:  tasks.Tasks,
		Source: filename,
	}, nil
}

func envMap() map[string]string {
	env := make(map[string]string)

	for _, kv := range environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			env[k] = v
		}
	}

	return env
}

func stringObject(m map[string]string) cty.Value {
	vals := make(map[string]cty.Value, len(m))
	for k, v := range m {
		vals[k] = cty.StringVal(v)
	}

	return cty.ObjectVal(vals)
}

func functions() map[string]function.Function {
	return map[string]function.Function{
		"lower":     stdlib.LowerFunc,
		"upper":     stdlib.UpperFunc,
		"trimspace": stdlib.TrimSpaceFunc,
		"join":      stdlib.JoinFunc,
		"format":    stdlib.FormatFunc,
		"coalesce":  stdlib.CoalesceFunc,
	}
}

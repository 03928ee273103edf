// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package schema documents the task file format. It reads the yaml and docdesc
// struct tags of the task file types and renders them as JSON Schema or Markdown.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"

	"github.com/matt-FFFFFF/mptask/internal/taskfile"
)

const (
	// FormatJSON renders a JSON Schema document.
	FormatJSON = "json"
	// FormatMarkdown renders Markdown tables.
	FormatMarkdown = "markdown"

	jsonSchemaDraft = "https://json-schema.org/draft/2020-12/schema"
)

var (
	// ErrNotStruct is returned when fields are requested for a non-struct type.
	ErrNotStruct = errors.New("expected struct type")
	// ErrUnknownFormat is returned for formats other than json and markdown.
	ErrUnknownFormat = errors.New("unknown schema format, use json or markdown")
)

// Field describes one key of the task file.
type Field struct {
	Name        string
	Type        string
	Description string
	Required    bool
	ItemType    string  // Element type of arrays and maps of scalars.
	Items       []Field // Fields of array elements that are structs.
}

// Fields returns the documented fields of the struct v points to, recursing into slices of structs.
func Fields(v any) ([]Field, error) {
	return extractFields(reflect.TypeOf(v))
}

// Write renders the task file schema in format. stepTypes fills the enum of the step type key.
func Write(w io.Writer, format string, stepTypes []string) error {
	fields, err := Fields(&taskfile.File{})
	if err != nil {
		return err
	}

	switch strings.ToLower(format) {
	case "", FormatJSON:
		return writeJSONSchema(w, fields, stepTypes)
	case FormatMarkdown:
		return writeMarkdown(w, fields, stepTypes)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func extractFields(t reflect.Type) ([]Field, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w, got %s", ErrNotStruct, t.Kind())
	}

	fields := make([]Field, 0, t.NumField())

	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		yamlTag := sf.Tag.Get("yaml")
		if yamlTag == "-" {
			continue
		}

		name, opts, _ := strings.Cut(yamlTag, ",")
		if name == "" {
			name = strings.ToLower(sf.Name)
		}

		f := Field{
			Name:        name,
			Type:        schemaType(sf.Type),
			Description: sf.Tag.Get("docdesc"),
			Required:    !strings.Contains(opts, "omitempty"),
		}

		switch elem := deref(sf.Type); {
		case sf.Type.Kind() == reflect.Slice && deref(elem.Elem()).Kind() == reflect.Struct:
			items, err := extractFields(elem.Elem())
			if err != nil {
				return nil, err
			}

			f.Items = items
		case sf.Type.Kind() == reflect.Slice, sf.Type.Kind() == reflect.Map:
			f.ItemType = schemaType(elem.Elem())
		}

		fields = append(fields, f)
	}

	return sortFields(fields), nil
}

func deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t
}

func schemaType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Ptr:
		return schemaType(t.Elem())
	default:
		return "string"
	}
}

// sortFields orders fields as type, name, the remaining scalars lexically, then nested lists.
func sortFields(fields []Field) []Field {
	rank := func(f Field) int {
		switch {
		case f.Name == "type":
			return 0
		case f.Name == "name":
			return 1
		case len(f.Items) > 0:
			return 3 //nolint:mnd
		default:
			return 2 //nolint:mnd
		}
	}

	slices.SortStableFunc(fields, func(a, b Field) int {
		if ra, rb := rank(a), rank(b); ra != rb {
			return ra - rb
		}

		if len(a.Items) > 0 {
			return 0
		}

		return strings.Compare(a.Name, b.Name)
	})

	return fields
}

func writeJSONSchema(w io.Writer, fields []Field, stepTypes []string) error {
	root := object(fields, stepTypes)
	root["$schema"] = jsonSchemaDraft
	root["title"] = "mptask task file"
	root["description"] = "Tasks run by mptask, written as YAML or HCL"

	b, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return err //nolint:wrapcheck
	}

	_, err = fmt.Fprintln(w, string(b))

	return err //nolint:wrapcheck
}

func object(fields []Field, stepTypes []string) map[string]any {
	properties := make(map[string]any, len(fields))
	required := make([]string, 0, len(fields))

	for _, f := range fields {
		properties[f.Name] = property(f, stepTypes)

		if f.Required {
			required = append(required, f.Name)
		}
	}

	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

func property(f Field, stepTypes []string) map[string]any {
	prop := map[string]any{
		"type": f.Type,
	}

	if f.Description != "" {
		prop["description"] = f.Description
	}

	switch {
	case len(f.Items) > 0:
		prop["items"] = object(f.Items, stepTypes)
	case f.Type == "array":
		prop["items"] = map[string]any{"type": f.ItemType}
	case f.Type == "object" && f.ItemType != "":
		prop["additionalProperties"] = map[string]any{"type": f.ItemType}
	}

	if f.Name == "type" && len(stepTypes) > 0 {
		prop["enum"] = stepTypes
	}

	return prop
}

func writeMarkdown(w io.Writer, fields []Field, stepTypes []string) error {
	var sb strings.Builder

	sb.WriteString("# mptask task file\n\n")
	sb.WriteString("Task files are YAML (`.yaml`, `.yml`) or HCL (`.hcl`). ")
	sb.WriteString("In HCL, tasks, params and steps are labelled blocks: `task \"run\" { step \"car racing\" { ... } }`.\n")

	if len(stepTypes) > 0 {
		fmt.Fprintf(&sb, "\nStep types: `%s`.\n", strings.Join(stepTypes, "`, `"))
	}

	writeTable(&sb, "Top level", "", fields)

	_, err := io.WriteString(w, sb.String())

	return err //nolint:wrapcheck
}

func writeTable(sb *strings.Builder, title, path string, fields []Field) {
	fmt.Fprintf(sb, "\n## %s\n\n", title)
	sb.WriteString("| Key | Type | Required | Description |\n")
	sb.WriteString("|-----|------|----------|-------------|\n")

	for _, f := range fields {
		required := "no"
		if f.Required {
			required = "yes"
		}

		fmt.Fprintf(sb, "| `%s` | %s | %s | %s |\n", f.Name, typeText(f), required, f.Description)
	}

	for _, f := range fields {
		if len(f.Items) == 0 {
			continue
		}

		p := path + f.Name + "[]"
		writeTable(sb, "`"+p+"`", p+".", f.Items)
	}
}

func typeText(f Field) string {
	switch {
	case len(f.Items) > 0:
		return "list of objects"
	case f.Type == "array":
		return "list of " + f.ItemType
	case f.Type == "object" && f.ItemType != "":
		return "map of " + f.ItemType
	default:
		return f.Type
	}
}

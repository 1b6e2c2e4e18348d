// Copyright 2026 The Midi Studio Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"os"
	"reflect"

	"github.com/spf13/pflag"
)

// JSONOutput is an embeddable struct that adds --json output support
// to a command. Commands register the flag in their FlagSet via
// [JSONOutput.AddFlag] and call [JSONOutput.EmitJSON] at the top of
// their Run function:
//
//	if done, err := params.EmitJSON(entries); done {
//	    return err
//	}
//	// ... text formatting ...
type JSONOutput struct {
	OutputJSON bool
}

// AddFlag registers the --json flag on the given flag set.
func (j *JSONOutput) AddFlag(flagSet *pflag.FlagSet) {
	flagSet.BoolVar(&j.OutputJSON, "json", false, "output as JSON")
}

// EmitJSON writes result as indented JSON to stdout if --json is set.
// Returns (true, nil) on success, (true, err) on write failure, or
// (false, nil) when --json is not set and the caller should proceed
// with text formatting.
//
// Nil slices are normalized to empty slices before serialization, so
// callers never need to guard against null JSON output.
func (j *JSONOutput) EmitJSON(result any) (bool, error) {
	if !j.OutputJSON {
		return false, nil
	}
	return true, WriteJSON(normalizeNilSlice(result))
}

// WriteJSON marshals value as indented JSON and writes it to stdout.
// This is the low-level output function. Most commands should use
// [JSONOutput.EmitJSON] instead, which handles the --json flag check
// and nil-slice normalization automatically.
func WriteJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

// normalizeNilSlice returns an empty slice of the same type if value
// is a nil slice, so that JSON serialization produces [] instead of
// null. Returns value unchanged for all other types.
func normalizeNilSlice(value any) any {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Slice && v.IsNil() {
		return reflect.MakeSlice(v.Type(), 0, 0).Interface()
	}
	return value
}

/*
SPDX-FileCopyrightText: 2025 Deutsche Telekom AG

SPDX-License-Identifier: Apache-2.0
*/

package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"sigs.k8s.io/yaml"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatWide     Format = "wide"
	FormatTemplate Format = "template"
)

func ParseFormat(value string) (Format, error) {
	switch f := Format(value); f {
	case FormatTable, FormatJSON, FormatYAML, FormatWide, FormatTemplate:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown output format: %s", value)
	}
}

// Tabular reports whether the format is rendered by a resource specific
// table writer.
func (f Format) Tabular() bool {
	return f == FormatTable || f == FormatWide
}

func WriteObject(w io.Writer, format Format, obj any) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		// Marshals through JSON so keys match the -o json output.
		data, err := yaml.Marshal(obj)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(w, string(data))
		return err
	case FormatTable:
		return fmt.Errorf("table format requires a specific formatter")
	case FormatWide:
		return fmt.Errorf("wide format requires a specific formatter")
	case FormatTemplate:
		return fmt.Errorf("template format requires a template")
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// WriteTemplate executes text against obj with the sprig function map
// available.
func WriteTemplate(w io.Writer, text string, obj any) error {
	if text == "" {
		return errors.New("template is empty")
	}
	tmpl, err := template.New("output").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	if err := tmpl.Execute(w, obj); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}

// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package docs

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Markdown renders document trees as GitHub-flavoured markdown.
type Markdown struct{}

// Format implements the Backend interface.
func (p Markdown) Format(d Docs, fileMap map[string]string) (string, error) {
	var builder strings.Builder
	//
	if err := p.format(&builder, d, fileMap); err != nil {
		return "", err
	}
	//
	return builder.String(), nil
}

//nolint:errcheck
func (p Markdown) format(builder *strings.Builder, d Docs, fileMap map[string]string) error {
	switch d := d.(type) {
	case File:
		return p.formatFile(builder, d, fileMap)
	case Paragraphs:
		for _, item := range d.Items {
			builder.WriteString("- ")
			//
			if err := p.format(builder, item, fileMap); err != nil {
				return err
			}
			//
			builder.WriteString("\n\n")
		}
	case List:
		for _, item := range d.Items {
			builder.WriteString("- ")
			//
			if err := p.format(builder, item, fileMap); err != nil {
				return err
			}
			//
			builder.WriteString("\n")
		}
	case Table:
		return p.formatTable(builder, d, fileMap)
	case Macro:
		plural := "s"
		if d.ArgCount == 1 {
			plural = ""
		}
		//
		fmt.Fprintf(builder, "`%s` (%d argument%s)", d.Name, d.ArgCount, plural)
	case Define:
		fmt.Fprintf(builder, "`%s`", d.Name)
	case InlineCode:
		fmt.Fprintf(builder, "`%s`", d.Code)
	case Text:
		builder.WriteString(d.Text)
	case CellLines:
		for i, line := range d.Lines {
			if i > 0 {
				builder.WriteString("<br>")
			}
			//
			if err := p.format(builder, line, fileMap); err != nil {
				return err
			}
		}
	case ResolveFile:
		target, ok := fileMap[d.Path]
		if !ok {
			return fmt.Errorf("no documentation location known for %s", d.Path)
		}
		//
		fmt.Fprintf(builder, "[%s](%s)", filepath.Base(d.Path), target)
	case Concat:
		for _, item := range d.Items {
			if err := p.format(builder, item, fileMap); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown document node %T", d)
	}
	//
	return nil
}

//nolint:errcheck
func (p Markdown) formatFile(builder *strings.Builder, d File, fileMap map[string]string) error {
	builder.WriteString("<!-- This file was generated by go-asmdoc. -->\n")
	fmt.Fprintf(builder, "# %s\n\n", filepath.Base(d.Path))
	//
	sections := []struct {
		title string
		body  Docs
	}{
		{"Symbols", d.Symbols},
		{"Defines", d.Defines},
		{"Macros", d.Macros},
	}
	//
	for _, section := range sections {
		if section.body == nil || section.body.IsEmpty() {
			continue
		}
		//
		fmt.Fprintf(builder, "## %s\n", section.title)
		//
		if err := p.format(builder, section.body, fileMap); err != nil {
			return err
		}
		//
		builder.WriteString("\n")
	}
	//
	return nil
}

//nolint:errcheck
func (p Markdown) formatTable(builder *strings.Builder, d Table, fileMap map[string]string) error {
	builder.WriteString("\n| ")
	//
	for _, col := range d.Header {
		if err := p.format(builder, col, fileMap); err != nil {
			return err
		}
		//
		builder.WriteString(" |")
	}
	//
	builder.WriteString("\n| ")
	//
	for range d.Header {
		builder.WriteString("--- |")
	}
	//
	builder.WriteString("\n")
	//
	for _, row := range d.Rows {
		builder.WriteString("| ")
		//
		for _, col := range row {
			if err := p.format(builder, col, fileMap); err != nil {
				return err
			}
			//
			builder.WriteString(" |")
		}
		//
		builder.WriteString("\n")
	}
	//
	return nil
}

// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/bureau-foundation/mapstring/lib/plain"
)

type luaRenderer struct{}

func (luaRenderer) Format() Format    { return FormatLua }
func (luaRenderer) Extension() string { return ".lua" }
func (luaRenderer) Binary() bool      { return false }

// Render writes tree as a Lua table constructor. Object members use
// the bracketed key form so that any key is valid; sequences use
// positional fields. Every field ends with a comma, which Lua allows.
//
//	{
//	  ["seed"] = 123370734,
//	  ["starting_points"] = {
//	    {
//	      ["x"] = 0,
//	      ["y"] = 0,
//	    },
//	  },
//	}
func (luaRenderer) Render(w io.Writer, tree any) error {
	writer := bufio.NewWriter(w)
	if err := writeLuaValue(writer, tree, 0); err != nil {
		return err
	}
	writer.WriteByte('\n')
	return writer.Flush()
}

const luaIndent = "  "

func writeLuaValue(writer *bufio.Writer, value any, depth int) error {
	switch typed := value.(type) {
	case nil:
		writer.WriteString("nil")
	case bool:
		writer.WriteString(strconv.FormatBool(typed))
	case int64:
		writer.WriteString(strconv.FormatInt(typed, 10))
	case float64:
		writer.WriteString(luaNumber(typed))
	case string:
		writer.WriteString(luaQuote(typed))
	case plain.Object:
		if len(typed) == 0 {
			writer.WriteString("{}")
			return nil
		}
		writer.WriteString("{\n")
		for _, member := range typed {
			writer.WriteString(strings.Repeat(luaIndent, depth+1))
			writer.WriteString("[")
			writer.WriteString(luaQuote(member.Key))
			writer.WriteString("] = ")
			if err := writeLuaValue(writer, member.Value, depth+1); err != nil {
				return fmt.Errorf("%s: %w", member.Key, err)
			}
			writer.WriteString(",\n")
		}
		writer.WriteString(strings.Repeat(luaIndent, depth))
		writer.WriteString("}")
	case []any:
		if len(typed) == 0 {
			writer.WriteString("{}")
			return nil
		}
		writer.WriteString("{\n")
		for index, item := range typed {
			writer.WriteString(strings.Repeat(luaIndent, depth+1))
			if err := writeLuaValue(writer, item, depth+1); err != nil {
				return fmt.Errorf("[%d]: %w", index, err)
			}
			writer.WriteString(",\n")
		}
		writer.WriteString(strings.Repeat(luaIndent, depth))
		writer.WriteString("}")
	default:
		return fmt.Errorf("cannot render %T as Lua", value)
	}
	return nil
}

// luaNumber formats a float as a Lua numeral. Lua has no literals for
// the non-finite values, so they are written as expressions.
func luaNumber(value float64) string {
	switch {
	case math.IsNaN(value):
		return "(0/0)"
	case math.IsInf(value, 1):
		return "math.huge"
	case math.IsInf(value, -1):
		return "-math.huge"
	}
	return strconv.FormatFloat(value, 'g', -1, 64)
}

// luaQuote returns text as a double-quoted Lua string literal. Control
// bytes are written as decimal escapes; other bytes pass through, as
// Lua strings are byte strings.
func luaQuote(text string) string {
	var builder strings.Builder
	builder.Grow(len(text) + 2)
	builder.WriteByte('"')
	for index := 0; index < len(text); index++ {
		b := text[index]
		switch b {
		case '"':
			builder.WriteString(`\"`)
		case '\\':
			builder.WriteString(`\\`)
		case '\n':
			builder.WriteString(`\n`)
		case '\r':
			builder.WriteString(`\r`)
		case '\t':
			builder.WriteString(`\t`)
		default:
			if b < 0x20 || b == 0x7f {
				// Three digits, so a following digit cannot extend
				// the escape.
				fmt.Fprintf(&builder, `\%03d`, b)
			} else {
				builder.WriteByte(b)
			}
		}
	}
	builder.WriteByte('"')
	return builder.String()
}

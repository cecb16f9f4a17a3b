// Package ident turns untrusted strings into identifiers that are safe to
// interpolate into DDL and DML statements.
//
// Ident and Prefix can only be obtained through the functions in this package,
// so any code that builds SQL from an Ident is working with a sanitized name.
package ident

import (
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
)

const (
	// MaxTableNameLen bounds the length of a sanitized table name.
	MaxTableNameLen = 80
	// MaxPrefixLen bounds the length of a sanitized type prefix.
	MaxPrefixLen = 60

	// FallbackTableName is used when a table name sanitizes to nothing.
	FallbackTableName = "object_unnamed"
	// FallbackPrefix is used when a type prefix sanitizes to nothing.
	FallbackPrefix = "object"
)

// dynamicPattern matches the names produced by Prefix.Table.
var dynamicPattern = regexp.MustCompile(`^[A-Za-z0-9-]+_[0-9]+$`)

// Ident is a sanitized table name.
type Ident struct {
	name string
}

// String returns the bare identifier.
func (i Ident) String() string { return i.name }

// IsZero reports whether the identifier was never produced by the sanitizer.
func (i Ident) IsZero() bool { return i.name == "" }

// Quoted returns the identifier wrapped in double quotes. Sanitized names never
// contain quotes, so no escaping is needed.
func (i Ident) Quoted() string { return `"` + i.name + `"` }

// SequenceName returns the name of the sequence backing the table's row ids.
// Hex keeps it collision free between names that differ only in '-' vs '_'.
func (i Ident) SequenceName() string {
	return "seq_" + hex.EncodeToString([]byte(i.name))
}

// IsDynamic reports whether the name has the prefix_<digits> shape of an
// allocated object table.
func (i Ident) IsDynamic() bool { return dynamicPattern.MatchString(i.name) }

// MarshalText lets an Ident be used directly in JSON responses.
func (i Ident) MarshalText() ([]byte, error) { return []byte(i.name), nil }

// Prefix is a sanitized type prefix used as the stem of allocated table names.
type Prefix struct {
	name string
}

// String returns the bare prefix.
func (p Prefix) String() string { return p.name }

// Table builds prefix_seq and sanitizes the result again so the length cap
// holds for the concatenation too.
func (p Prefix) Table(seq int) Ident {
	return TableName(p.name + "_" + strconv.Itoa(seq))
}

// Sequence parses the numeric suffix of name if it is literally prefix_<digits>.
// The prefix comparison ignores case because DuckDB identifiers do.
func (p Prefix) Sequence(name string) (int, bool) {
	if len(name) <= len(p.name)+1 || !strings.EqualFold(name[:len(p.name)], p.name) || name[len(p.name)] != '_' {
		return 0, false
	}
	digits := name[len(p.name)+1:]
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// TableName sanitizes raw into a table name: ASCII alphanumerics, '-' and '_'
// only, at most MaxTableNameLen characters, FallbackTableName when empty.
func TableName(raw string) Ident {
	s := strip(raw, true, MaxTableNameLen)
	if s == "" {
		s = FallbackTableName
	}
	return Ident{name: s}
}

// TypePrefix sanitizes raw into a type prefix: ASCII alphanumerics and '-'
// only, at most MaxPrefixLen characters, FallbackPrefix when empty.
func TypePrefix(raw string) Prefix {
	s := strip(raw, false, MaxPrefixLen)
	if s == "" {
		s = FallbackPrefix
	}
	return Prefix{name: s}
}

// FromValue sanitizes a decoded JSON value into a table name. Non-string
// values get the fallback name, like empty strings do.
func FromValue(v any) Ident {
	s, ok := v.(string)
	if !ok {
		return Ident{name: FallbackTableName}
	}
	return TableName(s)
}

// Existing wraps a name read back from the schema catalog. Names that would
// not survive sanitization unchanged are rejected.
func Existing(name string) (Ident, bool) {
	if name == "" || strip(name, true, MaxTableNameLen) != name {
		return Ident{}, false
	}
	return Ident{name: name}, true
}

func strip(raw string, underscore bool, max int) string {
	var b strings.Builder
	for i := 0; i < len(raw) && b.Len() < max; i++ {
		c := raw[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
			b.WriteByte(c)
		case c == '_' && underscore:
			b.WriteByte(c)
		}
	}
	return b.String()
}

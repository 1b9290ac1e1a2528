// ABOUTME: Parameterized SQL builder shared by the SQLite and Postgres keyword stores
// ABOUTME: Validates identifiers and emits dialect specific placeholders

package query

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Placeholder selects the bind parameter syntax
type Placeholder int

const (
	// Question emits ? placeholders (SQLite)
	Question Placeholder = iota
	// Dollar emits $1, $2 placeholders (Postgres)
	Dollar
)

const maxKeywordLength = 255

var (
	safeNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

	allowedOperators = map[string]bool{
		"=": true, "!=": true, ">": true, "<": true, ">=": true, "<=": true,
	}
)

// Builder assembles a single statement
type Builder struct {
	style  Placeholder
	query  strings.Builder
	params []interface{}
	where  bool
	err    error
}

// New creates a builder for the given placeholder style
func New(style Placeholder) *Builder {
	return &Builder{style: style}
}

func validateName(name string) error {
	if name == "" {
		return errors.New("name cannot be empty")
	}
	if len(name) > 64 {
		return fmt.Errorf("name too long: %s (max 64 characters)", name)
	}
	if !safeNamePattern.MatchString(name) {
		return fmt.Errorf("invalid name: %s (only alphanumeric and underscore allowed)", name)
	}
	return nil
}

func (b *Builder) check(names ...string) bool {
	if b.err != nil {
		return false
	}
	for _, n := range names {
		if err := validateName(n); err != nil {
			b.err = err
			return false
		}
	}
	return true
}

func (b *Builder) bind(v interface{}) string {
	b.params = append(b.params, v)
	if b.style == Dollar {
		return "$" + strconv.Itoa(len(b.params))
	}
	return "?"
}

// Select starts a SELECT over table
func (b *Builder) Select(table string, columns ...string) *Builder {
	if !b.check(append([]string{table}, columns...)...) {
		return b
	}
	cols := "*"
	if len(columns) > 0 {
		cols = strings.Join(columns, ", ")
	}
	b.query.WriteString("SELECT " + cols + " FROM " + table)
	return b
}

// Where adds an AND-ed parameterized condition
func (b *Builder) Where(column, operator string, value interface{}) *Builder {
	if !b.check(column) {
		return b
	}
	if !allowedOperators[operator] {
		b.err = fmt.Errorf("operator not allowed: %s", operator)
		return b
	}

	if b.where {
		b.query.WriteString(" AND ")
	} else {
		b.query.WriteString(" WHERE ")
		b.where = true
	}
	b.query.WriteString(column + " " + operator + " " + b.bind(value))
	return b
}

// Order is one ORDER BY term
type Order struct {
	Column string
	Desc   bool
}

// OrderBy appends an ORDER BY clause
func (b *Builder) OrderBy(terms ...Order) *Builder {
	if len(terms) == 0 {
		return b
	}
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		if !b.check(t.Column) {
			return b
		}
		dir := "ASC"
		if t.Desc {
			dir = "DESC"
		}
		parts = append(parts, t.Column+" "+dir)
	}
	b.query.WriteString(" ORDER BY " + strings.Join(parts, ", "))
	return b
}

// Page appends LIMIT and OFFSET
func (b *Builder) Page(limit, offset int) *Builder {
	if b.err != nil {
		return b
	}
	b.query.WriteString(" LIMIT " + b.bind(limit) + " OFFSET " + b.bind(offset))
	return b
}

// Upsert builds INSERT ... ON CONFLICT (keys) DO UPDATE for the non-key columns
func (b *Builder) Upsert(table string, keys []string, columns []string, values []interface{}) *Builder {
	if len(columns) != len(values) {
		b.err = errors.New("columns and values length mismatch")
		return b
	}
	if !b.check(append(append([]string{table}, keys...), columns...)...) {
		return b
	}

	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = b.bind(v)
	}

	isKey := make(map[string]bool, len(keys))
	for _, k := range keys {
		isKey[k] = true
	}
	updates := make([]string, 0, len(columns))
	for _, c := range columns {
		if !isKey[c] {
			updates = append(updates, c+" = excluded."+c)
		}
	}

	b.query.WriteString("INSERT INTO " + table + " (" + strings.Join(columns, ", ") + ") VALUES (" +
		strings.Join(placeholders, ", ") + ") ON CONFLICT (" + strings.Join(keys, ", ") + ")")
	if len(updates) == 0 {
		b.query.WriteString(" DO NOTHING")
	} else {
		b.query.WriteString(" DO UPDATE SET " + strings.Join(updates, ", "))
	}
	return b
}

// Build returns the statement and its parameters
func (b *Builder) Build() (string, []interface{}, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	return b.query.String(), b.params, nil
}

// ValidateKeyword rejects keyword text that cannot be stored
func ValidateKeyword(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("keyword cannot be empty")
	}
	if len(text) > maxKeywordLength {
		return fmt.Errorf("keyword too long: max %d bytes", maxKeywordLength)
	}
	if strings.Contains(text, "\x00") {
		return errors.New("keyword cannot contain null bytes")
	}
	return nil
}

// Package schema compares a live table definition against the columns the
// tag repositories expect.
package schema

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Column describes one table column as reported by the database catalog.
type Column struct {
	Name     string
	DataType string
	Nullable bool
}

// Check returns an error listing every expected column that is missing from
// actual or differs in type or nullability. Types are compared case-insensitively.
// Extra columns in actual are ignored.
func Check(table string, expected, actual []Column) error {
	byName := make(map[string]Column, len(actual))
	for _, c := range actual {
		byName[c.Name] = c
	}

	var missing, mismatched []string
	for _, want := range expected {
		got, ok := byName[want.Name]
		if !ok {
			missing = append(missing, want.Name)
			continue
		}

		if !strings.EqualFold(got.DataType, want.DataType) {
			mismatched = append(mismatched,
				fmt.Sprintf("%s: expected %s, got %s", want.Name, want.DataType, strings.ToLower(got.DataType)))
		}

		if got.Nullable != want.Nullable {
			mismatched = append(mismatched,
				fmt.Sprintf("%s: expected nullable=%v, got nullable=%v", want.Name, want.Nullable, got.Nullable))
		}
	}

	if len(missing) == 0 && len(mismatched) == 0 {
		return nil
	}

	slices.Sort(missing)

	var msg strings.Builder
	fmt.Fprintf(&msg, "table %s schema validation failed:\n", table)
	if len(missing) > 0 {
		fmt.Fprintf(&msg, "  missing columns: %s\n", strings.Join(missing, ", "))
	}
	if len(mismatched) > 0 {
		msg.WriteString("  mismatched columns:\n")
		for _, m := range mismatched {
			fmt.Fprintf(&msg, "    - %s\n", m)
		}
	}

	return errors.New(msg.String())
}

// TagsTable lists the columns of the tag table for a backend, given the
// catalog's spelling of the id, text and timestamp types.
func TagsTable(idType, textType, timeType string) []Column {
	return []Column{
		{Name: "id", DataType: idType, Nullable: false},
		{Name: "tag", DataType: textType, Nullable: true},
		{Name: "filename", DataType: textType, Nullable: false},
		{Name: "created_at", DataType: timeType, Nullable: false},
	}
}

package formschema

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type FilterKind string

const (
	FilterNone FilterKind = ""
	// FilterContains matches when the cell contains the query, ignoring case.
	FilterContains FilterKind = "contains"
	// FilterIncludes matches when the cell equals one of the comma separated query values.
	FilterIncludes FilterKind = "includes"
)

type Column struct {
	ID            string     `json:"id"`
	AccessorKey   string     `json:"accessorKey,omitempty"`
	Header        string     `json:"header,omitempty"`
	Size          int        `json:"size"`
	EnableSorting bool       `json:"enableSorting"`
	EnableHiding  bool       `json:"enableHiding"`
	Filter        FilterKind `json:"filterFn,omitempty"`
	Custom        bool       `json:"custom"`
}

const customColumnSize = 120

func dataColumn(key, header string, size int) Column {
	accessor := "data." + key
	return Column{
		ID:            accessor,
		AccessorKey:   accessor,
		Header:        header,
		Size:          size,
		EnableSorting: true,
		EnableHiding:  true,
		Filter:        FilterContains,
	}
}

// BuildColumns returns the entrant table layout: selection, the fixed data
// fields, status, one column per custom field in template order, creation
// time and row actions.
func BuildColumns(t Template) []Column {
	cols := []Column{
		{ID: "select", Size: 40},
		dataColumn(FieldName, "Name", 120),
		dataColumn(FieldEmail, "Email", 150),
		dataColumn(FieldAddress, "Address", 150),
		dataColumn(FieldPhoneNumber, "Phone Number", 120),
		dataColumn(FieldNotes, "Notes", 150),
		{
			ID:            "status",
			AccessorKey:   "status",
			Header:        "Status",
			Size:          80,
			EnableSorting: true,
			EnableHiding:  true,
			Filter:        FilterIncludes,
		},
	}

	for _, f := range t {
		col := dataColumn(f.Name, Capitalize(f.Name), customColumnSize)
		col.Custom = true
		cols = append(cols, col)
	}

	return append(cols,
		Column{
			ID:            "createdAt",
			AccessorKey:   "createdAt",
			Header:        "Created At",
			Size:          90,
			EnableSorting: true,
			EnableHiding:  true,
		},
		Column{ID: "actions", Size: 40},
	)
}

// Matches applies the column filter to a cell value. An empty query or a
// column without a filter matches everything.
func (c Column) Matches(cell, query string) bool {
	if query == "" {
		return true
	}

	switch c.Filter {
	case FilterContains:
		return strings.Contains(strings.ToLower(cell), strings.ToLower(query))
	case FilterIncludes:
		for _, v := range strings.Split(query, ",") {
			if strings.TrimSpace(v) == cell {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// DataKey returns the data map key for a data.<key> column.
func (c Column) DataKey() (string, bool) {
	return strings.CutPrefix(c.AccessorKey, "data.")
}

// Capitalize upper-cases the first rune only.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

package transaction

import (
	"strconv"
	"strings"
	"time"
)

// Field names a record attribute a predicate can test.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldPrice       Field = "price"
	FieldDateOfSale  Field = "dateOfSale"
)

// Op is the kind of a predicate node.
type Op int

const (
	OpAll Op = iota
	OpAnd
	OpOr
	OpContains
	OpDateRange
)

// Predicate is a small boolean expression over a Transaction. Stores either
// evaluate it with Match or translate it into their own query language.
type Predicate struct {
	Op       Op
	Field    Field
	Value    string
	Start    time.Time
	End      time.Time
	Children []Predicate
}

// All matches every record.
func All() Predicate {
	return Predicate{Op: OpAll}
}

// And matches when every child matches. Match-all children are dropped.
func And(children ...Predicate) Predicate {
	kept := make([]Predicate, 0, len(children))

	for _, c := range children {
		if c.Op == OpAll {
			continue
		}

		kept = append(kept, c)
	}

	switch len(kept) {
	case 0:
		return All()
	case 1:
		return kept[0]
	}

	return Predicate{Op: OpAnd, Children: kept}
}

// Or matches when any child matches. A match-all child, or no children at
// all, makes the whole group match everything.
func Or(children ...Predicate) Predicate {
	if len(children) == 0 {
		return All()
	}

	for _, c := range children {
		if c.Op == OpAll {
			return All()
		}
	}

	if len(children) == 1 {
		return children[0]
	}

	return Predicate{Op: OpOr, Children: children}
}

// Contains is a case-insensitive literal substring test on the field's text
// form. An empty needle matches everything.
func Contains(f Field, needle string) Predicate {
	if needle == "" {
		return All()
	}

	return Predicate{Op: OpContains, Field: f, Value: needle}
}

// DateRange matches records sold in [start, end).
func DateRange(start, end time.Time) Predicate {
	return Predicate{Op: OpDateRange, Field: FieldDateOfSale, Start: start, End: end}
}

// InMonth is DateRange over a calendar month.
func InMonth(m Month) Predicate {
	return DateRange(m.Start, m.End)
}

// ListFilter composes the listing query: the month pattern AND any of the
// searchable fields containing the search text.
func ListFilter(month, search string) Predicate {
	return And(
		Contains(FieldDateOfSale, month),
		Or(
			Contains(FieldTitle, search),
			Contains(FieldDescription, search),
			Contains(FieldPrice, search),
		),
	)
}

func (p Predicate) Match(tx *Transaction) bool {
	switch p.Op {
	case OpAll:
		return true
	case OpAnd:
		for _, c := range p.Children {
			if !c.Match(tx) {
				return false
			}
		}

		return true
	case OpOr:
		for _, c := range p.Children {
			if c.Match(tx) {
				return true
			}
		}

		return false
	case OpContains:
		return strings.Contains(strings.ToLower(FieldText(tx, p.Field)), strings.ToLower(p.Value))
	case OpDateRange:
		return !tx.DateOfSale.Before(p.Start) && tx.DateOfSale.Before(p.End)
	}

	return false
}

// FieldText is the textual form of a field used by Contains.
func FieldText(tx *Transaction, f Field) string {
	switch f {
	case FieldTitle:
		return tx.Title
	case FieldDescription:
		return tx.Description
	case FieldPrice:
		return strconv.FormatFloat(tx.Price, 'f', -1, 64)
	case FieldDateOfSale:
		return FormatDate(tx.DateOfSale)
	}

	return ""
}

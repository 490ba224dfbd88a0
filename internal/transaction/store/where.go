package store

import (
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/salesdash/internal/transaction"
)

// fieldText mirrors transaction.FieldText on the SQL side.
var fieldText = map[transaction.Field]string{
	transaction.FieldTitle:       "title",
	transaction.FieldDescription: "description",
	transaction.FieldPrice:       "price::text",
	transaction.FieldDateOfSale:  `to_char(date_of_sale AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS"Z"')`,
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildWhere renders p as a WHERE clause with numbered placeholders.
func buildWhere(p transaction.Predicate) (string, []any) {
	var args []any

	clause := compile(p, &args)

	return clause, args
}

func compile(p transaction.Predicate, args *[]any) string {
	switch p.Op {
	case transaction.OpAll:
		return "TRUE"
	case transaction.OpAnd, transaction.OpOr:
		sep := " AND "
		if p.Op == transaction.OpOr {
			sep = " OR "
		}

		parts := make([]string, len(p.Children))
		for i, c := range p.Children {
			parts[i] = compile(c, args)
		}

		return "(" + strings.Join(parts, sep) + ")"
	case transaction.OpContains:
		col, ok := fieldText[p.Field]
		if !ok {
			return "FALSE"
		}

		*args = append(*args, likeEscaper.Replace(p.Value))

		return fmt.Sprintf(`%s ILIKE '%%' || $%d || '%%' ESCAPE '\'`, col, len(*args))
	case transaction.OpDateRange:
		*args = append(*args, p.Start, p.End)
		n := len(*args)

		return fmt.Sprintf("(date_of_sale >= $%d AND date_of_sale < $%d)", n-1, n)
	}

	return "FALSE"
}

package storage

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/scholarsearch/internal/domain/search/predicate"
)

// columns maps filterable fields to SQL columns. Anything outside it is rejected.
var columns = map[predicate.Field]string{
	predicate.FieldID:          "id",
	predicate.FieldName:        "name",
	predicate.FieldDescription: "description",
	predicate.FieldAmount:      "amount",
	predicate.FieldLocation:    "location",
	predicate.FieldType:        "type",
	predicate.FieldReligious:   "religious",
	predicate.FieldGender:      "gender",
	predicate.FieldMinAge:      "min_age",
	predicate.FieldMaxAge:      "max_age",
	predicate.FieldCategory:    "category",
	predicate.FieldInstitution: "institution_name",
	predicate.FieldDeadline:    "deadline",
	predicate.FieldIncome:      "income",
	predicate.FieldDisability:  "disability",
	predicate.FieldExService:   "ex_service",
	predicate.FieldIsActive:    "is_active",
}

func column(f predicate.Field) (string, error) {
	c, ok := columns[f]
	if !ok {
		return "", fmt.Errorf("storage: unknown field %q", f)
	}
	return c, nil
}

// compiler renders a predicate tree into a WHERE clause with bound arguments.
// Operand values only ever travel in args.
type compiler struct {
	d    dialect
	b    strings.Builder
	args []any
}

func newCompiler(d dialect) *compiler {
	return &compiler{d: d}
}

func (c *compiler) bind(v any) string {
	c.args = append(c.args, v)
	return c.d.param(len(c.args))
}

func (c *compiler) bindNumeric(v float64) string {
	c.args = append(c.args, v)
	return c.d.numeric(len(c.args))
}

func (c *compiler) where(p predicate.Predicate) (string, error) {
	if err := c.node(p.Root()); err != nil {
		return "", err
	}
	return c.b.String(), nil
}

func (c *compiler) node(n predicate.Node) error {
	switch n.Op() {
	case predicate.OpCond:
		return c.cond(n.Condition())
	case predicate.OpAnd, predicate.OpOr:
		children := n.Children()
		if len(children) == 0 {
			if n.Op() == predicate.OpAnd {
				c.b.WriteString("1=1")
			} else {
				c.b.WriteString("1=0")
			}
			return nil
		}
		sep := " AND "
		if n.Op() == predicate.OpOr {
			sep = " OR "
		}
		c.b.WriteByte('(')
		for i, ch := range children {
			if i > 0 {
				c.b.WriteString(sep)
			}
			if err := c.node(ch); err != nil {
				return err
			}
		}
		c.b.WriteByte(')')
		return nil
	default:
		return fmt.Errorf("storage: unknown node op %d", n.Op())
	}
}

func (c *compiler) cond(cd predicate.Condition) error {
	col, err := column(cd.Field())
	if err != nil {
		return err
	}

	switch cd.Kind() {
	case predicate.KindBoolEq:
		fmt.Fprintf(&c.b, "%s = %s", col, c.bind(cd.Flag()))
	case predicate.KindContains:
		pattern := "%" + escapeLike(strings.ToLower(cd.Text())) + "%"
		fmt.Fprintf(&c.b, `LOWER(%s) LIKE %s ESCAPE '\'`, col, c.bind(pattern))
	case predicate.KindEqualFold:
		fmt.Fprintf(&c.b, "LOWER(%s) = %s", col, c.bind(strings.ToLower(cd.Text())))
	case predicate.KindWord:
		pattern := "%" + escapeLike(predicate.WordPadded(cd.Text())) + "%"
		fmt.Fprintf(&c.b, `(' ' || %s || ' ') LIKE %s ESCAPE '\'`, spaceSeparators("LOWER("+col+")"), c.bind(pattern))
	case predicate.KindRange:
		b := cd.Bounds()
		var parts []string
		if b.Gte != nil {
			parts = append(parts, fmt.Sprintf("%s >= %s", col, c.bindNumeric(*b.Gte)))
		}
		if b.Lte != nil {
			parts = append(parts, fmt.Sprintf("%s <= %s", col, c.bindNumeric(*b.Lte)))
		}
		switch len(parts) {
		case 0:
			c.b.WriteString("1=1")
		case 1:
			c.b.WriteString(parts[0])
		default:
			c.b.WriteString("(" + strings.Join(parts, " AND ") + ")")
		}
	case predicate.KindIn:
		ids := cd.IDs()
		if len(ids) == 0 {
			c.b.WriteString("1=0")
			return nil
		}
		ph := make([]string, len(ids))
		for i, id := range ids {
			ph[i] = c.bind(id)
		}
		fmt.Fprintf(&c.b, "%s IN (%s)", col, strings.Join(ph, ", "))
	default:
		return fmt.Errorf("storage: unknown condition kind %d on %q", cd.Kind(), cd.Field())
	}
	return nil
}

// orderBy renders ORDER BY for o with id as the final tie-breaker.
func orderBy(o predicate.Order) (string, error) {
	parts := make([]string, 0, 2*len(o)+1)
	for _, k := range o {
		col, err := column(k.Field)
		if err != nil {
			return "", err
		}
		// NULL placement is explicit: drivers disagree on the default.
		if k.NullsLast {
			parts = append(parts, "("+col+" IS NULL) ASC")
		} else {
			parts = append(parts, "("+col+" IS NULL) DESC")
		}
		dir := "ASC"
		if k.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	parts = append(parts, "id ASC")
	return "ORDER BY " + strings.Join(parts, ", "), nil
}

// spaceSeparators wraps expr in REPLACE calls that turn every
// predicate.WordSeparators character into a space.
func spaceSeparators(expr string) string {
	for _, r := range predicate.WordSeparators {
		expr = fmt.Sprintf("REPLACE(%s, '%c', ' ')", expr, r)
	}
	return expr
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE metacharacters so s matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

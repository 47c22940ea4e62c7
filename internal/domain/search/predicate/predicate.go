// Package predicate is a typed AND/OR condition tree over scholarship columns.
// Values travel as data, never as query text: stores compile the tree into
// parameterized statements.
package predicate

import (
	"fmt"
	"strings"
)

// wordSpacer maps every WordSeparators character to a space.
var wordSpacer = strings.NewReplacer(",", " ", ";", " ", "/", " ", "(", " ", ")", " ", "&", " ", "-", " ", ".", " ")

// WordPadded lowercases s, turns separators into spaces and pads both ends,
// so a word test becomes a substring test for " word ".
func WordPadded(s string) string {
	return " " + wordSpacer.Replace(strings.ToLower(s)) + " "
}

// Field is a filterable scholarship column.
type Field string

// Filterable columns.
const (
	FieldID          Field = "id"
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldAmount      Field = "amount"
	FieldLocation    Field = "location"
	FieldType        Field = "type"
	FieldReligious   Field = "religious"
	FieldGender      Field = "gender"
	FieldMinAge      Field = "min_age"
	FieldMaxAge      Field = "max_age"
	FieldCategory    Field = "category"
	FieldInstitution Field = "institution_name"
	FieldDeadline    Field = "deadline"
	FieldIncome      Field = "income"
	FieldDisability  Field = "disability"
	FieldExService   Field = "ex_service"
	FieldIsActive    Field = "is_active"
)

// Kind is the comparison a Condition performs.
type Kind uint8

// Condition kinds.
const (
	KindBoolEq    Kind = iota + 1 // boolean equality
	KindContains                  // case-insensitive substring
	KindEqualFold                 // case-insensitive equality
	KindRange                     // numeric range, inclusive bounds
	KindIn                        // id set membership
	KindWord                      // case-insensitive whole word
)

// WordSeparators are the characters that, besides spaces, delimit words for
// ContainsWord. Stores normalise them to spaces before matching.
const WordSeparators = ",;/()&-."

// Bounds is an inclusive numeric interval. A nil side is unbounded.
type Bounds struct {
	Gte *float64
	Lte *float64
}

// Condition is a single column test.
type Condition struct {
	field  Field
	kind   Kind
	text   string
	flag   bool
	bounds Bounds
	ids    []int64
}

// BoolEq matches rows where field equals v. NULL never matches.
func BoolEq(field Field, v bool) Condition {
	return Condition{field: field, kind: KindBoolEq, flag: v}
}

// Contains matches rows where field contains s, ignoring case.
func Contains(field Field, s string) Condition {
	return Condition{field: field, kind: KindContains, text: s}
}

// ContainsWord matches rows where field contains s as a whole word, ignoring case.
// "Male, Female" contains the word "male"; "Female" does not.
func ContainsWord(field Field, s string) Condition {
	return Condition{field: field, kind: KindWord, text: s}
}

// EqualFold matches rows where field equals s, ignoring case.
func EqualFold(field Field, s string) Condition {
	return Condition{field: field, kind: KindEqualFold, text: s}
}

// Between matches rows where field lies within b.
func Between(field Field, b Bounds) Condition {
	return Condition{field: field, kind: KindRange, bounds: b}
}

// In matches rows whose field is one of ids.
func In(field Field, ids []int64) Condition {
	cp := make([]int64, len(ids))
	copy(cp, ids)
	return Condition{field: field, kind: KindIn, ids: cp}
}

// Field returns the tested column.
func (c Condition) Field() Field { return c.field }

// Kind returns the comparison kind.
func (c Condition) Kind() Kind { return c.kind }

// Text returns the operand of Contains, ContainsWord and EqualFold.
func (c Condition) Text() string { return c.text }

// Flag returns the operand of BoolEq.
func (c Condition) Flag() bool { return c.flag }

// Bounds returns the operand of Between.
func (c Condition) Bounds() Bounds { return c.bounds }

// IDs returns the operand of In.
func (c Condition) IDs() []int64 { return c.ids }

func (c Condition) String() string {
	switch c.kind {
	case KindBoolEq:
		return fmt.Sprintf("%s = %t", c.field, c.flag)
	case KindContains:
		return fmt.Sprintf("%s ~ %q", c.field, c.text)
	case KindEqualFold:
		return fmt.Sprintf("%s =~ %q", c.field, c.text)
	case KindWord:
		return fmt.Sprintf("%s ~w %q", c.field, c.text)
	case KindRange:
		var parts []string
		if c.bounds.Gte != nil {
			parts = append(parts, fmt.Sprintf("%s >= %g", c.field, *c.bounds.Gte))
		}
		if c.bounds.Lte != nil {
			parts = append(parts, fmt.Sprintf("%s <= %g", c.field, *c.bounds.Lte))
		}
		if len(parts) == 0 {
			return "true"
		}
		return strings.Join(parts, " AND ")
	case KindIn:
		return fmt.Sprintf("%s IN %v", c.field, c.ids)
	default:
		return "?"
	}
}

// Op is a node operator.
type Op uint8

// Node operators.
const (
	OpCond Op = iota
	OpAnd
	OpOr
)

// Node is a condition leaf or an AND/OR group.
// An empty AND is true, an empty OR is false.
type Node struct {
	op       Op
	cond     Condition
	children []Node
}

// Leaf wraps a condition into a node.
func Leaf(c Condition) Node { return Node{op: OpCond, cond: c} }

// And conjoins nodes.
func And(nodes ...Node) Node { return Node{op: OpAnd, children: nodes} }

// Or disjoins nodes.
func Or(nodes ...Node) Node { return Node{op: OpOr, children: nodes} }

// Op returns the node operator.
func (n Node) Op() Op { return n.op }

// Condition returns the leaf condition. Only meaningful for OpCond.
func (n Node) Condition() Condition { return n.cond }

// Children returns group members. Nil for leaves.
func (n Node) Children() []Node { return n.children }

// References reports whether any leaf under n tests field.
func (n Node) References(field Field) bool {
	if n.op == OpCond {
		return n.cond.field == field
	}
	for _, c := range n.children {
		if c.References(field) {
			return true
		}
	}
	return false
}

func (n Node) String() string {
	switch n.op {
	case OpCond:
		return n.cond.String()
	case OpAnd, OpOr:
		if len(n.children) == 0 {
			if n.op == OpAnd {
				return "true"
			}
			return "false"
		}
		sep := " AND "
		if n.op == OpOr {
			sep = " OR "
		}
		parts := make([]string, len(n.children))
		for i, c := range n.children {
			parts[i] = c.String()
		}
		return "(" + strings.Join(parts, sep) + ")"
	default:
		return "?"
	}
}

// Predicate is a filter tree whose root always conjoins is_active = true.
type Predicate struct {
	root Node
}

// New builds a predicate from dimension constraints.
// Constraints that touch is_active are dropped so the mandatory condition
// cannot be contradicted or widened.
func New(constraints ...Node) Predicate {
	children := make([]Node, 0, len(constraints)+1)
	children = append(children, Leaf(BoolEq(FieldIsActive, true)))
	for _, c := range constraints {
		if c.References(FieldIsActive) {
			continue
		}
		children = append(children, c)
	}
	return Predicate{root: And(children...)}
}

// Active matches every active record.
func Active() Predicate { return New() }

// Root returns the full tree, including the is_active condition.
func (p Predicate) Root() Node {
	if p.root.op != OpAnd || len(p.root.children) == 0 {
		return Active().root
	}
	return p.root
}

// Constraints returns the nodes conjoined next to is_active.
func (p Predicate) Constraints() []Node {
	return p.Root().children[1:]
}

// IsActiveOnly reports whether the predicate is equivalent to is_active = true.
func (p Predicate) IsActiveOnly() bool { return len(p.Constraints()) == 0 }

func (p Predicate) String() string { return p.Root().String() }

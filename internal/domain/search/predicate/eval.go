package predicate

import (
	"slices"
	"strings"
	"time"

	"github.com/kailas-cloud/scholarsearch/internal/domain/scholarship"
)

// value is a column read from a record. null mirrors SQL NULL.
type value struct {
	text string
	num  float64
	flag bool
	at   time.Time
	null bool
}

func column(r *scholarship.Scholarship, f Field) value {
	switch f {
	case FieldID:
		return value{num: float64(r.ID)}
	case FieldName:
		return value{text: r.Name}
	case FieldDescription:
		return value{text: r.Description}
	case FieldAmount:
		return value{num: float64(r.Amount)}
	case FieldLocation:
		return value{text: r.Location}
	case FieldType:
		return value{text: r.Type}
	case FieldReligious:
		return value{text: r.Religious}
	case FieldGender:
		return value{text: r.Gender}
	case FieldMinAge:
		return value{num: float64(r.MinAge)}
	case FieldMaxAge:
		return value{num: float64(r.MaxAge)}
	case FieldCategory:
		return value{text: r.Category}
	case FieldInstitution:
		if r.Institution == nil {
			return value{null: true}
		}
		return value{text: *r.Institution}
	case FieldDeadline:
		if r.Deadline == nil {
			return value{null: true}
		}
		return value{at: *r.Deadline}
	case FieldIncome:
		if r.Income == nil {
			return value{null: true}
		}
		return value{num: float64(*r.Income)}
	case FieldDisability:
		if r.Disability == nil {
			return value{null: true}
		}
		return value{flag: *r.Disability}
	case FieldExService:
		if r.ExService == nil {
			return value{null: true}
		}
		return value{flag: *r.ExService}
	case FieldIsActive:
		return value{flag: r.IsActive}
	default:
		return value{null: true}
	}
}

// Matches evaluates the predicate against a record in memory,
// with the same NULL semantics a SQL store applies.
func (p Predicate) Matches(r *scholarship.Scholarship) bool {
	return p.Root().matches(r)
}

func (n Node) matches(r *scholarship.Scholarship) bool {
	switch n.op {
	case OpCond:
		return n.cond.matches(r)
	case OpAnd:
		for _, c := range n.children {
			if !c.matches(r) {
				return false
			}
		}
		return true
	case OpOr:
		for _, c := range n.children {
			if c.matches(r) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (c Condition) matches(r *scholarship.Scholarship) bool {
	v := column(r, c.field)
	if v.null {
		return false
	}
	switch c.kind {
	case KindBoolEq:
		return v.flag == c.flag
	case KindContains:
		return strings.Contains(strings.ToLower(v.text), strings.ToLower(c.text))
	case KindEqualFold:
		return strings.EqualFold(v.text, c.text)
	case KindWord:
		return strings.Contains(WordPadded(v.text), WordPadded(c.text))
	case KindRange:
		if c.bounds.Gte != nil && v.num < *c.bounds.Gte {
			return false
		}
		if c.bounds.Lte != nil && v.num > *c.bounds.Lte {
			return false
		}
		return true
	case KindIn:
		return slices.Contains(c.ids, r.ID)
	default:
		return false
	}
}

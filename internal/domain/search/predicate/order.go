package predicate

import (
	"cmp"
	"strings"

	"github.com/kailas-cloud/scholarsearch/internal/domain/scholarship"
)

// SortKey orders by one column.
type SortKey struct {
	Field     Field
	Desc      bool
	NullsLast bool
}

// Order is a list of sort keys applied left to right.
type Order []SortKey

// DefaultOrder puts the nearest deadline first, open-ended deadlines last,
// and larger awards first within the same deadline.
func DefaultOrder() Order {
	return Order{
		{Field: FieldDeadline, NullsLast: true},
		{Field: FieldAmount, Desc: true},
	}
}

// Compare orders two records by o. Records equal on every key compare as 0.
func (o Order) Compare(a, b *scholarship.Scholarship) int {
	for _, k := range o {
		if c := k.compare(a, b); c != 0 {
			return c
		}
	}
	return 0
}

func (k SortKey) compare(a, b *scholarship.Scholarship) int {
	va, vb := column(a, k.Field), column(b, k.Field)
	switch {
	case va.null && vb.null:
		return 0
	case va.null:
		if k.NullsLast {
			return 1
		}
		return -1
	case vb.null:
		if k.NullsLast {
			return -1
		}
		return 1
	}

	var c int
	switch k.Field {
	case FieldDeadline:
		c = va.at.Compare(vb.at)
	case FieldName, FieldDescription, FieldLocation, FieldType, FieldReligious,
		FieldGender, FieldCategory, FieldInstitution:
		c = strings.Compare(va.text, vb.text)
	case FieldDisability, FieldExService, FieldIsActive:
		c = cmp.Compare(boolRank(va.flag), boolRank(vb.flag))
	default:
		c = cmp.Compare(va.num, vb.num)
	}
	if k.Desc {
		return -c
	}
	return c
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

package filters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kailas-cloud/scholarsearch/internal/domain"
)

// Coercion limits.
const (
	// MaxKeywords caps fallback keywords taken from one query.
	MaxKeywords = 10
	// MaxValuesPerField rejects payloads that list implausibly many values.
	MaxValuesPerField = 16
)

// aliases maps accepted payload keys to canonical field names.
var aliases = map[string]string{
	"category":         "category",
	"categories":       "category",
	"location":         "location",
	"locations":        "location",
	"type":             "type",
	"types":            "type",
	"institution":      "institution",
	"institution_name": "institution",
	"gender":           "gender",
	"religious":        "religious",
	"religion":         "religious",
	"amount":           "amount",
	"income":           "income",
	"age":              "age",
	"disability":       "disability",
	"ex_service":       "ex_service",
	"exService":        "ex_service",
	"keywords":         "keywords",
}

// Coerce turns an extraction payload into Filters.
// Scalars are promoted to one-element sets, missing fields become empty sets,
// enums are uppercased or Title-cased and must be known. Anything that does not
// coerce cleanly fails with an error wrapping domain.ErrExtractionMalformed,
// and no partial result is returned.
func Coerce(payload []byte) (Filters, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var fields map[string]json.RawMessage
	if err := dec.Decode(&fields); err != nil {
		return Filters{}, fmt.Errorf("%w: %w", domain.ErrExtractionMalformed, err)
	}
	if fields == nil {
		return Filters{}, fmt.Errorf("%w: payload is not an object", domain.ErrExtractionMalformed)
	}
	if dec.More() {
		return Filters{}, fmt.Errorf("%w: trailing data after object", domain.ErrExtractionMalformed)
	}

	canon := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		if name, ok := aliases[k]; ok {
			if _, dup := canon[name]; dup {
				return Filters{}, domain.NewMalformedField(name, "given more than once")
			}
			canon[name] = v
		}
	}

	f := New()
	var err error

	if f.Category, err = coerceEnum(canon, "category", ParseCategory); err != nil {
		return Filters{}, err
	}
	if f.Gender, err = coerceEnum(canon, "gender", ParseGender); err != nil {
		return Filters{}, err
	}
	if f.Religious, err = coerceEnum(canon, "religious", ParseReligion); err != nil {
		return Filters{}, err
	}
	if f.Location, err = coerceText(canon, "location"); err != nil {
		return Filters{}, err
	}
	if f.Type, err = coerceText(canon, "type"); err != nil {
		return Filters{}, err
	}
	if f.Institution, err = coerceText(canon, "institution"); err != nil {
		return Filters{}, err
	}
	if f.Amount, err = coerceRange(canon, "amount"); err != nil {
		return Filters{}, err
	}
	if f.Income, err = coerceRange(canon, "income"); err != nil {
		return Filters{}, err
	}
	if f.Age, err = coerceRange(canon, "age"); err != nil {
		return Filters{}, err
	}
	if f.Disability, err = coerceBool(canon, "disability"); err != nil {
		return Filters{}, err
	}
	if f.ExService, err = coerceBool(canon, "ex_service"); err != nil {
		return Filters{}, err
	}
	if f.Keywords, err = coerceKeywords(canon); err != nil {
		return Filters{}, err
	}
	return f, nil
}

// stringSet decodes null, a string, or an array of strings.
func stringSet(fields map[string]json.RawMessage, name string) ([]string, error) {
	raw, ok := fields[name]
	if !ok {
		return nil, nil
	}
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		return nil, nil
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, domain.NewMalformedField(name, err.Error())
		}
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		return []string{s}, nil
	case raw[0] == '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, domain.NewMalformedField(name, err.Error())
		}
		if len(items) > MaxValuesPerField {
			return nil, domain.NewMalformedField(name, fmt.Sprintf("more than %d values", MaxValuesPerField))
		}
		out := make([]string, 0, len(items))
		for i, item := range items {
			var s string
			if err := json.Unmarshal(item, &s); err != nil {
				return nil, domain.NewMalformedField(name, fmt.Sprintf("element %d is not a string", i))
			}
			if strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		return out, nil
	default:
		return nil, domain.NewMalformedField(name, "expected string or array of strings")
	}
}

func coerceEnum[T ~string](fields map[string]json.RawMessage, name string, parse func(string) (T, bool)) ([]T, error) {
	values, err := stringSet(fields, name)
	if err != nil {
		return nil, err
	}
	out := []T{}
	for _, v := range values {
		parsed, ok := parse(v)
		if !ok {
			return nil, domain.NewMalformedField(name, fmt.Sprintf("unknown value %q", v))
		}
		out = AppendUnique(out, parsed)
	}
	return out, nil
}

func coerceText(fields map[string]json.RawMessage, name string) ([]string, error) {
	values, err := stringSet(fields, name)
	if err != nil {
		return nil, err
	}
	out := []string{}
	for _, v := range values {
		out = AppendUnique(out, TitleCase(v))
	}
	return out, nil
}

func coerceKeywords(fields map[string]json.RawMessage) ([]string, error) {
	values, err := stringSet(fields, "keywords")
	if err != nil {
		return nil, err
	}
	out := []string{}
	for _, v := range values {
		if len(out) == MaxKeywords {
			break
		}
		out = AppendUnique(out, strings.ToLower(strings.TrimSpace(v)))
	}
	return out, nil
}

func coerceRange(fields map[string]json.RawMessage, name string) (Range, error) {
	raw, ok := fields[name]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return Range{}, nil
	}

	var bounds map[string]json.RawMessage
	if err := json.Unmarshal(raw, &bounds); err != nil || bounds == nil {
		return Range{}, domain.NewMalformedField(name, "expected object with min and max")
	}

	var r Range
	var err error
	if r.Min, err = bound(bounds["min"], name); err != nil {
		return Range{}, err
	}
	if r.Max, err = bound(bounds["max"], name); err != nil {
		return Range{}, err
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return Range{}, domain.NewMalformedField(name, fmt.Sprintf("min %g exceeds max %g", *r.Min, *r.Max))
	}
	return r, nil
}

func bound(raw json.RawMessage, name string) (*float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, domain.NewMalformedField(name, "bound is not a number")
	}
	v, err := n.Float64()
	if err != nil {
		return nil, domain.NewMalformedField(name, err.Error())
	}
	if v < 0 {
		return nil, domain.NewMalformedField(name, "bound is negative")
	}
	return &v, nil
}

func coerceBool(fields map[string]json.RawMessage, name string) (TriState, error) {
	raw, ok := fields[name]
	if !ok {
		return Unknown, nil
	}
	switch string(bytes.TrimSpace(raw)) {
	case "null":
		return Unknown, nil
	case "true":
		return True, nil
	case "false":
		return False, nil
	default:
		return Unknown, domain.NewMalformedField(name, "expected boolean or null")
	}
}

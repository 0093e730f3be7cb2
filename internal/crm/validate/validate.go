// Package validate implements payload normalization and field-level
// validation for inbound create/update requests. Normalization turns UI
// conventions for "nothing entered" into an unset field before the value can
// reach persistence, while explicit nulls pass through untouched so a
// deliberate clear stays a clear.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	errs "github.com/velora/crm/internal/crm/errors"
	"github.com/velora/crm/internal/crm/models"
	"github.com/google/uuid"
)

// uuidRe is the canonical 8-4-4-4-12 form with the version and variant
// nibbles constrained.
var uuidRe = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

// ISODateFormat is the accepted wire format for date fields.
const ISODateFormat = "2006-01-02"

// notSupplied recognizes the string spellings of "nothing entered" that web
// forms produce.
func notSupplied(s string) bool {
	t := strings.TrimSpace(s)
	return t == "" || t == "null" || t == "undefined"
}

// String normalizes an optional string field: empty, whitespace-only,
// "null" and "undefined" all become unset. An explicit JSON null is kept,
// since clearing is a different operation from omitting.
func String(o models.Optional[string]) models.Optional[string] {
	v, ok := o.Get()
	if !ok {
		return o
	}
	if notSupplied(v) {
		return models.Optional[string]{}
	}
	return models.Some(strings.TrimSpace(v))
}

// Number normalizes an optional numeric field: NaN and infinities become
// unset, never zero.
func Number(o models.Optional[float64]) models.Optional[float64] {
	v, ok := o.Get()
	if !ok {
		return o
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return models.Optional[float64]{}
	}
	return o
}

// UUID validates a required UUID-shaped identifier, reporting a field-level
// error naming the field and the expected format on mismatch.
func UUID(field, value string, ve *errs.ValidationError) uuid.UUID {
	if !uuidRe.MatchString(value) {
		ve.Add(field, fmt.Sprintf("%q is not a valid UUID (expected 8-4-4-4-12 hex format)", value))
		return uuid.Nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		ve.Add(field, fmt.Sprintf("%q is not a valid UUID (expected 8-4-4-4-12 hex format)", value))
		return uuid.Nil
	}
	return id
}

// OptionalUUID validates an optional UUID-shaped field after string
// normalization.
func OptionalUUID(field string, o models.Optional[string], ve *errs.ValidationError) models.Optional[uuid.UUID] {
	o = String(o)
	if !o.IsSet() {
		return models.Optional[uuid.UUID]{}
	}
	if o.IsNull() {
		return models.Null[uuid.UUID]()
	}
	v, _ := o.Get()
	id := UUID(field, v, ve)
	if id == uuid.Nil {
		return models.Optional[uuid.UUID]{}
	}
	return models.Some(id)
}

// Date validates an optional ISO date string. The string is kept as-is;
// conversion to a time value happens at the persistence boundary.
func Date(field string, o models.Optional[string], ve *errs.ValidationError) models.Optional[string] {
	o = String(o)
	v, ok := o.Get()
	if !ok {
		return o
	}
	if _, err := time.Parse(ISODateFormat, v); err != nil {
		ve.Add(field, fmt.Sprintf("%q is not a valid ISO date (expected YYYY-MM-DD)", v))
		return models.Optional[string]{}
	}
	return o
}

// enum is the constraint shared by every closed string set in models.
type enum interface {
	~string
	Valid() bool
}

// Enum validates a required member of a closed set. No coercion, no case
// folding; anything outside the set is rejected outright.
func Enum[T enum](field string, value T, ve *errs.ValidationError) {
	if !value.Valid() {
		ve.Add(field, fmt.Sprintf("%q is not a valid value for %s", string(value), field))
	}
}

// OptionalEnum validates an optional member of a closed set after string
// normalization.
func OptionalEnum[T enum](field string, o models.Optional[string], ve *errs.ValidationError) models.Optional[T] {
	o = String(o)
	if !o.IsSet() {
		return models.Optional[T]{}
	}
	if o.IsNull() {
		return models.Null[T]()
	}
	v, _ := o.Get()
	t := T(v)
	if !t.Valid() {
		ve.Add(field, fmt.Sprintf("%q is not a valid value for %s", v, field))
		return models.Optional[T]{}
	}
	return models.Some(t)
}

// Required rejects an unset or blank required string field.
func Required(field string, value string, ve *errs.ValidationError) string {
	if notSupplied(value) {
		ve.Add(field, "required")
		return ""
	}
	return strings.TrimSpace(value)
}

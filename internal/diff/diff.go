// Package diff computes field-level deltas between two snapshots of an
// employee record. Snapshots are plain maps shaped like the record's JSON
// form, so the same comparison works whether a snapshot came from the live
// struct or from a stored audit row.
package diff

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/HammadJahangir123/office-hub-pro/internal/models"
)

// Change holds the serialized before/after values for one field.
type Change struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// Diff maps field name to its before/after pair. A field is present iff its
// serialized values differ between the two snapshots.
type Diff map[string]Change

// Fields never compared: the identifier cannot change and updated_at changes
// on every mutation by definition.
var alwaysExcluded = map[string]struct{}{
	"id":         {},
	"updated_at": {},
}

// Snapshot renders an employee as the map form used for diffing and for the
// JSONB snapshot columns of the audit log. Round-tripping through JSON keeps
// field names and value shapes identical to what the API serves.
func Snapshot(e models.Employee) map[string]any {
	b, err := json.Marshal(e)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return map[string]any{}
	}
	return m
}

// Compute returns the Diff between two snapshots. It is a pure, total
// function: unknown value types fall back to string comparison and never
// fail. Fields absent on one side are treated as null. extraExclude names
// additional fields to skip (the notification path drops bookkeeping fields
// the audit trail keeps).
func Compute(oldSnap, newSnap map[string]any, extraExclude ...string) Diff {
	skip := make(map[string]struct{}, len(alwaysExcluded)+len(extraExclude))
	for f := range alwaysExcluded {
		skip[f] = struct{}{}
	}
	for _, f := range extraExclude {
		skip[f] = struct{}{}
	}

	fields := make(map[string]struct{}, len(oldSnap)+len(newSnap))
	for f := range oldSnap {
		fields[f] = struct{}{}
	}
	for f := range newSnap {
		fields[f] = struct{}{}
	}

	d := make(Diff)
	for f := range fields {
		if _, ok := skip[f]; ok {
			continue
		}
		oldVal := Serialize(oldSnap[f])
		newVal := Serialize(newSnap[f])
		if oldVal != newVal {
			d[f] = Change{Old: oldVal, New: newVal}
		}
	}
	return d
}

// Serialize renders one field value as its canonical comparison string.
// nil (null or absent) becomes the empty string, which no boolean or
// non-empty scalar can collide with. Booleans render as "true"/"false" so
// downstream renderers can map them to Yes/No.
func Serialize(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		// JSON numbers decode as float64; avoid a trailing ".000000".
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case json.Number:
		return t.String()
	default:
		// Slices, maps and anything else compare by their JSON form.
		if b, err := json.Marshal(t); err == nil {
			return string(b)
		}
		return fmt.Sprintf("%v", t)
	}
}

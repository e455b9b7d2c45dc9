// Package projection shapes records into the field groups exposed by the API.
//
// Every kind has a read group, listing the fields emitted in responses, and a
// write group, listing the fields accepted from request bodies. Groups are
// plain ordered field lists; fields that are not listed never leave or enter
// the service, whatever the underlying record holds.
package projection

import (
	"bytes"
	"encoding/json"
	"slices"
)

type Group string

const (
	CategoryRead  Group = "category:read"
	CategoryWrite Group = "category:write"
	EditorRead    Group = "editor:read"
	EditorWrite   Group = "editor:write"
	GameRead      Group = "game:read"
	GameWrite     Group = "game:write"
	UserRead      Group = "user:read"
	UserWrite     Group = "user:write"
)

var groups = map[Group][]string{
	CategoryRead:  {"id", "name"},
	CategoryWrite: {"name"},
	EditorRead:    {"id", "name", "country"},
	EditorWrite:   {"name", "country"},
	GameRead:      {"id", "title", "releaseDate", "description", "category", "editor"},
	GameWrite:     {"title", "releaseDate", "description", "category", "editor"},
	UserRead:      {"id", "email", "roles"},
	UserWrite:     {"email", "password"},
}

// nested names the group used for records embedded in another record.
var nested = map[Group]map[string]Group{
	GameRead: {
		"category": CategoryRead,
		"editor":   EditorRead,
	},
}

// Record is implemented by every entity that can be projected.
type Record interface {
	// Field returns the value of the named field, or nil when the record has
	// no such field or it is unset.
	Field(name string) any
}

// Fields returns the ordered field list of a group.
func Fields(g Group) []string {
	return groups[g]
}

// Contains reports whether the group lists the field.
func Contains(g Group, field string) bool {
	return slices.Contains(Fields(g), field)
}

// Object is a projected record. It marshals to a JSON object whose keys keep
// the order of the group definition.
type Object struct {
	keys   []string
	values map[string]any
}

func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Project copies the fields of the group out of rec.
func Project(g Group, rec Record) *Object {
	fields := Fields(g)
	obj := &Object{
		keys:   make([]string, 0, len(fields)),
		values: make(map[string]any, len(fields)),
	}
	for _, f := range fields {
		v := rec.Field(f)
		if sub, ok := nested[g][f]; ok {
			if r, ok := v.(Record); ok {
				v = Project(sub, r)
			}
		}
		obj.keys = append(obj.keys, f)
		obj.values[f] = v
	}
	return obj
}

// ProjectAll projects every record, preserving order. It never returns nil so
// that empty lists serialise as [].
func ProjectAll[T Record](g Group, recs []T) []*Object {
	out := make([]*Object, 0, len(recs))
	for _, r := range recs {
		out = append(out, Project(g, r))
	}
	return out
}

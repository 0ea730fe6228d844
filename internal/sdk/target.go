package sdk

import "fmt"

// Well-known target fields as printed by `android list targets`.
const (
	KeyID       = "id"
	KeyName     = "Name"
	KeyAPILevel = "API level"
	KeyType     = "Type"
	KeyVendor   = "Vendor"
)

// Target is one record of the build target listing. Fields are kept in the
// order the tool printed them; the key set varies between SDK releases.
type Target struct {
	keys   []string
	values map[string]string
}

// NewTarget returns an empty record.
func NewTarget() Target {
	return Target{values: make(map[string]string)}
}

// Set stores value under key, keeping the key's original position when it
// is already present.
func (t *Target) Set(key, value string) {
	if t.values == nil {
		t.values = make(map[string]string)
	}
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// Get returns the value for key.
func (t Target) Get(key string) (string, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Has reports whether key was set.
func (t Target) Has(key string) bool {
	_, ok := t.values[key]
	return ok
}

// Keys returns field names in insertion order.
func (t Target) Keys() []string {
	return append([]string(nil), t.keys...)
}

// Len returns the number of fields.
func (t Target) Len() int { return len(t.keys) }

// ID returns the target identifier, or "" when absent.
func (t Target) ID() string { return t.values[KeyID] }

// Name returns the Name field, or "" when absent.
func (t Target) Name() string { return t.values[KeyName] }

// Valid reports whether the record carries both an id and a Name.
func (t Target) Valid() bool {
	return t.Has(KeyID) && t.Has(KeyName)
}

// Label is the text shown when choosing a target.
func (t Target) Label() string {
	if api, ok := t.Get(KeyAPILevel); ok {
		return fmt.Sprintf("%s (API Level %s)", t.Name(), api)
	}
	return t.Name()
}

// ValidTargets filters records that carry an id and a Name.
func ValidTargets(targets []Target) []Target {
	var out []Target
	for _, t := range targets {
		if t.Valid() {
			out = append(out, t)
		}
	}
	return out
}

package domain

import (
	"sort"
	"strings"
)

// Registry maps dataset hashes to designer names.
// It is persisted whole as a single JSON object.
type Registry map[string]string

// NewRegistry creates a new empty registry
func NewRegistry() Registry {
	return make(Registry)
}

// Clone returns a copy that can be mutated without touching the original
func (r Registry) Clone() Registry {
	out := make(Registry, len(r))
	for hash, name := range r {
		out[hash] = name
	}
	return out
}

// HasHash checks if a dataset hash is already registered
func (r Registry) HasHash(hash string) bool {
	_, exists := r[hash]
	return exists
}

// HashForName returns the hash registered for a designer name.
// The lookup is a linear scan over the values.
func (r Registry) HashForName(name string) (string, bool) {
	for hash, existing := range r {
		if existing == name {
			return hash, true
		}
	}
	return "", false
}

// HasName checks if a designer name is already registered
func (r Registry) HasName(name string) bool {
	_, exists := r.HashForName(name)
	return exists
}

// Hashes returns the registered hashes in lexical order
func (r Registry) Hashes() []string {
	hashes := make([]string, 0, len(r))
	for hash := range r {
		hashes = append(hashes, hash)
	}
	sort.Strings(hashes)
	return hashes
}

// Count returns the number of registered designers
func (r Registry) Count() int {
	return len(r)
}

// Designer is the read model of one registered dataset
type Designer struct {
	Hash       string `json:"hash"`
	Name       string `json:"name"`
	ImageCount int    `json:"image_count"`
}

// Dataset is a designer together with the files in its folder
type Dataset struct {
	Designer
	Images []string `json:"images"`
}

// SortDesigners orders designers by name, case-insensitively, then by hash
func SortDesigners(designers []Designer) {
	sort.Slice(designers, func(i, j int) bool {
		a, b := strings.ToLower(designers[i].Name), strings.ToLower(designers[j].Name)
		if a != b {
			return a < b
		}
		return designers[i].Hash < designers[j].Hash
	})
}

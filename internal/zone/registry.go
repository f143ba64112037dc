// Package zone maps alert zone labels to delivery-channel addresses.
package zone

import "sort"

// Registry is an immutable label → chat address table. It is built once from
// configuration; hot-reload constructs a new Registry and swaps it atomically,
// so concurrent readers never see a partial table.
type Registry struct {
	byLabel map[string]string
}

// NewRegistry copies the given mapping into a Registry.
func NewRegistry(m map[string]string) *Registry {
	byLabel := make(map[string]string, len(m))
	for label, addr := range m {
		byLabel[label] = addr
	}
	return &Registry{byLabel: byLabel}
}

// Resolve returns the delivery address for a zone label. Unknown labels are
// inert: ok is false and the caller skips the zone.
func (r *Registry) Resolve(label string) (addr string, ok bool) {
	addr, ok = r.byLabel[label]
	return addr, ok
}

// Labels returns all known zone labels, sorted.
func (r *Registry) Labels() []string {
	out := make([]string, 0, len(r.byLabel))
	for label := range r.byLabel {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of known zones.
func (r *Registry) Len() int {
	return len(r.byLabel)
}

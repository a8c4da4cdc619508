package features

import "fmt"

// Entry pairs a Variant with the Processor that implements it.
type Entry struct {
	Variant   Variant
	Processor Processor
}

// Registry keeps processors in benchmark order.
type Registry struct {
	entries []Entry
}

// NewRegistry registers AKAZE, SIFT and ORB on CPU, then SIFT and ORB on the
// given device.
func NewRegistry(device Device) *Registry {
	r := &Registry{}

	for _, alg := range []Algorithm{AKAZE, SIFT, ORB} {
		p := NewCPUProcessor(alg)
		r.Register(p.Variant(), p)
	}
	for _, alg := range []Algorithm{SIFT, ORB} {
		p := NewGPUProcessor(alg, device)
		r.Register(p.Variant(), p)
	}

	return r
}

// Register appends or replaces the processor for v.
func (r *Registry) Register(v Variant, p Processor) {
	for i := range r.entries {
		if r.entries[i].Variant == v {
			r.entries[i].Processor = p
			return
		}
	}
	r.entries = append(r.entries, Entry{Variant: v, Processor: p})
}

func (r *Registry) Get(v Variant) (Processor, error) {
	for _, e := range r.entries {
		if e.Variant == v {
			return e.Processor, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, v)
}

func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Registry) Variants() []Variant {
	out := make([]Variant, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Variant)
	}
	return out
}

package pattern

import "fmt"

// Registry holds the descriptors of every available pattern in
// registration order.
type Registry struct {
	byID  map[string]*Descriptor
	order []string
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Descriptor)}
}

// Register adds d. Registering the same id twice panics; it is a wiring bug.
func (r *Registry) Register(d *Descriptor) {
	if _, dup := r.byID[d.ID]; dup {
		panic(fmt.Sprintf("pattern: %s registered twice", d.ID))
	}
	r.byID[d.ID] = d
	r.order = append(r.order, d.ID)
}

func (r *Registry) Get(id string) (*Descriptor, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPattern, id)
	}
	return d, nil
}

// List returns descriptors in registration order.
func (r *Registry) List() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// New instantiates the pattern id with values layered over its defaults.
func (r *Registry) New(id string, v Values) (Generator, Values, error) {
	d, err := r.Get(id)
	if err != nil {
		return nil, nil, err
	}
	return d.Instantiate(v)
}

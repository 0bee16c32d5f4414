package lineage

import "weak"

// subclassRegistry records direct subclasses without keeping them alive.
// Entries whose class has been collected are dropped on every read and write.
type subclassRegistry struct {
	refs []weak.Pointer[Class]
}

func (r *subclassRegistry) add(c *Class) {
	r.live()
	r.refs = append(r.refs, weak.Make(c))
}

func (r *subclassRegistry) live() []*Class {
	kept := r.refs[:0]
	var out []*Class
	for _, ref := range r.refs {
		if c := ref.Value(); c != nil {
			kept = append(kept, ref)
			out = append(out, c)
		}
	}
	clear(r.refs[len(kept):])
	r.refs = kept
	return out
}

// Subclasses returns the live direct subclasses in creation order.
func (c *Class) Subclasses() []*Class {
	if c == nil {
		return nil
	}
	return c.subclasses.live()
}

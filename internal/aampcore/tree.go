package aampcore

// ParameterObject is an ordered, hash-keyed map of parameters. Iteration
// order is insertion order, used for deterministic text emission.
type ParameterObject struct {
	order  []uint32
	params map[uint32]*Parameter
}

// NewParameterObject builds an empty ParameterObject.
func NewParameterObject() *ParameterObject {
	return &ParameterObject{params: make(map[uint32]*Parameter)}
}

// Set inserts or updates the parameter stored under hash.
func (o *ParameterObject) Set(hash uint32, p *Parameter) {
	if _, exists := o.params[hash]; !exists {
		o.order = append(o.order, hash)
	}
	o.params[hash] = p
}

// SetNamed is Set keyed by the CRC32 hash of name.
func (o *ParameterObject) SetNamed(name string, p *Parameter) { o.Set(Hash(name), p) }

// Get returns the parameter stored under hash, if any.
func (o *ParameterObject) Get(hash uint32) (*Parameter, bool) {
	p, ok := o.params[hash]
	return p, ok
}

// GetNamed is Get keyed by the CRC32 hash of name.
func (o *ParameterObject) GetNamed(name string) (*Parameter, bool) { return o.Get(Hash(name)) }

// Keys returns hashes in insertion order.
func (o *ParameterObject) Keys() []uint32 { return o.order }

// Len returns the number of parameters.
func (o *ParameterObject) Len() int { return len(o.order) }

// Equal reports whether o and other hold the same hash/parameter pairs,
// irrespective of insertion order.
func (o *ParameterObject) Equal(other *ParameterObject) bool {
	if o == nil || other == nil {
		return o == other
	}
	if o.Len() != other.Len() {
		return false
	}
	for h, p := range o.params {
		q, ok := other.params[h]
		if !ok || !p.Equal(q) {
			return false
		}
	}
	return true
}

// ParameterList owns two independent ordered maps: child lists and child
// objects, each hash-keyed (spec §9 — a list owns two maps, all owning).
type ParameterList struct {
	listOrder []uint32
	lists     map[uint32]*ParameterList
	objOrder  []uint32
	objects   map[uint32]*ParameterObject
}

// NewParameterList builds an empty ParameterList.
func NewParameterList() *ParameterList {
	return &ParameterList{
		lists:   make(map[uint32]*ParameterList),
		objects: make(map[uint32]*ParameterObject),
	}
}

func (l *ParameterList) SetList(hash uint32, child *ParameterList) {
	if _, exists := l.lists[hash]; !exists {
		l.listOrder = append(l.listOrder, hash)
	}
	l.lists[hash] = child
}

func (l *ParameterList) SetListNamed(name string, child *ParameterList) {
	l.SetList(Hash(name), child)
}

func (l *ParameterList) GetList(hash uint32) (*ParameterList, bool) {
	v, ok := l.lists[hash]
	return v, ok
}

func (l *ParameterList) GetListNamed(name string) (*ParameterList, bool) {
	return l.GetList(Hash(name))
}

func (l *ParameterList) SetObject(hash uint32, child *ParameterObject) {
	if _, exists := l.objects[hash]; !exists {
		l.objOrder = append(l.objOrder, hash)
	}
	l.objects[hash] = child
}

func (l *ParameterList) SetObjectNamed(name string, child *ParameterObject) {
	l.SetObject(Hash(name), child)
}

func (l *ParameterList) GetObject(hash uint32) (*ParameterObject, bool) {
	v, ok := l.objects[hash]
	return v, ok
}

func (l *ParameterList) GetObjectNamed(name string) (*ParameterObject, bool) {
	return l.GetObject(Hash(name))
}

// ListKeys returns child-list hashes in insertion order.
func (l *ParameterList) ListKeys() []uint32 { return l.listOrder }

// ObjectKeys returns child-object hashes in insertion order.
func (l *ParameterList) ObjectKeys() []uint32 { return l.objOrder }

// Equal reports deep structural equality, irrespective of insertion order.
func (l *ParameterList) Equal(other *ParameterList) bool {
	if l == nil || other == nil {
		return l == other
	}
	if len(l.lists) != len(other.lists) || len(l.objects) != len(other.objects) {
		return false
	}
	for h, child := range l.lists {
		oc, ok := other.lists[h]
		if !ok || !child.Equal(oc) {
			return false
		}
	}
	for h, child := range l.objects {
		oc, ok := other.objects[h]
		if !ok || !child.Equal(oc) {
			return false
		}
	}
	return true
}

// ParameterIO is the document root: a type tag, version, and root list.
type ParameterIO struct {
	Type    string
	Version uint32
	Root    *ParameterList
}

// Equal reports structural equality between two documents.
func (p *ParameterIO) Equal(other *ParameterIO) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Type == other.Type && p.Version == other.Version && p.Root.Equal(other.Root)
}

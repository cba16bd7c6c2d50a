package core

// FieldPair owns the two step buffers of a ping-pong simulation together with
// the tick counter deciding which buffer is authoritative. The field at index
// tick mod 2 is "current" (readable state, source of the next step); the
// other is "next" (the step's write target). Advancing the tick by one flips
// the roles, so the buffer a step just wrote becomes current.
type FieldPair struct {
	fields [2]*Field
	tick   int
}

// NewFieldPair allocates two identically sized fields with the tick at zero.
func NewFieldPair(w, h int) *FieldPair {
	return &FieldPair{fields: [2]*Field{NewField(w, h), NewField(w, h)}}
}

// Size returns the grid dimensions shared by both fields.
func (p *FieldPair) Size() Size { return Size{W: p.fields[0].W, H: p.fields[0].H} }

// Tick returns the number of completed steps since the last reset.
func (p *FieldPair) Tick() int { return p.tick }

// CurrentIndex identifies which of the two fields is current.
func (p *FieldPair) CurrentIndex() int { return p.tick & 1 }

// Current returns the authoritative, readable field.
func (p *FieldPair) Current() *Field { return p.fields[p.tick&1] }

// Next returns the field the next step writes into.
func (p *FieldPair) Next() *Field { return p.fields[1-p.tick&1] }

// Advance marks one step as completed, flipping the buffer roles.
func (p *FieldPair) Advance() { p.tick++ }

// Reset zeroes both fields and rewinds the tick counter.
func (p *FieldPair) Reset() {
	p.fields[0].Fill(0, 0)
	p.fields[1].Fill(0, 0)
	p.tick = 0
}

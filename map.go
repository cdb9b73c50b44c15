package http

// HeaderMap is a multimap of HeaderName to HeaderValue preserving insertion
// order per name.
//
// The implementation is a power-of-two open-addressing hash table with linear
// probing, specialized for header workloads: the slot table is sized by
// distinct names, while additional values for a name (repeated Set-Cookie,
// for example) chain through a separate arena so that a handful of
// multi-valued names cannot force table growth.
//
// The zero value is an empty map ready for use. HeaderMap is a single-owner
// structure: concurrent reads of an unchanging map are safe, any mutation
// requires external synchronization, and mutating during iteration is
// unsupported.
type HeaderMap struct {
	slots []slot
	extra []extraValue

	// Head of the free list threaded through extra, -1 when empty.
	freeExtra int32

	names int // distinct header names
	vals  int // total header values

	danger danger
}

// slot is one cell of the table: vacant, or holding a name, its first value
// and the bounds of its extra-value chain.
type slot struct {
	hash      uint64
	name      HeaderName
	value     HeaderValue
	extraHead int32
	extraTail int32
	used      bool
}

// extraValue is one additional value for a name beyond the first. Nodes live
// in a growable arena and link by index, so rehashing the slot table never
// disturbs chain order and unlinking is O(1).
type extraValue struct {
	value HeaderValue
	prev  int32 // previous node, -1 when first in the chain
	next  int32 // next node in the chain, or free-list link
}

const defaultCapacity = 8

// NewHeaderMap returns an empty map. No memory is allocated until the first
// insertion.
func NewHeaderMap() HeaderMap {
	return HeaderMap{freeExtra: -1}
}

// WithCapacity returns a map pre-sized to hold n distinct names without
// rehashing. Fails with ErrCapacityOverflow when n is beyond the table
// ceiling.
func WithCapacity(n int) (HeaderMap, error) {
	m := NewHeaderMap()
	if err := m.Reserve(n); err != nil {
		return HeaderMap{}, err
	}
	return m, nil
}

// Len returns the total number of values stored in the map, counting each
// value of a multi-valued name.
func (m *HeaderMap) Len() int {
	return m.vals
}

// KeysLen returns the number of distinct header names.
func (m *HeaderMap) KeysLen() int {
	return m.names
}

// Capacity returns the number of distinct names the map can hold before the
// next growth.
func (m *HeaderMap) Capacity() int {
	return usableCapacity(len(m.slots))
}

// Insert sets name to the single given value, replacing and returning the
// first of any previously stored values. Other names are unaffected.
func (m *HeaderMap) Insert(name HeaderName, value HeaderValue) (HeaderValue, bool) {
	m.ensureSeeded()

	hash := m.danger.hash(name)
	if m.slots != nil {
		if idx, ok := m.findSlot(hash, name); ok {
			s := &m.slots[idx]
			old := s.value
			s.value = value
			m.freeChain(s)
			return old, true
		}
	}

	m.placeNewName(hash, name, value)
	return HeaderValue{}, false
}

// Append adds value after any existing values for name, preserving insertion
// order. It reports whether the name was already present.
func (m *HeaderMap) Append(name HeaderName, value HeaderValue) bool {
	m.ensureSeeded()

	hash := m.danger.hash(name)
	if m.slots == nil {
		m.placeNewName(hash, name, value)
		return false
	}

	idx, ok := m.findSlot(hash, name)
	if !ok {
		m.placeNewName(hash, name, value)
		return false
	}

	s := &m.slots[idx]
	e := m.newExtra(value)
	if s.extraTail < 0 {
		s.extraHead = e
		s.extraTail = e
	} else {
		m.extra[s.extraTail].next = e
		m.extra[e].prev = s.extraTail
		s.extraTail = e
	}
	m.vals++
	return true
}

// Get returns the first value stored for name.
func (m *HeaderMap) Get(name HeaderName) (HeaderValue, bool) {
	if m.names == 0 {
		return HeaderValue{}, false
	}

	idx, ok := m.findSlot(m.danger.hash(name), name)
	if !ok {
		return HeaderValue{}, false
	}
	return m.slots[idx].value, true
}

// GetAll returns a lazy iterator over every value stored for name, in
// insertion order. An absent name yields an empty iterator.
func (m *HeaderMap) GetAll(name HeaderName) *Values {
	if m.names == 0 {
		return &Values{slot: -1}
	}

	idx, ok := m.findSlot(m.danger.hash(name), name)
	if !ok {
		return &Values{slot: -1}
	}
	return &Values{m: m, slot: idx, extra: -1}
}

// ContainsKey reports whether any value is stored for name.
func (m *HeaderMap) ContainsKey(name HeaderName) bool {
	_, ok := m.Get(name)
	return ok
}

// Remove deletes every value for name and returns the first removed value.
// Removing an absent name is a no-op.
func (m *HeaderMap) Remove(name HeaderName) (HeaderValue, bool) {
	if m.names == 0 {
		return HeaderValue{}, false
	}

	idx, ok := m.findSlot(m.danger.hash(name), name)
	if !ok {
		return HeaderValue{}, false
	}

	s := &m.slots[idx]
	first := s.value
	m.freeChain(s)
	m.slots[idx] = slot{}
	m.names--
	m.vals--

	m.compactFrom(idx)
	return first, true
}

// Clear removes every entry while retaining allocated capacity. The danger
// level is deliberately kept; Red never downgrades.
func (m *HeaderMap) Clear() {
	for i := range m.slots {
		m.slots[i] = slot{}
	}
	m.extra = m.extra[:0]
	m.freeExtra = -1
	m.names = 0
	m.vals = 0
}

// Reserve grows the table so that `additional` more distinct names can be
// inserted without rehashing. Fails with ErrCapacityOverflow when the
// resulting table would exceed the ceiling.
func (m *HeaderMap) Reserve(additional int) error {
	if additional <= 0 {
		return nil
	}

	need := m.names + additional
	capacity := len(m.slots)
	if capacity == 0 {
		capacity = defaultCapacity
	}
	for usableCapacity(capacity) < need {
		capacity <<= 1
		if capacity > maxCapacity {
			return Newf(ErrCapacityOverflow, "cannot reserve %d names: table ceiling is %d slots", need, maxCapacity)
		}
	}

	if capacity != len(m.slots) {
		if m.slots == nil {
			m.allocate(capacity)
		} else {
			m.rehash(capacity)
		}
	}
	return nil
}

// ===== probe core =====

func (m *HeaderMap) mask() uint64 {
	return uint64(len(m.slots) - 1)
}

func usableCapacity(capacity int) int {
	return capacity - capacity>>loadFactorShift
}

// findSlot probes linearly from the ideal slot. It returns the matching slot
// index and true, or the vacant index where the name would be placed and
// false. The caller must ensure the table is allocated.
func (m *HeaderMap) findSlot(hash uint64, name HeaderName) (int, bool) {
	mask := m.mask()
	idx := hash & mask
	for {
		s := &m.slots[idx]
		if !s.used {
			return int(idx), false
		}
		if s.hash == hash && s.name == name {
			return int(idx), true
		}
		idx = (idx + 1) & mask
	}
}

// placeNewName makes room for one more distinct name and places its first
// value. Growth keeps the hash function, so hash stays valid; the probe runs
// after any resize. Only called once the name is known to be absent, so a
// repeated-value workload on an existing name never grows the table.
func (m *HeaderMap) placeNewName(hash uint64, name HeaderName, value HeaderValue) {
	m.reserveOne()
	idx, _ := m.findSlot(hash, name)
	m.placeNew(idx, hash, name, value)
}

// placeNew fills a vacant slot and escalates the danger level when the probe
// displacement looks like an engineered collision pattern.
func (m *HeaderMap) placeNew(idx int, hash uint64, name HeaderName, value HeaderValue) {
	m.slots[idx] = slot{
		hash:      hash,
		name:      name,
		value:     value,
		extraHead: -1,
		extraTail: -1,
		used:      true,
	}
	m.names++
	m.vals++

	displacement := int((uint64(idx) - hash) & m.mask())
	m.checkDanger(displacement)
}

func (m *HeaderMap) checkDanger(displacement int) {
	if displacement < displacementLimit(len(m.slots)) {
		return
	}

	switch m.danger.level {
	case dangerGreen:
		m.danger.level = dangerYellow
		if logger != nil {
			logger.Warn().
				Int("displacement", displacement).
				Int("capacity", len(m.slots)).
				Msg("[http-headers] elevated probe displacement, monitoring for hash flooding")
		}
	case dangerYellow:
		m.danger.level = dangerRed
		if logger != nil {
			logger.Warn().
				Int("displacement", displacement).
				Int("capacity", len(m.slots)).
				Msg("[http-headers] suspected hash flooding, switching to keyed hash")
		}
		// One full rehash under the keyed hash function.
		m.rehash(len(m.slots))
	}
}

// reserveOne makes room for one more distinct name, doubling the table when
// the load factor would be exceeded. Organic growth past the ceiling is
// unreachable under legitimate header load and panics rather than truncating.
func (m *HeaderMap) reserveOne() {
	if m.slots == nil {
		m.allocate(defaultCapacity)
		return
	}
	if m.names+1 > usableCapacity(len(m.slots)) {
		next := len(m.slots) << 1
		if next > maxCapacity {
			panic(New(ErrCapacityOverflow, "header map exceeded maximum table capacity"))
		}
		m.rehash(next)
	}
}

func (m *HeaderMap) allocate(capacity int) {
	m.slots = make([]slot, capacity)
	m.freeExtra = -1
	m.ensureSeeded()
}

func (m *HeaderMap) ensureSeeded() {
	if !m.danger.seeded {
		m.danger.seed()
	}
}

// rehash rebuilds the slot table at the given capacity. Occupied slots are
// reinserted in table-index order and extra-value chains live in the arena
// untouched, so per-name value order survives both growth and the danger-mode
// hash switch.
func (m *HeaderMap) rehash(capacity int) {
	old := m.slots
	m.slots = make([]slot, capacity)
	for i := range old {
		s := old[i]
		if !s.used {
			continue
		}
		s.hash = m.danger.hash(s.name)
		m.reinsertSlot(s)
	}
}

// reinsertSlot places an already-populated slot at its first free probe
// position. Counts are not touched.
func (m *HeaderMap) reinsertSlot(s slot) {
	mask := m.mask()
	idx := s.hash & mask
	for m.slots[idx].used {
		idx = (idx + 1) & mask
	}
	m.slots[idx] = s
}

// compactFrom restores the probe invariant after clearing a slot by lifting
// and reinserting every entry in the remainder of the cluster.
func (m *HeaderMap) compactFrom(start int) {
	mask := m.mask()
	idx := (uint64(start) + 1) & mask
	for m.slots[idx].used {
		s := m.slots[idx]
		m.slots[idx] = slot{}
		m.reinsertSlot(s)
		idx = (idx + 1) & mask
	}
}

// ===== extra-value arena =====

// newExtra takes a node from the free list, or grows the arena.
func (m *HeaderMap) newExtra(value HeaderValue) int32 {
	if m.freeExtra >= 0 {
		e := m.freeExtra
		m.freeExtra = m.extra[e].next
		m.extra[e] = extraValue{value: value, prev: -1, next: -1}
		return e
	}
	m.extra = append(m.extra, extraValue{value: value, prev: -1, next: -1})
	return int32(len(m.extra) - 1)
}

// removeExtra unlinks one chained value in O(1) and returns the node to the
// free list. When the first extra value is removed the next node becomes the
// chain head.
func (m *HeaderMap) removeExtra(s *slot, e int32) HeaderValue {
	node := m.extra[e]

	if node.prev < 0 {
		s.extraHead = node.next
	} else {
		m.extra[node.prev].next = node.next
	}
	if node.next < 0 {
		s.extraTail = node.prev
	} else {
		m.extra[node.next].prev = node.prev
	}

	m.extra[e] = extraValue{prev: -1, next: m.freeExtra}
	m.freeExtra = e
	m.vals--
	return node.value
}

// freeChain drops every extra value of a slot, leaving only the first value.
func (m *HeaderMap) freeChain(s *slot) {
	for s.extraHead >= 0 {
		m.removeExtra(s, s.extraHead)
	}
}

// ===== iteration =====

// Values lazily iterates the values of one name in insertion order.
type Values struct {
	m     *HeaderMap
	slot  int // -1 when exhausted or absent
	extra int32
	begun bool
}

// Next returns the next value, or false when the sequence is exhausted.
func (v *Values) Next() (HeaderValue, bool) {
	if v.slot < 0 {
		return HeaderValue{}, false
	}

	if !v.begun {
		v.begun = true
		s := &v.m.slots[v.slot]
		v.extra = s.extraHead
		return s.value, true
	}

	if v.extra < 0 {
		v.slot = -1
		return HeaderValue{}, false
	}
	node := v.m.extra[v.extra]
	v.extra = node.next
	return node.value, true
}

// Collect drains the iterator into a slice.
func (v *Values) Collect() []HeaderValue {
	var out []HeaderValue
	for {
		val, ok := v.Next()
		if !ok {
			return out
		}
		out = append(out, val)
	}
}

// Iter iterates every (name, value) pair in the map. A name with k values is
// emitted k times, values in insertion order; the relative order of different
// names is unspecified but stable for a given map state. Each call starts a
// fresh iteration.
func (m *HeaderMap) Iter() *Iter {
	return &Iter{m: m, cur: -1}
}

// Iter is a lazy iterator over (name, value) pairs.
type Iter struct {
	m     *HeaderMap
	slot  int // next slot index to scan
	cur   int // slot whose chain is being drained, -1 when none
	extra int32
}

// Next returns the next pair, or false when the sequence is exhausted.
func (it *Iter) Next() (HeaderName, HeaderValue, bool) {
	if it.cur >= 0 {
		node := it.m.extra[it.extra]
		name := it.m.slots[it.cur].name
		it.extra = node.next
		if it.extra < 0 {
			it.cur = -1
		}
		return name, node.value, true
	}

	for it.slot < len(it.m.slots) {
		s := &it.m.slots[it.slot]
		it.slot++
		if !s.used {
			continue
		}
		if s.extraHead >= 0 {
			it.cur = it.slot - 1
			it.extra = s.extraHead
		}
		return s.name, s.value, true
	}
	return HeaderName{}, HeaderValue{}, false
}

// ===== entry API =====

// Entry is a single-lookup handle on the slot for a name, occupied or vacant.
// It allows insert-if-absent and modify-in-place without hashing the name a
// second time. Any other mutation of the map invalidates the handle.
type Entry struct {
	m    *HeaderMap
	name HeaderName
	hash uint64
	idx  int // occupied slot index, -1 when vacant
}

// Entry looks up name once and returns a handle on the result.
func (m *HeaderMap) Entry(name HeaderName) Entry {
	m.ensureSeeded()

	e := Entry{m: m, name: name, hash: m.danger.hash(name), idx: -1}
	if m.names > 0 {
		if idx, ok := m.findSlot(e.hash, name); ok {
			e.idx = idx
		}
	}
	return e
}

// Name returns the name this entry was created for.
func (e *Entry) Name() HeaderName {
	return e.name
}

// Occupied reports whether the name currently has values.
func (e *Entry) Occupied() bool {
	return e.idx >= 0
}

// Get returns the first value when the entry is occupied.
func (e *Entry) Get() (HeaderValue, bool) {
	if e.idx < 0 {
		return HeaderValue{}, false
	}
	return e.m.slots[e.idx].value, true
}

// Set replaces all values with the given one, returning the previous first
// value if the entry was occupied.
func (e *Entry) Set(value HeaderValue) (HeaderValue, bool) {
	if e.idx >= 0 {
		s := &e.m.slots[e.idx]
		old := s.value
		s.value = value
		e.m.freeChain(s)
		return old, true
	}

	e.insertVacant(value)
	return HeaderValue{}, false
}

// Append adds a value after any existing ones, reporting whether the entry
// was occupied.
func (e *Entry) Append(value HeaderValue) bool {
	if e.idx < 0 {
		e.insertVacant(value)
		return false
	}

	m := e.m
	s := &m.slots[e.idx]
	x := m.newExtra(value)
	if s.extraTail < 0 {
		s.extraHead = x
		s.extraTail = x
	} else {
		m.extra[s.extraTail].next = x
		m.extra[x].prev = s.extraTail
		s.extraTail = x
	}
	m.vals++
	return true
}

// OrInsert inserts the value when the entry is vacant and returns the first
// value now stored for the name.
func (e *Entry) OrInsert(value HeaderValue) HeaderValue {
	if e.idx >= 0 {
		return e.m.slots[e.idx].value
	}
	e.insertVacant(value)
	return value
}

// insertVacant places the first value for the entry's name. The cached hash
// and slot index are refreshed afterwards since both growth and a danger-mode
// rehash move slots.
func (e *Entry) insertVacant(value HeaderValue) {
	m := e.m
	m.placeNewName(e.hash, e.name, value)

	e.hash = m.danger.hash(e.name)
	e.idx, _ = m.findSlot(e.hash, e.name)
}

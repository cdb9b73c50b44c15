package http

import (
	"fmt"
	"testing"
)

func TestHeaderMapInsertGet(t *testing.T) {
	m := NewHeaderMap()

	old, had := m.Insert(HeaderContentType, MustHeaderValue("text/plain"))
	if had {
		t.Errorf("Expected no previous value, got %s", old)
	}

	v, ok := m.Get(HeaderContentType)
	if !ok || !v.EqualString("text/plain") {
		t.Errorf("Expected 'text/plain', got ok=%v v=%s", ok, v)
	}

	if _, ok := m.Get(HeaderAccept); ok {
		t.Errorf("Expected absent name to miss")
	}
	if m.Len() != 1 || m.KeysLen() != 1 {
		t.Errorf("Expected Len=1 KeysLen=1, got Len=%d KeysLen=%d", m.Len(), m.KeysLen())
	}
}

func TestHeaderMapInsertThenAppendThenReplace(t *testing.T) {
	m := NewHeaderMap()

	m.Insert(HeaderContentType, MustHeaderValue("text/plain"))
	m.Append(HeaderContentType, MustHeaderValue("charset=utf-8"))

	if v, ok := m.Get(HeaderContentType); !ok || !v.EqualString("text/plain") {
		t.Errorf("Expected first value 'text/plain', got ok=%v v=%s", ok, v)
	}
	vals := m.GetAll(HeaderContentType).Collect()
	if len(vals) != 2 || !vals[0].EqualString("text/plain") || !vals[1].EqualString("charset=utf-8") {
		t.Errorf("Expected both values in order, got %v", vals)
	}

	m.Insert(HeaderContentType, MustHeaderValue("application/json"))
	vals = m.GetAll(HeaderContentType).Collect()
	if len(vals) != 1 || !vals[0].EqualString("application/json") {
		t.Errorf("Expected insert to drop prior values, got %v", vals)
	}
}

func TestHeaderMapInsertReplacesAllValues(t *testing.T) {
	m := NewHeaderMap()
	m.Append(HeaderSetCookie, MustHeaderValue("a=1"))
	m.Append(HeaderSetCookie, MustHeaderValue("b=2"))
	m.Append(HeaderSetCookie, MustHeaderValue("c=3"))

	old, had := m.Insert(HeaderSetCookie, MustHeaderValue("d=4"))
	if !had || !old.EqualString("a=1") {
		t.Errorf("Expected previous first value 'a=1', got had=%v old=%s", had, old)
	}

	vals := m.GetAll(HeaderSetCookie).Collect()
	if len(vals) != 1 || !vals[0].EqualString("d=4") {
		t.Errorf("Expected single value 'd=4', got %v", vals)
	}
	if m.Len() != 1 {
		t.Errorf("Expected Len=1 after replace, got %d", m.Len())
	}
}

func TestHeaderMapAppendPreservesOrder(t *testing.T) {
	m := NewHeaderMap()

	if had := m.Append(HeaderSetCookie, MustHeaderValue("first")); had {
		t.Errorf("Expected append to a fresh name to report absent")
	}
	if had := m.Append(HeaderSetCookie, MustHeaderValue("second")); !had {
		t.Errorf("Expected append to an existing name to report present")
	}
	m.Append(HeaderSetCookie, MustHeaderValue("third"))

	expected := []string{"first", "second", "third"}
	vals := m.GetAll(HeaderSetCookie).Collect()
	if len(vals) != len(expected) {
		t.Fatalf("Expected %d values, got %d", len(expected), len(vals))
	}
	for i, want := range expected {
		if !vals[i].EqualString(want) {
			t.Errorf("Expected value %d to be '%s', got '%s'", i, want, vals[i])
		}
	}

	// Get still returns the first value only.
	if v, ok := m.Get(HeaderSetCookie); !ok || !v.EqualString("first") {
		t.Errorf("Expected first value 'first', got ok=%v v=%s", ok, v)
	}
	if m.Len() != 3 || m.KeysLen() != 1 {
		t.Errorf("Expected Len=3 KeysLen=1, got Len=%d KeysLen=%d", m.Len(), m.KeysLen())
	}
}

func TestHeaderMapRemove(t *testing.T) {
	m := NewHeaderMap()
	m.Append(HeaderVia, MustHeaderValue("proxy-a"))
	m.Append(HeaderVia, MustHeaderValue("proxy-b"))
	m.Insert(HeaderHost, MustHeaderValue("example.com"))

	first, ok := m.Remove(HeaderVia)
	if !ok || !first.EqualString("proxy-a") {
		t.Errorf("Expected removed first value 'proxy-a', got ok=%v v=%s", ok, first)
	}
	if m.ContainsKey(HeaderVia) {
		t.Errorf("Expected name to be gone after Remove")
	}
	if m.Len() != 1 || m.KeysLen() != 1 {
		t.Errorf("Expected Len=1 KeysLen=1, got Len=%d KeysLen=%d", m.Len(), m.KeysLen())
	}

	// Untouched names survive.
	if v, ok := m.Get(HeaderHost); !ok || !v.EqualString("example.com") {
		t.Errorf("Expected 'example.com' to survive, got ok=%v v=%s", ok, v)
	}

	// Removing an absent name is a no-op.
	if _, ok := m.Remove(HeaderVia); ok {
		t.Errorf("Expected removing an absent name to report false")
	}
	if m.Len() != 1 {
		t.Errorf("Expected Len unchanged by absent remove, got %d", m.Len())
	}
}

func TestHeaderMapRemoveCompactsProbeCluster(t *testing.T) {
	// Fill a small table, delete from the middle of clusters, and verify
	// every survivor is still reachable.
	m := NewHeaderMap()
	names := make([]HeaderName, 0, 40)
	for i := 0; i < 40; i++ {
		n := MustHeaderName(fmt.Sprintf("x-cluster-%d", i))
		names = append(names, n)
		m.Insert(n, HeaderValueFromInt(int64(i)))
	}
	for i := 0; i < 40; i += 3 {
		m.Remove(names[i])
	}
	for i, n := range names {
		v, ok := m.Get(n)
		if i%3 == 0 {
			if ok {
				t.Errorf("Expected %s to be removed", n)
			}
			continue
		}
		if !ok || !v.EqualString(fmt.Sprintf("%d", i)) {
			t.Errorf("Expected %s => %d, got ok=%v v=%s", n, i, ok, v)
		}
	}
}

func TestHeaderMapGrowthKeepsLoadFactor(t *testing.T) {
	m := NewHeaderMap()
	for i := 0; i < 200; i++ {
		m.Insert(MustHeaderName(fmt.Sprintf("x-grow-%d", i)), HeaderValueFromInt(int64(i)))

		if m.KeysLen() > usableCapacity(len(m.slots)) {
			t.Fatalf("Expected names (%d) to stay within usable capacity (%d of %d slots)",
				m.KeysLen(), usableCapacity(len(m.slots)), len(m.slots))
		}
		if len(m.slots)&(len(m.slots)-1) != 0 {
			t.Fatalf("Expected power-of-two capacity, got %d", len(m.slots))
		}
	}

	for i := 0; i < 200; i++ {
		n := MustHeaderName(fmt.Sprintf("x-grow-%d", i))
		if v, ok := m.Get(n); !ok || !v.EqualString(fmt.Sprintf("%d", i)) {
			t.Errorf("Expected %s => %d after growth, got ok=%v v=%s", n, i, ok, v)
		}
	}
}

func TestHeaderMapExistingNameNeverGrowsTable(t *testing.T) {
	// Fill the table right up to the growth threshold, then hammer one
	// existing name. The distinct-name count does not change, so the slot
	// table must not either.
	m := NewHeaderMap()
	names := make([]HeaderName, 0, 7)
	for i := 0; i < 7; i++ {
		n := MustHeaderName(fmt.Sprintf("x-full-%d", i))
		names = append(names, n)
		m.Insert(n, HeaderValueFromInt(int64(i)))
	}

	capacity := len(m.slots)
	if m.KeysLen() != usableCapacity(capacity) {
		t.Fatalf("Expected the table to be at its growth threshold, got %d of %d", m.KeysLen(), usableCapacity(capacity))
	}

	for i := 0; i < 50; i++ {
		m.Append(names[0], HeaderValueFromInt(int64(i)))
	}
	if len(m.slots) != capacity {
		t.Errorf("Expected appends to an existing name not to grow the table, slots went %d -> %d", capacity, len(m.slots))
	}

	m.Insert(names[1], MustHeaderValue("replaced"))
	if len(m.slots) != capacity {
		t.Errorf("Expected re-insert of an existing name not to grow the table, slots went %d -> %d", capacity, len(m.slots))
	}

	// The next distinct name still grows as usual.
	m.Insert(MustHeaderName("x-full-7"), MustHeaderValue("new"))
	if len(m.slots) != capacity<<1 {
		t.Errorf("Expected a new name to double the table, slots went %d -> %d", capacity, len(m.slots))
	}
	if vals := m.GetAll(names[0]).Collect(); len(vals) != 51 {
		t.Errorf("Expected 51 values to survive growth, got %d", len(vals))
	}
}

func TestHeaderMapAppendChainsSurviveGrowth(t *testing.T) {
	m := NewHeaderMap()
	m.Append(HeaderSetCookie, MustHeaderValue("one"))
	m.Append(HeaderSetCookie, MustHeaderValue("two"))
	m.Append(HeaderSetCookie, MustHeaderValue("three"))

	// Force several rehashes.
	for i := 0; i < 100; i++ {
		m.Insert(MustHeaderName(fmt.Sprintf("x-filler-%d", i)), HeaderValueFromInt(int64(i)))
	}

	expected := []string{"one", "two", "three"}
	vals := m.GetAll(HeaderSetCookie).Collect()
	if len(vals) != len(expected) {
		t.Fatalf("Expected %d values after growth, got %d", len(expected), len(vals))
	}
	for i, want := range expected {
		if !vals[i].EqualString(want) {
			t.Errorf("Expected value %d to be '%s', got '%s'", i, want, vals[i])
		}
	}
}

func TestHeaderMapWithCapacity(t *testing.T) {
	m, err := WithCapacity(100)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if m.Capacity() < 100 {
		t.Errorf("Expected capacity of at least 100, got %d", m.Capacity())
	}

	capacity := len(m.slots)
	for i := 0; i < 100; i++ {
		m.Insert(MustHeaderName(fmt.Sprintf("x-pre-%d", i)), HeaderValueFromInt(int64(i)))
	}
	if len(m.slots) != capacity {
		t.Errorf("Expected no rehash within reserved capacity, slots went %d -> %d", capacity, len(m.slots))
	}
}

func TestHeaderMapReserveOverflow(t *testing.T) {
	m := NewHeaderMap()
	if err := m.Reserve(maxCapacity); err == nil {
		t.Errorf("Expected ErrCapacityOverflow, got none")
	} else if !Is(err, ErrCapacityOverflow) {
		t.Errorf("Expected ErrCapacityOverflow, got %v", err)
	}

	// A failed reserve leaves the map usable.
	m.Insert(HeaderHost, MustHeaderValue("example.com"))
	if v, ok := m.Get(HeaderHost); !ok || !v.EqualString("example.com") {
		t.Errorf("Expected map to stay usable after failed reserve, got ok=%v v=%s", ok, v)
	}

	if _, err := WithCapacity(maxCapacity); !Is(err, ErrCapacityOverflow) {
		t.Errorf("Expected ErrCapacityOverflow from WithCapacity, got %v", err)
	}
}

func TestHeaderMapClear(t *testing.T) {
	m := NewHeaderMap()
	m.Append(HeaderSetCookie, MustHeaderValue("a=1"))
	m.Append(HeaderSetCookie, MustHeaderValue("b=2"))
	m.Insert(HeaderHost, MustHeaderValue("example.com"))

	capacity := len(m.slots)
	m.Clear()

	if m.Len() != 0 || m.KeysLen() != 0 {
		t.Errorf("Expected empty map, got Len=%d KeysLen=%d", m.Len(), m.KeysLen())
	}
	if m.ContainsKey(HeaderHost) {
		t.Errorf("Expected cleared name to miss")
	}
	if len(m.slots) != capacity {
		t.Errorf("Expected capacity retained, got %d -> %d", capacity, len(m.slots))
	}

	// The map is fully reusable.
	m.Append(HeaderSetCookie, MustHeaderValue("c=3"))
	vals := m.GetAll(HeaderSetCookie).Collect()
	if len(vals) != 1 || !vals[0].EqualString("c=3") {
		t.Errorf("Expected single value 'c=3' after reuse, got %v", vals)
	}
}

func TestHeaderMapZeroValueUsable(t *testing.T) {
	var m HeaderMap

	if _, ok := m.Get(HeaderHost); ok {
		t.Errorf("Expected empty zero-value map to miss")
	}
	if _, ok := m.Remove(HeaderHost); ok {
		t.Errorf("Expected remove on zero-value map to be a no-op")
	}
	if vals := m.GetAll(HeaderHost).Collect(); len(vals) != 0 {
		t.Errorf("Expected empty iterator, got %v", vals)
	}

	m.Append(HeaderSetCookie, MustHeaderValue("a=1"))
	m.Append(HeaderSetCookie, MustHeaderValue("b=2"))
	vals := m.GetAll(HeaderSetCookie).Collect()
	if len(vals) != 2 {
		t.Errorf("Expected 2 values, got %d", len(vals))
	}
}

func TestHeaderMapIter(t *testing.T) {
	m := NewHeaderMap()
	m.Insert(HeaderHost, MustHeaderValue("example.com"))
	m.Append(HeaderSetCookie, MustHeaderValue("a=1"))
	m.Append(HeaderSetCookie, MustHeaderValue("b=2"))
	m.Insert(HeaderContentType, MustHeaderValue("text/html"))

	seen := map[HeaderName][]string{}
	it := m.Iter()
	for {
		n, v, ok := it.Next()
		if !ok {
			break
		}
		seen[n] = append(seen[n], string(v.Bytes()))
	}

	if len(seen) != 3 {
		t.Fatalf("Expected 3 distinct names, got %d", len(seen))
	}
	if got := seen[HeaderSetCookie]; len(got) != 2 || got[0] != "a=1" || got[1] != "b=2" {
		t.Errorf("Expected set-cookie values in insertion order, got %v", got)
	}
	if got := seen[HeaderHost]; len(got) != 1 || got[0] != "example.com" {
		t.Errorf("Expected host value, got %v", got)
	}

	total := 0
	for _, vs := range seen {
		total += len(vs)
	}
	if total != m.Len() {
		t.Errorf("Expected %d pairs from iteration, got %d", m.Len(), total)
	}
}

func TestHeaderMapEntry(t *testing.T) {
	m := NewHeaderMap()

	e := m.Entry(HeaderHost)
	if e.Occupied() {
		t.Errorf("Expected vacant entry")
	}
	if v := e.OrInsert(MustHeaderValue("example.com")); !v.EqualString("example.com") {
		t.Errorf("Expected OrInsert to return inserted value, got %s", v)
	}
	if !e.Occupied() {
		t.Errorf("Expected entry occupied after insert")
	}

	// OrInsert on an occupied entry keeps the stored value.
	if v := e.OrInsert(MustHeaderValue("other.com")); !v.EqualString("example.com") {
		t.Errorf("Expected stored value 'example.com', got %s", v)
	}

	old, had := e.Set(MustHeaderValue("example.org"))
	if !had || !old.EqualString("example.com") {
		t.Errorf("Expected Set to return previous value, got had=%v old=%s", had, old)
	}
	if v, ok := m.Get(HeaderHost); !ok || !v.EqualString("example.org") {
		t.Errorf("Expected map to see 'example.org', got ok=%v v=%s", ok, v)
	}

	if had := e.Append(MustHeaderValue("mirror.example.org")); !had {
		t.Errorf("Expected append to occupied entry to report present")
	}
	vals := m.GetAll(HeaderHost).Collect()
	if len(vals) != 2 || !vals[1].EqualString("mirror.example.org") {
		t.Errorf("Expected appended value in order, got %v", vals)
	}
}

func TestHeaderMapEntryVacantAppend(t *testing.T) {
	m := NewHeaderMap()

	e := m.Entry(HeaderSetCookie)
	if had := e.Append(MustHeaderValue("a=1")); had {
		t.Errorf("Expected append to vacant entry to report absent")
	}
	if had := e.Append(MustHeaderValue("b=2")); !had {
		t.Errorf("Expected second append to report present")
	}

	vals := m.GetAll(HeaderSetCookie).Collect()
	if len(vals) != 2 || !vals[0].EqualString("a=1") || !vals[1].EqualString("b=2") {
		t.Errorf("Expected ordered values, got %v", vals)
	}
}

func TestHeaderMapEntrySurvivesGrowth(t *testing.T) {
	// An entry created on a small table must stay valid when its own
	// insertion triggers growth.
	m := NewHeaderMap()
	for i := 0; i < 7; i++ {
		m.Insert(MustHeaderName(fmt.Sprintf("x-seed-%d", i)), HeaderValueFromInt(int64(i)))
	}

	e := m.Entry(HeaderHost)
	e.Set(MustHeaderValue("example.com"))
	if v, ok := e.Get(); !ok || !v.EqualString("example.com") {
		t.Errorf("Expected entry to track its slot across growth, got ok=%v v=%s", ok, v)
	}
}

package orderedmap

// Map is a map that remembers the order in which keys were first inserted.
type Map[K comparable, V any] struct {
	index  map[K]int
	keys   []K
	values []V
}

// New creates and returns an empty Map.
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		index: make(map[K]int),
	}
}

// Get returns the value stored under key and whether it was present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	i, ok := m.index[key]
	if !ok {
		var zero V
		return zero, false
	}

	return m.values[i], true
}

// Set stores value under key. An existing key keeps its original position.
func (m *Map[K, V]) Set(key K, value V) {
	if i, ok := m.index[key]; ok {
		m.values[i] = value
		return
	}

	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)
}

// SetIfAbsent stores value under key only when key is not present yet.
// Returns true if the value was stored.
func (m *Map[K, V]) SetIfAbsent(key K, value V) bool {
	if _, ok := m.index[key]; ok {
		return false
	}

	m.Set(key, value)
	return true
}

// Len returns the number of keys.
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Values returns a copy of the values in key insertion order.
func (m *Map[K, V]) Values() []V {
	values := make([]V, len(m.values))
	copy(values, m.values)
	return values
}

package sheet

// Value is an observable float holding the panel's continuous vertical
// offset. One writer (the engine) and any number of readers. A Value is
// not safe for concurrent use; drive it from the UI loop.
type Value struct {
	v         float64
	listeners map[int]func(float64)
	nextID    int
}

// NewValue returns a Value holding v.
func NewValue(v float64) *Value {
	return &Value{v: v}
}

// Get returns the current value.
func (val *Value) Get() float64 {
	return val.v
}

// Set stores v and notifies listeners when it changed.
func (val *Value) Set(v float64) {
	if v == val.v {
		return
	}
	val.v = v
	for _, fn := range val.listeners {
		fn(v)
	}
}

// Listen registers fn to be called on every change. The returned func
// removes it.
func (val *Value) Listen(fn func(float64)) (remove func()) {
	if val.listeners == nil {
		val.listeners = make(map[int]func(float64))
	}
	id := val.nextID
	val.nextID++
	val.listeners[id] = fn
	return func() { delete(val.listeners, id) }
}

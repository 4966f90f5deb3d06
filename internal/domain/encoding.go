package domain

// Encoding is the outcome of an encode call: either a usable embedding or an
// unavailability reason. Encoder failures degrade to Unavailable instead of
// propagating, so callers skip persistence/ranking rather than fail the
// request.
type Encoding struct {
	vector []float32
	reason string
}

// Embedded wraps a successfully produced embedding.
func Embedded(vector []float32) Encoding {
	return Encoding{vector: vector}
}

// Unavailable marks an encode that produced no embedding.
func Unavailable(reason string) Encoding {
	return Encoding{reason: reason}
}

// Available reports whether the encoding carries a usable vector.
func (e Encoding) Available() bool { return len(e.vector) > 0 }

// Vector returns the embedding, or nil when unavailable.
func (e Encoding) Vector() []float32 { return e.vector }

// Reason returns why the embedding is unavailable, or "" when it is available.
func (e Encoding) Reason() string { return e.reason }

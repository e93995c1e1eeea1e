package store

// Memory is an in-memory Blob. It backs tests and the degraded mode used
// when the on-disk database cannot be opened: the app keeps working,
// nothing survives the process.
type Memory struct {
	blobs map[string][]byte
}

var _ Blob = (*Memory)(nil)

// NewMemory creates an empty in-memory blob store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, error) {
	v, ok := m.blobs[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Memory) Set(key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	m.blobs[key] = v
	return nil
}

func (m *Memory) Delete(key string) error {
	delete(m.blobs, key)
	return nil
}

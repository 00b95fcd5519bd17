package checkout

import (
	"sync"

	"github.com/google/uuid"
)

// PreviewStore hands out display handles for picked files. Every handle created must be
// revoked once it is no longer shown.
type PreviewStore interface {
	Create(f *File) string
	Revoke(handle string)
}

// MemoryPreviews keeps previews in process memory.
type MemoryPreviews struct {
	mu    sync.Mutex
	files map[string]*File
}

func NewMemoryPreviews() *MemoryPreviews {
	return &MemoryPreviews{files: map[string]*File{}}
}

func (m *MemoryPreviews) Create(f *File) string {
	h := "preview:" + uuid.NewString()
	m.mu.Lock()
	m.files[h] = f
	m.mu.Unlock()
	return h
}

func (m *MemoryPreviews) Revoke(handle string) {
	m.mu.Lock()
	delete(m.files, handle)
	m.mu.Unlock()
}

func (m *MemoryPreviews) Get(handle string) (*File, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.files[handle]
	return f, ok
}

// Live is the number of handles not yet revoked.
func (m *MemoryPreviews) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

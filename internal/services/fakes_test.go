package services

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"sync"
	"time"

	"agencylms/internal/events"
	"agencylms/internal/notify"
	"agencylms/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
)

type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memStore) Save(_ context.Context, key, contentType string, body io.Reader, _ int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	m.types[key] = contentType
	return nil
}

func (m *memStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

type recordingPublisher struct {
	events []events.EnrollmentEvent
}

func (p *recordingPublisher) PublishEnrollment(_ context.Context, ev events.EnrollmentEvent) error {
	p.events = append(p.events, ev)
	return nil
}

type recordingMailer struct {
	sent []notify.Message
}

func (m *recordingMailer) Send(_ context.Context, msg notify.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

type memCache struct {
	data map[string][]byte
	incr int64
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) {
	c.data[key] = data
}

func (c *memCache) Incr(_ context.Context, key string) (int64, error) {
	c.incr++
	c.data[key] = []byte(strconv.FormatInt(c.incr, 10))
	return c.incr, nil
}

var courseCols = []string{
	"id", "title", "slug", "description", "category", "instructor",
	"price", "duration", "level", "image_url", "is_published", "created_at", "updated_at",
}

func courseRow(id int64, title string, published bool) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(courseCols).
		AddRow(id, title, "slug", "", "marketing", "Asha Rao", 4999.0, "6 weeks", "beginner", "", published, now, now)
}

var requestCols = []string{
	"id", "course_id", "title", "user_id", "full_name", "email", "phone", "address",
	"city", "state", "pincode", "payment_method", "transaction_id", "screenshot_key", "screenshot_type",
	"status", "rejection_reason", "reviewed_by", "reviewed_at", "created_at",
}

func requestRow(id int64, status string) *sqlmock.Rows {
	return sqlmock.NewRows(requestCols).AddRow(
		id, int64(3), "SEO Mastery", nil, "Jane Doe", "jane@example.com", "9876543210", "12 MG Road",
		"Pune", "Maharashtra", "411001", "upi", "TXN123", "payment-proofs/2025/01/a.png", "image/png",
		status, "", nil, nil, time.Now(),
	)
}

// pngHeader is enough for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

package controller

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/velora/crm/internal/crm/db"
	"github.com/velora/crm/internal/crm/events"
	"github.com/velora/crm/internal/crm/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
)

// mockProducer records produced events; Produce is called from goroutines so
// access is guarded.
type mockProducer struct {
	mu     sync.Mutex
	events []events.Event
}

func (m *mockProducer) Produce(eventType events.EventType, key string, payload any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events.Event{Type: eventType, Key: key, Payload: payload})
}

func (m *mockProducer) count(eventType events.EventType) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, ev := range m.events {
		if ev.Type == eventType {
			n++
		}
	}
	return n
}

type testEnv struct {
	repo     *db.Repository
	producer *mockProducer

	companies      *CompanyService
	enquiries      *EnquiryService
	quotations     *QuotationService
	communications *CommunicationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	// A file-backed throwaway database: a plain ":memory:" DSN gives every
	// pooled connection its own database, which breaks transactions.
	repo, err := db.Open(sqlite.Open(filepath.Join(t.TempDir(), "crm.db")))
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = repo.Close() })

	producer := &mockProducer{}
	logger := zaptest.NewLogger(t)
	return &testEnv{
		repo:           repo,
		producer:       producer,
		companies:      NewCompanyService(repo, producer, logger),
		enquiries:      NewEnquiryService(repo, producer, logger),
		quotations:     NewQuotationService(repo, producer, logger),
		communications: NewCommunicationService(repo, logger),
	}
}

func (env *testEnv) createEnquiry(t *testing.T, title string) *models.Enquiry {
	t.Helper()
	enquiry, err := env.enquiries.CreateEnquiry(context.Background(), &models.Enquiry{Title: title})
	require.NoError(t, err)
	return enquiry
}

func (env *testEnv) createQuotation(t *testing.T, enquiryID int, number string) *models.Quotation {
	t.Helper()
	quotation, err := env.quotations.CreateQuotation(context.Background(), &models.Quotation{
		EnquiryID: enquiryID,
		Number:    number,
		Value:     50000,
		Currency:  "INR",
	})
	require.NoError(t, err)
	return quotation
}

func (env *testEnv) enquiryStatus(t *testing.T, id int) models.EnquiryStatus {
	t.Helper()
	enquiry, err := env.repo.GetEnquiry(context.Background(), id)
	require.NoError(t, err)
	return enquiry.Status
}

func (env *testEnv) quotationStatus(t *testing.T, id uuid.UUID) models.QuotationStatus {
	t.Helper()
	quotation, err := env.repo.GetQuotation(context.Background(), id)
	require.NoError(t, err)
	return quotation.Status
}

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"portfolio-backend/models"
	"portfolio-backend/services"
)

// fakeStore is an in-memory ProjectStore
type fakeStore struct {
	mu          sync.Mutex
	order       []primitive.ObjectID
	projects    map[primitive.ObjectID]*models.Project
	lastWritten *models.Project

	addErr    error
	findErr   error
	updateErr error
	deleteErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{projects: make(map[primitive.ObjectID]*models.Project)}
}

func (s *fakeStore) FindAll(ctx context.Context) ([]*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	var out []*models.Project
	for _, id := range s.order {
		clone := *s.projects[id]
		out = append(out, &clone)
	}
	return out, nil
}

func (s *fakeStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	p, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (s *fakeStore) Add(ctx context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addErr != nil {
		return s.addErr
	}
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	clone := *project
	s.projects[project.ID] = &clone
	s.order = append(s.order, project.ID)
	return nil
}

func (s *fakeStore) Update(ctx context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	clone := *project
	s.projects[project.ID] = &clone
	s.lastWritten = &clone
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.projects, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *fakeStore) get(id primitive.ObjectID) *models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projects[id]
}

// fakeUploader is an in-memory MediaUploader
type fakeUploader struct {
	mu      sync.Mutex
	calls   []services.AssetKind
	removed []string
	err     error
	baseURL string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{baseURL: "http://media.test"}
}

func (u *fakeUploader) Upload(ctx context.Context, kind services.AssetKind, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.err != nil {
		return "", u.err
	}
	u.calls = append(u.calls, kind)
	return fmt.Sprintf("%s/%s/%s-%s", u.baseURL, services.MediaFolder, kind, filename), nil
}

func (u *fakeUploader) Remove(ctx context.Context, rawURL string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.removed = append(u.removed, rawURL)
	return nil
}

func (u *fakeUploader) callCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.calls)
}

func (u *fakeUploader) removedURLs() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.removed...)
}

// fakeMailer is an in-memory MailSender
type fakeMailer struct {
	mu         sync.Mutex
	configured bool
	err        error
	sent       []services.ContactSubmission
}

func (m *fakeMailer) Configured() bool {
	return m.configured
}

func (m *fakeMailer) Send(ctx context.Context, sub services.ContactSubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sub)
	return nil
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(ctx context.Context) error {
	return p.err
}

func newTestRouter(store ProjectStore, uploader MediaUploader, mailer MailSender, db Pinger) *chi.Mux {
	return newTestRouterWithRollback(store, uploader, mailer, db, false)
}

func newTestRouterWithRollback(store ProjectStore, uploader MediaUploader, mailer MailSender, db Pinger, rollbackUploads bool) *chi.Mux {
	handlers := &routeHandlers{
		projectHandler: newProjectHandler(store, uploader, rollbackUploads),
		contactHandler: newContactHandler(mailer),
		healthHandler:  newHealthHandler(db, "test"),
	}

	r := chi.NewRouter()
	setupRoutes(r, handlers)
	return r
}

// newProjectRequest builds a multipart request the way the frontend form
// submits projects
func newProjectRequest(t *testing.T, method, url string, fields map[string]string, files map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, mw.WriteField(name, value))
	}
	for field, filename := range files {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte("binary-data"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

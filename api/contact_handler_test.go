package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newContactRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSubmitContact_MissingFields(t *testing.T) {
	cases := map[string]string{
		"missing name":    `{"email":"a@b.co","message":"hi"}`,
		"missing email":   `{"name":"Ada","message":"hi"}`,
		"missing message": `{"name":"Ada","email":"a@b.co"}`,
		"empty name":      `{"name":"","email":"a@b.co","message":"hi"}`,
		"all empty":       `{}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			mailer := &fakeMailer{configured: true}
			router := newTestRouter(newFakeStore(), newFakeUploader(), mailer, fakePinger{})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, newContactRequest(body))

			require.Equal(t, http.StatusBadRequest, w.Code)
			// The relay must never be invoked for an invalid payload
			require.Empty(t, mailer.sent)
		})
	}
}

func TestSubmitContact_HappyPath(t *testing.T) {
	mailer := &fakeMailer{configured: true}
	router := newTestRouter(newFakeStore(), newFakeUploader(), mailer, fakePinger{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, newContactRequest(`{"name":"Ada","email":"ada@example.com","message":"hello there"}`))

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, mailer.sent, 1)
	require.Equal(t, "Ada", mailer.sent[0].Name)
	require.Equal(t, "ada@example.com", mailer.sent[0].Email)
	require.Equal(t, "hello there", mailer.sent[0].Message)

	var ack map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
	require.Equal(t, "Message sent successfully!", ack["message"])
}

func TestSubmitContact_RelayNotConfigured(t *testing.T) {
	mailer := &fakeMailer{configured: false}
	router := newTestRouter(newFakeStore(), newFakeUploader(), mailer, fakePinger{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, newContactRequest(`{"name":"Ada","email":"ada@example.com","message":"hi"}`))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Empty(t, mailer.sent)
}

func TestSubmitContact_RelayFailure(t *testing.T) {
	mailer := &fakeMailer{configured: true, err: errors.New("relay down")}
	router := newTestRouter(newFakeStore(), newFakeUploader(), mailer, fakePinger{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, newContactRequest(`{"name":"Ada","email":"ada@example.com","message":"hi"}`))

	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSubmitContact_InvalidJSON(t *testing.T) {
	router := newTestRouter(newFakeStore(), newFakeUploader(), &fakeMailer{configured: true}, fakePinger{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, newContactRequest(`{not json`))

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitContact_BodyOverCap(t *testing.T) {
	mailer := &fakeMailer{configured: true}
	router := newTestRouter(newFakeStore(), newFakeUploader(), mailer, fakePinger{})
	capped := MaxBodySizeMiddleware(64)(router)

	body, err := json.Marshal(map[string]string{
		"name":    "Ada",
		"email":   "a@b.co",
		"message": strings.Repeat("x", 512),
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	capped.ServeHTTP(w, newContactRequest(string(body)))

	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	require.Empty(t, mailer.sent)
}

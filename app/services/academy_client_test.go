package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfurqan/academy-admin/models"
	"github.com/alfurqan/academy-admin/utils"
)

func envelopeHandler(t *testing.T, status int, env Envelope) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		require.NoError(t, json.NewEncoder(w).Encode(env))
	}
}

func rawData(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestListTutorsUnwrapsEnvelope(t *testing.T) {
	tutors := []models.Tutor{
		{ID: "t1", Name: "Ahmad Hassan", Status: models.TutorStatusActive},
		{ID: "t2", Name: "Zaynab Ali", Status: models.TutorStatusOnLeave},
	}
	server := httptest.NewServer(envelopeHandler(t, http.StatusOK, Envelope{
		Success: true,
		Message: "Tutors fetched",
		Data:    rawData(t, tutors),
	}))
	defer server.Close()

	client := NewAcademyClient(server.URL, time.Second)
	got, err := client.ListTutors(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "t1", got[0].ID)
	assert.Equal(t, "Zaynab Ali", got[1].Name)
}

func TestRejectedEnvelopeCarriesBackendMessage(t *testing.T) {
	server := httptest.NewServer(envelopeHandler(t, http.StatusOK, Envelope{
		Success: false,
		Message: "Email already registered",
	}))
	defer server.Close()

	client := NewAcademyClient(server.URL, time.Second)
	_, err := client.CreateTutor(context.Background(), map[string]any{"name": "Ahmad"}, nil)

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "BACKEND_REJECTED", ue.Code)
	assert.Equal(t, "Email already registered", ue.Message)
	assert.False(t, ue.Transient)
}

func TestServerErrorIsTransient(t *testing.T) {
	server := httptest.NewServer(envelopeHandler(t, http.StatusBadGateway, Envelope{
		Success: false,
		Message: "upstream database down",
	}))
	defer server.Close()

	client := NewAcademyClient(server.URL, time.Second)
	_, err := client.GetTutor(context.Background(), "t1")

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "BACKEND_ERROR", ue.Code)
	assert.Equal(t, http.StatusBadGateway, ue.Status)
	assert.True(t, ue.Transient)
	assert.True(t, IsTransient(err))
}

func TestClientErrorIsNotTransient(t *testing.T) {
	server := httptest.NewServer(envelopeHandler(t, http.StatusNotFound, Envelope{
		Success: false,
		Message: "Tutor not found",
	}))
	defer server.Close()

	client := NewAcademyClient(server.URL, time.Second)
	_, err := client.GetTutor(context.Background(), "missing")

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, http.StatusNotFound, ue.Status)
	assert.False(t, ue.Transient)
}

func TestUnreachableBackend(t *testing.T) {
	// Reserve a port, then close it so nothing is listening
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewAcademyClient(url, 200*time.Millisecond)
	_, err := client.ListTutors(context.Background())

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "BACKEND_UNREACHABLE", ue.Code)
	assert.True(t, ue.Transient)
}

func TestMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewAcademyClient(server.URL, time.Second)
	_, err := client.ListTutors(context.Background())

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "DECODE_FAILED", ue.Code)
}

func TestSuccessWithoutDataFails(t *testing.T) {
	server := httptest.NewServer(envelopeHandler(t, http.StatusOK, Envelope{Success: true}))
	defer server.Close()

	client := NewAcademyClient(server.URL, time.Second)
	_, err := client.GetTutor(context.Background(), "t1")

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "EMPTY_DATA", ue.Code)
}

func TestDeleteIgnoresMissingData(t *testing.T) {
	server := httptest.NewServer(envelopeHandler(t, http.StatusOK, Envelope{
		Success: true,
		Message: "Tutor deleted",
	}))
	defer server.Close()

	client := NewAcademyClient(server.URL, time.Second)
	err := client.DeleteTutor(context.Background(), "t1")

	assert.NoError(t, err)
}

func TestCreateTutorMultipartForwardsPhoto(t *testing.T) {
	created := models.Tutor{ID: "t9", Name: "Ahmad Hassan", PhotoURL: "/uploads/t9.jpg"}

	var gotContentType string
	var gotName string
	var gotPhoto []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseMultipartForm(8<<20))
		gotName = r.FormValue("name")

		file, _, err := r.FormFile("photo")
		require.NoError(t, err)
		defer file.Close()
		buf := make([]byte, 16)
		n, _ := file.Read(buf)
		gotPhoto = buf[:n]

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Envelope{Success: true, Data: rawData(t, created)})
	}))
	defer server.Close()

	client := NewAcademyClient(server.URL, time.Second)
	photo := &Upload{
		FieldName:   "photo",
		FileName:    "ahmad.jpg",
		ContentType: "image/jpeg",
		Content:     []byte("jpegbytes"),
	}
	got, err := client.CreateTutor(context.Background(), map[string]any{"name": "Ahmad Hassan"}, photo)

	require.NoError(t, err)
	assert.Equal(t, "t9", got.ID)
	assert.Contains(t, gotContentType, "multipart/form-data")
	assert.Equal(t, "Ahmad Hassan", gotName)
	assert.Equal(t, []byte("jpegbytes"), gotPhoto)
}

func TestRequestIDHeaderPropagated(t *testing.T) {
	var gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Envelope{Success: true, Data: rawData(t, []models.Tutor{})})
	}))
	defer server.Close()

	client := NewAcademyClient(server.URL, time.Second)
	ctx := context.WithValue(context.Background(), utils.RequestIDKey, "req-123")
	_, err := client.ListTutors(ctx)

	require.NoError(t, err)
	assert.Equal(t, "req-123", gotRequestID)
}

func TestToggleTutorStatusUsesPatch(t *testing.T) {
	toggled := models.Tutor{ID: "t1", Status: models.TutorStatusInactive}

	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Envelope{Success: true, Data: rawData(t, toggled)})
	}))
	defer server.Close()

	client := NewAcademyClient(server.URL, time.Second)
	got, err := client.ToggleTutorStatus(context.Background(), "t1")

	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/tutors/t1/toggle-status", gotPath)
	assert.Equal(t, models.TutorStatusInactive, got.Status)
}

func TestUpstreamErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &UpstreamError{Code: "BACKEND_UNREACHABLE", Message: "Academy backend is unreachable", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "connection refused")
}

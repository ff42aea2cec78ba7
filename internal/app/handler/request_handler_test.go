package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"itsupport/internal/app/config"
	"itsupport/internal/app/ds"
	"itsupport/internal/app/form"
	"itsupport/internal/app/middleware"
	"itsupport/internal/app/redis"
	"itsupport/internal/app/repository"
	"itsupport/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeStorage struct {
	uploadErr error
	uploaded  []string
	deleted   []string
}

func (f *fakeStorage) UploadFile(fileData []byte, originalFilename string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	key := fmt.Sprintf("key-%d%s", len(f.uploaded), originalFilename[strings.LastIndex(originalFilename, "."):])
	f.uploaded = append(f.uploaded, key)
	return key, nil
}

func (f *fakeStorage) DeleteFile(key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) PublicURL(key string) string {
	return "http://files.local/" + key
}

// fakeDraftStore round-trips drafts by value, so handler mutations are only
// visible after an explicit save, like the real Redis store.
type fakeDraftStore struct {
	drafts map[string]form.Draft
}

func newFakeDraftStore() *fakeDraftStore {
	return &fakeDraftStore{drafts: map[string]form.Draft{}}
}

func (f *fakeDraftStore) SaveDraft(ctx context.Context, d *form.Draft) error {
	f.drafts[d.ID] = *d
	return nil
}

func (f *fakeDraftStore) GetDraft(ctx context.Context, id string) (*form.Draft, error) {
	d, ok := f.drafts[id]
	if !ok {
		return nil, redis.ErrDraftNotFound
	}
	return &d, nil
}

func (f *fakeDraftStore) DeleteDraft(ctx context.Context, id string) error {
	delete(f.drafts, id)
	return nil
}

type testEnv struct {
	router  *gin.Engine
	handler *APIHandler
	repo    *repository.Repository
	storage *fakeStorage
	drafts  *fakeDraftStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handler-%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	repo, err := repository.NewWithDB(db)
	require.NoError(t, err)

	storage := &fakeStorage{}
	drafts := newFakeDraftStore()
	cfg := &config.Config{}
	cfg.Upload.MaxFileSize = 10 << 20

	h := NewAPIHandler(repo, storage, drafts, nil, cfg)

	// Routes registered without the JWT middleware; the identity stub below
	// plays the part of a signed-in user.
	asUser := func(c *gin.Context) {
		middleware.SetIdentity(c, middleware.Identity{UserID: 1, Role: role.Client})
		c.Next()
	}

	router := gin.New()
	router.POST("/api/requests/drafts", h.CreateDraft)
	router.GET("/api/requests/drafts/:id", h.GetDraft)
	router.PUT("/api/requests/drafts/:id", h.UpdateDraft)
	router.POST("/api/requests/drafts/:id/advance", h.AdvanceDraft)
	router.POST("/api/requests/drafts/:id/back", h.BackDraft)
	router.POST("/api/requests/drafts/:id/submit", asUser, h.SubmitDraft)
	router.GET("/api/requests", h.ListRequests)
	router.GET("/api/requests/:id", h.GetRequest)
	router.PUT("/api/requests/:id/status", h.UpdateRequestStatus)

	return &testEnv{router: router, handler: h, repo: repo, storage: storage, drafts: drafts}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) reviewDraft(t *testing.T) *form.Draft {
	t.Helper()

	d := form.NewDraft(ds.ServiceMaintenance, ds.PlanStandard)
	d.FullName = "Amina El Fassi"
	d.Email = "amina@example.com"
	d.Phone = "+212600000000"
	d.Company = "El Fassi Conseil"
	d.Step = form.StepReview
	require.NoError(t, e.drafts.SaveDraft(context.Background(), d))
	return d
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestDraftLifecycle(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/requests/drafts?service=security&plan=pro", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)
	require.Equal(t, "contact", created["step"])
	require.Equal(t, "security", created["service_type"])
	require.Equal(t, "pro", created["plan"])
	id := created["id"].(string)

	// Contact fields missing, the form must stay put.
	w = env.do(t, http.MethodPost, "/api/requests/drafts/"+id+"/advance", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "champs obligatoires")

	w = env.do(t, http.MethodPut, "/api/requests/drafts/"+id, map[string]string{
		"full_name": "Amina El Fassi",
		"email":     "amina@example.com",
		"phone":     "+212600000000",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/requests/drafts/"+id+"/advance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "details", decodeBody(t, w)["step"])

	w = env.do(t, http.MethodPost, "/api/requests/drafts/"+id+"/advance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	review := decodeBody(t, w)
	require.Equal(t, "review", review["step"])

	summary := review["summary"].(map[string]interface{})
	require.Equal(t, float64(2000), summary["total_amount"])
	require.Equal(t, "2000 DH", summary["total_label"])
	require.Equal(t, "Forfait Pro", summary["plan_label"])

	// Back to details, the summary disappears but nothing is lost.
	w = env.do(t, http.MethodPost, "/api/requests/drafts/"+id+"/back", nil)
	require.Equal(t, http.StatusOK, w.Code)
	details := decodeBody(t, w)
	require.Equal(t, "details", details["step"])
	require.Nil(t, details["summary"])
	require.Equal(t, "Amina El Fassi", details["full_name"])
}

func TestCreateDraftDropsInvalidPrefill(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/requests/drafts?service=cloud&plan=enterprise", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)
	require.Equal(t, "", created["service_type"])
	require.Equal(t, "", created["plan"])
}

func TestGetDraftNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/requests/drafts/nope", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateDraftRejectsUnknownPlan(t *testing.T) {
	env := newTestEnv(t)
	d := env.reviewDraft(t)
	d.Step = form.StepDetails
	require.NoError(t, env.drafts.SaveDraft(context.Background(), d))

	w := env.do(t, http.MethodPut, "/api/requests/drafts/"+d.ID, map[string]string{
		"plan": "enterprise",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "forfait inconnu")
}

func TestSubmitDraftWithoutFile(t *testing.T) {
	env := newTestEnv(t)
	d := env.reviewDraft(t)

	w := env.do(t, http.MethodPost, "/api/requests/drafts/"+d.ID+"/submit", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	require.Equal(t, "pending", body["status"])
	require.Equal(t, "En attente", body["status_label"])
	require.Equal(t, "unpaid", body["payment_status"])
	require.Equal(t, float64(1200), body["total_amount"])
	require.Nil(t, body["file_url"])
	require.Nil(t, body["file_name"])

	// Draft is gone once the record exists.
	_, err := env.drafts.GetDraft(context.Background(), d.ID)
	require.ErrorIs(t, err, redis.ErrDraftNotFound)

	requests, err := env.repo.GetRequests("", nil, nil)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	require.Equal(t, uint(1), requests[0].CreatorID)
	require.Equal(t, float64(1200), requests[0].TotalAmount)
}

func TestSubmitDraftWithFile(t *testing.T) {
	env := newTestEnv(t)
	d := env.reviewDraft(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "devis.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 contenu"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/requests/drafts/"+d.ID+"/submit", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "devis.pdf", body["file_name"])
	require.Equal(t, "http://files.local/"+env.storage.uploaded[0], body["file_url"])
}

func TestSubmitDraftUploadFailureKeepsDraft(t *testing.T) {
	env := newTestEnv(t)
	env.storage.uploadErr = errors.New("minio unreachable")
	d := env.reviewDraft(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "devis.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("contenu"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/requests/drafts/"+d.ID+"/submit", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	// The storage error surfaces verbatim, nothing is recorded and the
	// draft survives for a retry.
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "minio unreachable")

	requests, err := env.repo.GetRequests("", nil, nil)
	require.NoError(t, err)
	require.Empty(t, requests)

	_, err = env.drafts.GetDraft(context.Background(), d.ID)
	require.NoError(t, err)
}

func TestSubmitDraftRejectsOversizedFile(t *testing.T) {
	env := newTestEnv(t)
	env.handler.Config.Upload.MaxFileSize = 8
	d := env.reviewDraft(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "gros.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("plus de huit octets"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/requests/drafts/"+d.ID+"/submit", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, env.storage.uploaded)
}

func TestSubmitDraftRequiresReviewStep(t *testing.T) {
	env := newTestEnv(t)
	d := env.reviewDraft(t)
	d.Step = form.StepDetails
	require.NoError(t, env.drafts.SaveDraft(context.Background(), d))

	w := env.do(t, http.MethodPost, "/api/requests/drafts/"+d.ID+"/submit", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateRequestStatusFlow(t *testing.T) {
	env := newTestEnv(t)
	d := env.reviewDraft(t)
	w := env.do(t, http.MethodPost, "/api/requests/drafts/"+d.ID+"/submit", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(float64)

	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/requests/%.0f/status", id), map[string]string{
		"status": "approved",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "approved", body["status"])
	require.Equal(t, "Approuvé", body["status_label"])

	actions, ok := body["actions"].([]interface{})
	require.True(t, ok)
	require.Len(t, actions, 1)
	require.Equal(t, "in_progress", actions[0])
}

func TestUpdateRequestStatusInvalidTransition(t *testing.T) {
	env := newTestEnv(t)
	d := env.reviewDraft(t)
	w := env.do(t, http.MethodPost, "/api/requests/drafts/"+d.ID+"/submit", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(float64)

	// pending -> completed skips the workflow.
	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/requests/%.0f/status", id), map[string]string{
		"status": "completed",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/requests/%.0f", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "pending", decodeBody(t, w)["status"])
}

func TestUpdateRequestStatusUnknownStatus(t *testing.T) {
	env := newTestEnv(t)
	d := env.reviewDraft(t)
	w := env.do(t, http.MethodPost, "/api/requests/drafts/"+d.ID+"/submit", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(float64)

	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/requests/%.0f/status", id), map[string]string{
		"status": "archived",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListRequestsRejectsUnknownStatusFilter(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/requests?status=archived", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTerminalRequestHasNoActions(t *testing.T) {
	env := newTestEnv(t)
	d := env.reviewDraft(t)
	w := env.do(t, http.MethodPost, "/api/requests/drafts/"+d.ID+"/submit", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(float64)

	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/requests/%.0f/status", id), map[string]string{"status": "rejected"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "Refusé", body["status_label"])
	require.Empty(t, body["actions"])
}

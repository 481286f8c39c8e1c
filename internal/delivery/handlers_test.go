package delivery_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Vovarama1992/baluplix/internal/delivery"
	"github.com/Vovarama1992/baluplix/internal/domain"
	"github.com/Vovarama1992/baluplix/internal/models"
)

const testAdminToken = "test-admin-token"

type memRepo struct {
	videos map[string]models.Video
	clock  time.Time
}

func newMemRepo() *memRepo {
	return &memRepo{
		videos: make(map[string]models.Video),
		clock:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *memRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memRepo) Insert(_ context.Context, video *models.Video) error {
	now := m.tick()
	video.CreatedAt = now
	video.UpdatedAt = now
	m.videos[video.ID] = *video
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*models.Video, error) {
	v, ok := m.videos[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (m *memRepo) List(_ context.Context, publishedOnly bool) ([]models.Video, error) {
	out := make([]models.Video, 0, len(m.videos))
	for _, v := range m.videos {
		if publishedOnly && !v.Published {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memRepo) SetPublished(_ context.Context, id string, published bool) (*models.Video, error) {
	v, ok := m.videos[id]
	if !ok {
		return nil, nil
	}
	v.Published = published
	v.UpdatedAt = m.tick()
	m.videos[id] = v
	return &v, nil
}

func (m *memRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := m.videos[id]; !ok {
		return false, nil
	}
	delete(m.videos, id)
	return true, nil
}

type fakeStore struct {
	removed []string
}

func (f *fakeStore) PresignUpload(_ context.Context, key, _ string, _ time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.example/%s?sig=put", key), nil
}

func (f *fakeStore) PresignDownload(_ context.Context, key string, _ time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.example/%s?sig=get", key), nil
}

func (f *fakeStore) Remove(_ context.Context, key string) error {
	f.removed = append(f.removed, key)
	return nil
}

func (f *fakeStore) Exists(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func newTestServer(t *testing.T) (*chi.Mux, *memRepo, *fakeStore) {
	t.Helper()

	log := zap.NewNop().Sugar()
	repo := newMemRepo()
	store := &fakeStore{}

	uploader := domain.NewUploader(store, 15*time.Minute)
	catalog := domain.NewCatalog(repo, store, log, time.Hour, false)
	gate := domain.NewGate(testAdminToken)

	r := chi.NewRouter()
	delivery.RegisterRoutes(r,
		gate,
		delivery.NewUploadHandler(uploader, log),
		delivery.NewVideoHandler(catalog, log),
		log,
	)
	return r, repo, store
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Admin-Token", token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func createVideo(t *testing.T, r http.Handler, title, key string) models.Video {
	t.Helper()

	rec := doJSON(t, r, http.MethodPost, "/videos", testAdminToken, map[string]any{
		"title":      title,
		"storageKey": key,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var video models.Video
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &video))
	return video
}

func TestHealth(t *testing.T) {
	r, _, _ := newTestServer(t)

	rec := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestIssueUploadTarget_HTTP(t *testing.T) {
	r, _, _ := newTestServer(t)

	rec := doJSON(t, r, http.MethodPost, "/upload-target", testAdminToken, map[string]string{
		"filename":    "movie.mp4",
		"contentType": "video/mp4",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var target struct {
		UploadURL  string `json:"uploadUrl"`
		StorageKey string `json:"storageKey"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &target))
	assert.True(t, strings.HasPrefix(target.StorageKey, "videos/"))
	assert.NotEmpty(t, target.UploadURL)
}

func TestIssueUploadTarget_MissingFields(t *testing.T) {
	r, _, _ := newTestServer(t)

	rec := doJSON(t, r, http.MethodPost, "/upload-target", testAdminToken, map[string]string{
		"filename": "movie.mp4",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestCreate_HTTP(t *testing.T) {
	r, repo, _ := newTestServer(t)

	video := createVideo(t, r, "Demo", "videos/123-abc-demo.mp4")
	assert.NotEmpty(t, video.ID)
	assert.False(t, video.Published)
	require.Len(t, repo.videos, 1)
}

func TestPublicListing(t *testing.T) {
	r, _, _ := newTestServer(t)

	video := createVideo(t, r, "Demo", "videos/123-abc-demo.mp4")

	// draft is invisible publicly
	rec := doJSON(t, r, http.MethodGet, "/videos", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = doJSON(t, r, http.MethodPost, "/video/"+video.ID+"/publish", testAdminToken, map[string]bool{"publish": true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/videos", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []models.PublishedVideo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, video.ID, listed[0].ID)
	assert.NotEmpty(t, listed[0].URL)
}

func TestAdminListing(t *testing.T) {
	r, _, _ := newTestServer(t)

	createVideo(t, r, "Draft", "videos/1-a-draft.mp4")

	rec := doJSON(t, r, http.MethodGet, "/admin/videos", testAdminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []models.Video
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)
}

func TestPublish_NotFound(t *testing.T) {
	r, _, _ := newTestServer(t)

	rec := doJSON(t, r, http.MethodPost, "/video/no-such-id/publish", testAdminToken, map[string]bool{"publish": true})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDelete_HTTP(t *testing.T) {
	r, repo, store := newTestServer(t)

	video := createVideo(t, r, "Demo", "videos/123-abc-demo.mp4")

	rec := doJSON(t, r, http.MethodDelete, "/admin/video/"+video.ID, testAdminToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, repo.videos)
	assert.Equal(t, []string{"videos/123-abc-demo.mp4"}, store.removed)

	rec = doJSON(t, r, http.MethodDelete, "/admin/video/"+video.ID, testAdminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminGate_RejectsAndLeavesNoTrace(t *testing.T) {
	r, repo, _ := newTestServer(t)

	calls := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPost, "/upload-target", map[string]string{"filename": "a.mp4", "contentType": "video/mp4"}},
		{http.MethodPost, "/videos", map[string]string{"title": "X", "storageKey": "videos/1-a-x.mp4"}},
		{http.MethodGet, "/admin/videos", nil},
		{http.MethodPost, "/video/some-id/publish", map[string]bool{"publish": true}},
		{http.MethodDelete, "/admin/video/some-id", nil},
	}

	for _, tokenCase := range []string{"", "wrong-token"} {
		for _, call := range calls {
			rec := doJSON(t, r, call.method, call.path, tokenCase, call.body)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s token=%q", call.method, call.path, tokenCase)
		}
	}

	// no state change slipped through
	rec := doJSON(t, r, http.MethodGet, "/admin/videos", testAdminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.Empty(t, repo.videos)
}

func TestAdminGate_BodyTokenFallback(t *testing.T) {
	r, repo, _ := newTestServer(t)

	rec := doJSON(t, r, http.MethodPost, "/videos", "", map[string]string{
		"title":      "Via body token",
		"storageKey": "videos/1-a-body.mp4",
		"adminToken": testAdminToken,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, repo.videos, 1)
}

func TestPublicListing_NeedsNoToken(t *testing.T) {
	r, _, _ := newTestServer(t)

	rec := doJSON(t, r, http.MethodGet, "/videos", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

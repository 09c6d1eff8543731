package nutrition

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	logs []Log
}

func (f *fakeStore) Create(ctx context.Context, userID uuid.UUID, food string, calories int) (*Log, error) {
	l := Log{
		ID:        uuid.New(),
		UserID:    userID,
		Food:      food,
		Calories:  calories,
		CreatedAt: time.Now(),
	}
	f.logs = append(f.logs, l)
	return &l, nil
}

func (f *fakeStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]Log, error) {
	out := make([]Log, 0)
	for _, l := range f.logs {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func newTestRouter(store Store) *chi.Mux {
	h := NewHandler(store)
	r := chi.NewRouter()
	r.Post("/nutrition", h.CreateLog)
	r.Get("/nutrition/{user_id}", h.ListLogs)
	return r
}

func TestCreateLog(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	router := newTestRouter(store)
	userID := uuid.New()

	payload, err := json.Marshal(CreateRequest{
		UserID:   userID.String(),
		Food:     "oatmeal",
		Calories: 350,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/nutrition", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created Log
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "oatmeal", created.Food)
	assert.Equal(t, 350, created.Calories)
}

func TestCreateLog_Validation(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&fakeStore{})

	for _, body := range []CreateRequest{
		{UserID: "nope", Food: "oatmeal", Calories: 350},
		{UserID: uuid.NewString(), Calories: 350},
		{UserID: uuid.NewString(), Food: "oatmeal"},
	} {
		payload, err := json.Marshal(body)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/nutrition", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestListLogs(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	router := newTestRouter(store)
	userID := uuid.New()

	_, err := store.Create(context.Background(), userID, "oatmeal", 350)
	require.NoError(t, err)
	_, err = store.Create(context.Background(), userID, "chicken salad", 520)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/nutrition/"+userID.String(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []Log
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestListLogs_NoneFound(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&fakeStore{})

	req := httptest.NewRequest(http.MethodGet, "/nutrition/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

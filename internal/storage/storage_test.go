package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strings"
	"testing"

	"franchise-estimator/internal/common/config"
	"franchise-estimator/internal/common/database"
	"franchise-estimator/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "franchise_saved_scenarios"

// ==========================
// Memory
// ==========================

func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, testKey)
	assert.ErrorIs(t, err, ErrNotFound)

	value := []byte(`[{"id":"sc_1"}]`)
	require.NoError(t, m.Set(ctx, testKey, value))
	value[0] = 'x'

	got, err := m.Get(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"sc_1"}]`, string(got))

	require.NoError(t, m.Set(ctx, testKey, []byte(`[]`)))
	got, err = m.Get(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

// ==========================
// Redis
// ==========================

func TestRedis_AgainstMiniredis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := NewRedis(client)
	defer r.Close()

	require.NoError(t, r.Ping(ctx))

	_, err := r.Get(ctx, testKey)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, r.Set(ctx, testKey, []byte(`[{"id":"sc_1"}]`)))

	raw, err := mr.Get(testKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"sc_1"}]`, raw)
	assert.Zero(t, mr.TTL(testKey))

	got, err := r.Get(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"sc_1"}]`, string(got))
}

func TestRedis_Errors(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	r := NewRedis(client)

	mock.ExpectGet(testKey).SetErr(errors.New("connection refused"))
	_, err := r.Get(ctx, testKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "connection refused")

	mock.ExpectSet(testKey, []byte(`[]`), 0).SetErr(errors.New("READONLY"))
	err = r.Set(ctx, testKey, []byte(`[]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "READONLY")

	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Postgres
// ==========================

func newPostgresMock(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgres(db, "scenario_blobs"), mock
}

func TestPostgres_EnsureSchema(t *testing.T) {
	pg, mock := newPostgresMock(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "scenario_blobs"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, pg.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Get(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT value FROM "scenario_blobs" WHERE key = $1`)

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		want    string
		wantErr error
	}{
		{
			name: "row present",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs(testKey).
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[{"id":"sc_1"}]`))
			},
			want: `[{"id":"sc_1"}]`,
		},
		{
			name: "no row",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WithArgs(testKey).
					WillReturnRows(sqlmock.NewRows([]string{"value"}))
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pg, mock := newPostgresMock(t)
			tt.setup(mock)

			got, err := pg.Get(context.Background(), testKey)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, string(got))
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgres_GetDatabaseError(t *testing.T) {
	pg, mock := newPostgresMock(t)
	mock.ExpectQuery(`SELECT value FROM`).WillReturnError(errors.New("connection reset"))

	_, err := pg.Get(context.Background(), testKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestPostgres_SetUpserts(t *testing.T) {
	pg, mock := newPostgresMock(t)

	mock.ExpectExec(`INSERT INTO "scenario_blobs" \(key, value, updated_at\) VALUES \(\$1, \$2, NOW\(\)\)\s+ON CONFLICT \(key\) DO UPDATE`).
		WithArgs(testKey, `[]`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, pg.Set(context.Background(), testKey, []byte(`[]`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Elasticsearch
// ==========================

type fakeTransport struct {
	requests []*http.Request
	respond  func(req *http.Request) *http.Response
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.requests = append(f.requests, req)
	return f.respond(req), nil
}

func esResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header: http.Header{
			"X-Elastic-Product": []string{"Elasticsearch"},
			"Content-Type":      []string{"application/json"},
		},
		Body: io.NopCloser(strings.NewReader(body)),
	}
}

func newElasticsearchFake(t *testing.T, respond func(req *http.Request) *http.Response) (*Elasticsearch, *fakeTransport) {
	t.Helper()
	tr := &fakeTransport{respond: respond}
	ec, err := database.NewElasticsearch(config.ElasticsearchConfig{URL: "http://localhost:9200"}, tr)
	require.NoError(t, err)
	return NewElasticsearch(ec.Client, "franchise-scenarios"), tr
}

func TestElasticsearch_Get(t *testing.T) {
	es, tr := newElasticsearchFake(t, func(req *http.Request) *http.Response {
		return esResponse(http.StatusOK, `{"_index":"franchise-scenarios","_id":"franchise_saved_scenarios","found":true,"_source":{"value":"[{\"id\":\"sc_1\"}]"}}`)
	})

	got, err := es.Get(context.Background(), testKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"sc_1"}]`, string(got))

	require.Len(t, tr.requests, 1)
	assert.Equal(t, http.MethodGet, tr.requests[0].Method)
	assert.Equal(t, "/franchise-scenarios/_doc/franchise_saved_scenarios", tr.requests[0].URL.Path)
}

func TestElasticsearch_GetMissing(t *testing.T) {
	es, _ := newElasticsearchFake(t, func(req *http.Request) *http.Response {
		return esResponse(http.StatusNotFound, `{"_index":"franchise-scenarios","_id":"franchise_saved_scenarios","found":false}`)
	})

	_, err := es.Get(context.Background(), testKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestElasticsearch_SetIndexesDocument(t *testing.T) {
	var body string
	es, tr := newElasticsearchFake(t, func(req *http.Request) *http.Response {
		b, _ := io.ReadAll(req.Body)
		body = string(b)
		return esResponse(http.StatusCreated, `{"result":"created"}`)
	})

	require.NoError(t, es.Set(context.Background(), testKey, []byte(`[]`)))

	require.Len(t, tr.requests, 1)
	assert.Equal(t, http.MethodPut, tr.requests[0].Method)
	assert.Equal(t, "/franchise-scenarios/_doc/franchise_saved_scenarios", tr.requests[0].URL.Path)
	assert.Equal(t, "true", tr.requests[0].URL.Query().Get("refresh"))
	assert.Contains(t, body, `"value":"[]"`)
}

func TestElasticsearch_SetError(t *testing.T) {
	es, _ := newElasticsearchFake(t, func(req *http.Request) *http.Response {
		return esResponse(http.StatusInternalServerError, `{"error":"boom"}`)
	})

	err := es.Set(context.Background(), testKey, []byte(`[]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

// ==========================
// Factory
// ==========================

func TestNew_SelectsBackend(t *testing.T) {
	ctx := context.Background()
	log := logger.NewTestLogger(t)

	b, err := New(ctx, &config.Config{Storage: config.StorageConfig{Backend: config.BackendMemory}}, log)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, b)

	mr := miniredis.RunT(t)
	cfg := &config.Config{
		Storage:  config.StorageConfig{Backend: config.BackendRedis, Key: testKey},
		Database: config.DatabaseConfig{Redis: config.RedisConfig{Address: mr.Addr()}},
	}
	b, err = New(ctx, cfg, log)
	require.NoError(t, err)
	assert.IsType(t, &Redis{}, b)
	assert.NoError(t, b.Close())

	_, err = New(ctx, &config.Config{Storage: config.StorageConfig{Backend: "s3"}}, log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported storage backend "s3"`)
}

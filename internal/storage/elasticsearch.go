package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// Elasticsearch stores each key as one document in index, with the blob
// under the "value" field.
type Elasticsearch struct {
	client *elasticsearch.Client
	index  string
}

type blobDocument struct {
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewElasticsearch(client *elasticsearch.Client, index string) *Elasticsearch {
	return &Elasticsearch{client: client, index: index}
}

func (e *Elasticsearch) Get(ctx context.Context, key string) ([]byte, error) {
	res, err := e.client.Get(e.index, key, e.client.Get.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch get %s: %w", key, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch get %s: %s", key, res.Status())
	}

	var hit struct {
		Found  bool         `json:"found"`
		Source blobDocument `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&hit); err != nil {
		return nil, fmt.Errorf("failed to decode elasticsearch response: %w", err)
	}
	if !hit.Found {
		return nil, ErrNotFound
	}
	return []byte(hit.Source.Value), nil
}

func (e *Elasticsearch) Set(ctx context.Context, key string, value []byte) error {
	body, err := json.Marshal(blobDocument{Value: string(value), UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	res, err := e.client.Index(
		e.index,
		bytes.NewReader(body),
		e.client.Index.WithDocumentID(key),
		e.client.Index.WithRefresh("true"),
		e.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch index %s: %w", key, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch index %s: %s", key, res.Status())
	}
	return nil
}

func (e *Elasticsearch) Ping(ctx context.Context) error {
	res, err := e.client.Ping(e.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping error: %s", res.Status())
	}
	return nil
}

// Close is a no-op; the client holds no persistent connection state.
func (e *Elasticsearch) Close() error { return nil }

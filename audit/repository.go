// api/audit/repository.go
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
)

const indexName = "audit-logs"

// Repository is the append-only audit store.
type Repository interface {
	Insert(ctx context.Context, entry Entry) error
	Search(ctx context.Context, filter Filter, sort Sort, page Page) ([]Entry, int64, error)
	GetByID(ctx context.Context, id string) (*Entry, error)
	CountByField(ctx context.Context, filter Filter, field string) (map[string]int64, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) error
}

type ElasticsearchRepository struct {
	esClient *elasticsearch.Client
}

// NewElasticsearchRepository creates a repository against the given
// Elasticsearch URL.
func NewElasticsearchRepository(esURL string) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{esURL},
	}
	esClient, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return &ElasticsearchRepository{esClient: esClient}, nil
}

// Insert indexes one audit entry. Entries are write-once; no update API is
// exposed.
func (r *ElasticsearchRepository) Insert(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      indexName,
		DocumentID: entry.ID,
		Body:       bytes.NewReader(data),
	}

	res, err := req.Do(ctx, r.esClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing audit entry: %s", res.String())
	}
	return nil
}

// buildQuery assembles the bool query for a filter.
func buildQuery(filter Filter) map[string]interface{} {
	must := []interface{}{}

	if filter.OrganizationID != "" {
		must = append(must, termQuery("organization_id", filter.OrganizationID))
	}
	if filter.UserID != "" {
		must = append(must, termQuery("user_id", filter.UserID))
	}
	if filter.Action != "" {
		must = append(must, termQuery("action", string(filter.Action)))
	}
	if filter.Resource != "" {
		must = append(must, termQuery("resource", filter.Resource))
	}
	if filter.StartDate != nil || filter.EndDate != nil {
		rangeBody := map[string]interface{}{}
		if filter.StartDate != nil {
			rangeBody["gte"] = filter.StartDate.Format(time.RFC3339)
		}
		if filter.EndDate != nil {
			rangeBody["lte"] = filter.EndDate.Format(time.RFC3339)
		}
		must = append(must, map[string]interface{}{
			"range": map[string]interface{}{"timestamp": rangeBody},
		})
	}

	if len(must) == 0 {
		return map[string]interface{}{"match_all": map[string]interface{}{}}
	}
	return map[string]interface{}{
		"bool": map[string]interface{}{"must": must},
	}
}

func termQuery(field, value string) map[string]interface{} {
	return map[string]interface{}{
		"term": map[string]interface{}{field + ".keyword": value},
	}
}

// Search returns one page of matching entries plus the total match count.
func (r *ElasticsearchRepository) Search(ctx context.Context, filter Filter, sort Sort, page Page) ([]Entry, int64, error) {
	page = page.Normalized()
	order := "desc"
	if sort.Ascending {
		order = "asc"
	}

	body := map[string]interface{}{
		"query":            buildQuery(filter),
		"from":             page.Skip(),
		"size":             page.Limit,
		"track_total_hits": true,
		"sort": []interface{}{
			map[string]interface{}{sort.FieldOrDefault(): map[string]interface{}{"order": order}},
		},
	}

	var buf strings.Builder
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, 0, err
	}

	res, err := r.esClient.Search(
		r.esClient.Search.WithContext(ctx),
		r.esClient.Search.WithIndex(indexName),
		r.esClient.Search.WithBody(strings.NewReader(buf.String())),
	)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, 0, fmt.Errorf("error searching audit entries: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID     string `json:"_id"`
				Source Entry  `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, 0, err
	}

	entries := make([]Entry, len(parsed.Hits.Hits))
	for i, hit := range parsed.Hits.Hits {
		entry := hit.Source
		entry.ID = hit.ID
		entries[i] = entry
	}
	return entries, parsed.Hits.Total.Value, nil
}

// GetByID fetches a single entry. A missing document returns (nil, nil).
func (r *ElasticsearchRepository) GetByID(ctx context.Context, id string) (*Entry, error) {
	req := esapi.GetRequest{Index: indexName, DocumentID: id}
	res, err := req.Do(ctx, r.esClient)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		return nil, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("error fetching audit entry: %s", res.String())
	}

	var parsed struct {
		ID     string `json:"_id"`
		Source Entry  `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	entry := parsed.Source
	entry.ID = parsed.ID
	return &entry, nil
}

// CountByField aggregates entry counts per value of a keyword field.
func (r *ElasticsearchRepository) CountByField(ctx context.Context, filter Filter, field string) (map[string]int64, error) {
	body := map[string]interface{}{
		"query": buildQuery(filter),
		"size":  0,
		"aggs": map[string]interface{}{
			"by_field": map[string]interface{}{
				"terms": map[string]interface{}{"field": field + ".keyword"},
			},
		},
	}

	var buf strings.Builder
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	res, err := r.esClient.Search(
		r.esClient.Search.WithContext(ctx),
		r.esClient.Search.WithIndex(indexName),
		r.esClient.Search.WithBody(strings.NewReader(buf.String())),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("error aggregating audit entries: %s", res.String())
	}

	var parsed struct {
		Aggregations struct {
			ByField struct {
				Buckets []struct {
					Key      string `json:"key"`
					DocCount int64  `json:"doc_count"`
				} `json:"buckets"`
			} `json:"by_field"`
		} `json:"aggregations"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(parsed.Aggregations.ByField.Buckets))
	for _, bucket := range parsed.Aggregations.ByField.Buckets {
		counts[bucket.Key] = bucket.DocCount
	}
	return counts, nil
}

// PurgeOlderThan deletes entries older than the cutoff. Retention is a
// deployment decision; the recorder never calls this on its own.
func (r *ElasticsearchRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) error {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"range": map[string]interface{}{
				"timestamp": map[string]interface{}{
					"lt": cutoff.Format(time.RFC3339),
				},
			},
		},
	}
	var buf strings.Builder
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}

	req := esapi.DeleteByQueryRequest{
		Index: []string{indexName},
		Body:  strings.NewReader(buf.String()),
	}
	res, err := req.Do(ctx, r.esClient)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error purging audit entries: %s", res.String())
	}
	return nil
}

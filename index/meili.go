// Package index mirrors matched listings into Meilisearch so the API can
// serve fast text search over everything the scraper has seen.
package index

import (
	"encoding/json"
	"fmt"

	meilisearch "github.com/meilisearch/meilisearch-go"

	"grocerscan/cache"
	"grocerscan/matcher"
)

// Index wraps one Meilisearch index of matched listings.
type Index struct {
	client meilisearch.ServiceManager
	name   string
}

// Document is the indexed shape of a match result.
type Document struct {
	ID         string   `json:"id"`
	Query      string   `json:"query"`
	Name       string   `json:"name"`
	Brand      string   `json:"brand"`
	Retailer   string   `json:"retailer"`
	Price      *float64 `json:"price,omitempty"`
	Confidence float64  `json:"confidence"`
	MatchType  string   `json:"match_type"`
	URL        string   `json:"url,omitempty"`
}

// New connects to Meilisearch. A nil Index is returned for an empty URL;
// all methods are nil-safe so indexing stays optional.
func New(url, apiKey, name string) *Index {
	if url == "" {
		return nil
	}
	return &Index{
		client: meilisearch.New(url, meilisearch.WithAPIKey(apiKey)),
		name:   name,
	}
}

// Setup creates the index and configures its attributes. Safe to call on
// every startup; Meilisearch treats the creation as idempotent.
func (ix *Index) Setup() error {
	if ix == nil {
		return nil
	}
	_, _ = ix.client.CreateIndex(&meilisearch.IndexConfig{Uid: ix.name, PrimaryKey: "id"})
	index := ix.client.Index(ix.name)

	searchable := []string{"name", "brand", "query"}
	if _, err := index.UpdateSearchableAttributes(&searchable); err != nil {
		return fmt.Errorf("updating searchable attributes: %w", err)
	}

	filterable := []interface{}{"brand", "retailer", "match_type", "price"}
	if _, err := index.UpdateFilterableAttributes(&filterable); err != nil {
		return fmt.Errorf("updating filterable attributes: %w", err)
	}

	sortable := []string{"price", "confidence"}
	if _, err := index.UpdateSortableAttributes(&sortable); err != nil {
		return fmt.Errorf("updating sortable attributes: %w", err)
	}
	return nil
}

// IndexResult upserts one match result. Document identity is the query
// plus matched name, so re-running a lookup refreshes its entry.
func (ix *Index) IndexResult(query, brand string, res *matcher.MatchResult) error {
	if ix == nil {
		return nil
	}
	doc := Document{
		ID:         cache.Key(query, res.Name),
		Query:      query,
		Name:       res.Name,
		Brand:      brand,
		Retailer:   res.Retailer,
		Price:      res.Price,
		Confidence: res.Confidence,
		MatchType:  string(res.MatchType),
		URL:        res.URL,
	}
	if _, err := ix.client.Index(ix.name).AddDocuments([]Document{doc}, nil); err != nil {
		return fmt.Errorf("indexing %q: %w", res.Name, err)
	}
	return nil
}

// Search queries the index. Hits are decoded into generic maps so the
// API layer can serve them without knowing the document shape.
func (ix *Index) Search(query string, limit int64) ([]map[string]interface{}, error) {
	if ix == nil {
		return nil, fmt.Errorf("search index not configured")
	}
	if limit <= 0 {
		limit = 20
	}
	res, err := ix.client.Index(ix.name).Search(query, &meilisearch.SearchRequest{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	var hits []map[string]interface{}
	b, _ := json.Marshal(res.Hits)
	_ = json.Unmarshal(b, &hits)
	return hits, nil
}

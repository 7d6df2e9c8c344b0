package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/product_service/internal/models"
)

type Config struct {
	URL      string
	Username string
	Password string
}

func NewClient(ctx context.Context, cfg Config) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: create client: %w", err)
	}

	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch: info: %s: %s", res.Status(), body)
	}

	return client, nil
}

// Index keeps product documents in one Elasticsearch index, keyed by product id.
type Index struct {
	Client *elasticsearch.Client
	Name   string
}

func (i *Index) IndexProduct(ctx context.Context, p models.Product) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(p); err != nil {
		return fmt.Errorf("elasticsearch: encode product: %w", err)
	}

	res, err := i.Client.Index(
		i.Name,
		&buf,
		i.Client.Index.WithContext(ctx),
		i.Client.Index.WithDocumentID(strconv.FormatUint(uint64(p.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: index product %d: %w", p.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch: index product %d: %s", p.ID, res.Status())
	}
	return nil
}

func (i *Index) DeleteProduct(ctx context.Context, id uint) error {
	res, err := i.Client.Delete(
		i.Name,
		strconv.FormatUint(uint64(id), 10),
		i.Client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: delete product %d: %w", id, err)
	}
	defer res.Body.Close()
	// already gone is fine
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("elasticsearch: delete product %d: %s", id, res.Status())
	}
	return nil
}

func (i *Index) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("elasticsearch: encode query: %w", err)
	}

	res, err := i.Client.Search(
		i.Client.Search.WithContext(ctx),
		i.Client.Search.WithIndex(i.Name),
		i.Client.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("elasticsearch: search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("elasticsearch: search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("elasticsearch: decode search response: %w", err)
	}

	prods := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		prods[i] = hit.Source
	}
	return r.Hits.Total.Value, prods, nil
}

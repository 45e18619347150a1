package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a thin Storefront API client. The shop pages only need the
// product and collection listings, so the query surface stays small.
type Client struct {
	endpoint    string
	accessToken string
	httpClient  *http.Client
}

// NewClient builds a client for the given shop domain, e.g.
// "coleman-mx.myshopify.com". An explicit endpoint URL is accepted for
// tests.
func NewClient(domain, accessToken string) *Client {
	endpoint := domain
	if domain != "" && !isURL(domain) {
		endpoint = fmt.Sprintf("https://%s/api/2024-10/graphql.json", domain)
	}
	return &Client{
		endpoint:    endpoint,
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func isURL(s string) bool {
	return len(s) > 8 && (s[:7] == "http://" || s[:8] == "https://")
}

func (c *Client) IsConfigured() bool {
	return c.endpoint != "" && c.accessToken != ""
}

type Product struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Handle   string `json:"handle"`
	Price    string `json:"price"`
	Currency string `json:"currency"`
	ImageURL string `json:"image_url,omitempty"`
}

type Collection struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
}

const productsQuery = `{
  products(first: 50, sortKey: BEST_SELLING) {
    edges { node {
      id title handle
      priceRange { minVariantPrice { amount currencyCode } }
      featuredImage { url }
    } }
  }
}`

const collectionsQuery = `{
  collections(first: 20) {
    edges { node { id title handle } }
  }
}`

// query runs one GraphQL request and decodes into out.
func (c *Client) query(ctx context.Context, query string, out any) error {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("storefront request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("storefront API error %d: %s", resp.StatusCode, string(raw))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode storefront response: %w", err)
	}
	return nil
}

// Products lists the storefront's products.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var decoded struct {
		Data struct {
			Products struct {
				Edges []struct {
					Node struct {
						ID         string `json:"id"`
						Title      string `json:"title"`
						Handle     string `json:"handle"`
						PriceRange struct {
							MinVariantPrice struct {
								Amount       string `json:"amount"`
								CurrencyCode string `json:"currencyCode"`
							} `json:"minVariantPrice"`
						} `json:"priceRange"`
						FeaturedImage *struct {
							URL string `json:"url"`
						} `json:"featuredImage"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"products"`
		} `json:"data"`
	}
	if err := c.query(ctx, productsQuery, &decoded); err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(decoded.Data.Products.Edges))
	for _, edge := range decoded.Data.Products.Edges {
		p := Product{
			ID:       edge.Node.ID,
			Title:    edge.Node.Title,
			Handle:   edge.Node.Handle,
			Price:    edge.Node.PriceRange.MinVariantPrice.Amount,
			Currency: edge.Node.PriceRange.MinVariantPrice.CurrencyCode,
		}
		if edge.Node.FeaturedImage != nil {
			p.ImageURL = edge.Node.FeaturedImage.URL
		}
		products = append(products, p)
	}
	return products, nil
}

// Collections lists the storefront's collections.
func (c *Client) Collections(ctx context.Context) ([]Collection, error) {
	var decoded struct {
		Data struct {
			Collections struct {
				Edges []struct {
					Node Collection `json:"node"`
				} `json:"edges"`
			} `json:"collections"`
		} `json:"data"`
	}
	if err := c.query(ctx, collectionsQuery, &decoded); err != nil {
		return nil, err
	}

	collections := make([]Collection, 0, len(decoded.Data.Collections.Edges))
	for _, edge := range decoded.Data.Collections.Edges {
		collections = append(collections, edge.Node)
	}
	return collections, nil
}

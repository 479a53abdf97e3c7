package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"account-shop/internal/pkg/config"
	"account-shop/internal/pkg/errs"
)

// Client fetches spot prices from the CoinGecko simple-price endpoint.
// Prices are display-only: nothing in the order flow depends on them, so a
// failed fetch degrades to showing USD alone.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.RatesConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// SpotPrices returns the USD price for each given coin id (e.g. "bitcoin",
// "litecoin"). Missing coins are simply absent from the result map.
func (c *Client) SpotPrices(ctx context.Context, coinIDs []string) (map[string]float64, error) {
	endpoint := fmt.Sprintf(
		"%s/api/v3/simple/price?ids=%s&vs_currencies=usd",
		c.baseURL, url.QueryEscape(strings.Join(coinIDs, ",")),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build rates request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, "failed to fetch rates")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.Newf("rates endpoint returned %d", resp.StatusCode)
	}

	var body map[string]struct {
		USD float64 `json:"usd"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errs.Wrap(err, "failed to decode rates response")
	}

	result := make(map[string]float64, len(body))
	for coin, price := range body {
		result[coin] = price.USD
	}
	return result, nil
}

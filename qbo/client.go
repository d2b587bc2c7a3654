package qbo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/booksight/qbo-connect/connections"
	apperrors "github.com/booksight/qbo-connect/internal/errors"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const (
	minorVersion         = "65"
	defaultInvoiceLimit  = 10
	clientRequestTimeout = 30 * time.Second
)

// Client is a request-scoped QuickBooks API client bound to one
// connection's access token, realm, and environment. Always build it from
// a connection that has just passed through Lifecycle.EnsureFresh.
type Client struct {
	httpClient *http.Client
	baseURL    string
	realmID    string
}

// ClientOption modifies a Client instance.
type ClientOption func(*Client)

// WithBaseURL overrides the environment-derived API base URL (for testing)
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func NewClient(ctx context.Context, conn *connections.Connection, options ...ClientOption) *Client {
	token := &oauth2.Token{
		AccessToken: conn.AccessToken,
		TokenType:   conn.TokenType,
	}

	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	httpClient.Timeout = clientRequestTimeout

	client := &Client{
		httpClient: httpClient,
		baseURL:    apiBaseURL(conn.Environment),
		realmID:    conn.RealmID,
	}
	for _, opt := range options {
		opt(client)
	}
	return client
}

// CompanyInfo fetches the company profile for the bound realm.
func (c *Client) CompanyInfo(ctx context.Context) (*CompanyInfo, error) {
	var response companyInfoResponse
	path := fmt.Sprintf("/v3/company/%s/companyinfo/%s", c.realmID, c.realmID)
	if err := c.get(ctx, path, nil, &response); err != nil {
		return nil, err
	}
	return &response.CompanyInfo, nil
}

// ProfitAndLoss fetches the profit-and-loss report for a date range.
// Dates are in YYYY-MM-DD form.
func (c *Client) ProfitAndLoss(ctx context.Context, startDate, endDate string) (*Report, error) {
	query := url.Values{}
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)

	var report Report
	path := fmt.Sprintf("/v3/company/%s/reports/ProfitAndLoss", c.realmID)
	if err := c.get(ctx, path, query, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Invoices fetches up to limit invoices in provider order.
func (c *Client) Invoices(ctx context.Context, limit int) ([]Invoice, error) {
	if limit <= 0 {
		limit = defaultInvoiceLimit
	}

	query := url.Values{}
	query.Set("query", fmt.Sprintf("select * from Invoice maxresults %d", limit))

	var response invoiceQueryResponse
	path := fmt.Sprintf("/v3/company/%s/query", c.realmID)
	if err := c.get(ctx, path, query, &response); err != nil {
		return nil, err
	}
	return response.QueryResponse.Invoice, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("minorversion", minorVersion)

	requestURL := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return errors.Wrapf(err, "[Client get] failed to build request for %s", path)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(apperrors.ErrProviderUnavailable, "request to %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.Wrapf(apperrors.ErrExpiredCredential, "provider rejected token with status %d", resp.StatusCode)
	case resp.StatusCode >= http.StatusInternalServerError:
		return errors.Wrapf(apperrors.ErrProviderUnavailable, "provider returned status %d for %s", resp.StatusCode, path)
	case resp.StatusCode != http.StatusOK:
		return errors.Wrapf(apperrors.ErrProviderUnavailable, "unexpected status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(apperrors.ErrMalformedReport, "failed to decode %s response: %v", path, err)
	}
	return nil
}

package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/refdata/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Common errors
var (
	// ErrEntityNotFound means the registry has no record for the INN
	ErrEntityNotFound = errors.New("entity not found in state registry")
	// ErrRegistryUnavailable covers transport and server-side failures
	ErrRegistryUnavailable = errors.New("state registry unavailable")
)

// Address is the structured address the registry returns
type Address struct {
	PostalCode string `json:"postal_code"`
	Region     string `json:"region"`
	City       string `json:"city"`
	Street     string `json:"street"`
	House      string `json:"house"`
}

// Format joins the non-empty address parts into a single line
func (a Address) Format() string {
	parts := make([]string, 0, 5)
	for _, p := range []string{a.PostalCode, a.Region, a.City, a.Street, a.House} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Branch is a branch office of a registered entity. Branches carry
// their own KPP under the head entity's INN.
type Branch struct {
	KPP     string  `json:"kpp"`
	Name    string  `json:"name"`
	Address Address `json:"address"`
}

// EntityCard is the registry record for a legal entity or entrepreneur
type EntityCard struct {
	INN            string          `json:"inn"`
	KPP            *string         `json:"kpp"`
	OGRN           *string         `json:"ogrn"`
	ShortName      string          `json:"short_name"`
	FullName       string          `json:"full_name"`
	OPF            *string         `json:"opf"`
	EntityType     string          `json:"entity_type"`
	ManagementName *string         `json:"management_name"`
	Capital        decimal.Decimal `json:"capital"`
	Address        Address         `json:"address"`
	Branches       []Branch        `json:"branches"`
}

// MatchesKPP reports whether kpp belongs to the head entity or one of
// its branches.
func (c *EntityCard) MatchesKPP(kpp string) bool {
	if c.KPP != nil && *c.KPP == kpp {
		return true
	}
	for _, branch := range c.Branches {
		if branch.KPP == kpp {
			return true
		}
	}
	return false
}

// BranchByKPP returns the branch with the given KPP, or nil
func (c *EntityCard) BranchByKPP(kpp string) *Branch {
	for i := range c.Branches {
		if c.Branches[i].KPP == kpp {
			return &c.Branches[i]
		}
	}
	return nil
}

// Client queries the state registry over HTTP
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a registry client from configuration
func NewClient(cfg config.RegistryConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Lookup fetches the registry card for an INN. Returns ErrEntityNotFound
// when the registry has no record; any other failure maps to
// ErrRegistryUnavailable so callers can distinguish the two.
func (c *Client) Lookup(ctx context.Context, inn string) (*EntityCard, error) {
	url := fmt.Sprintf("%s/api/entities/%s", c.baseURL, inn)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build registry request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("registry request failed", zap.String("inn", inn), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRegistryUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrEntityNotFound
	case resp.StatusCode != http.StatusOK:
		c.logger.Warn("registry returned unexpected status",
			zap.String("inn", inn),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: status %d", ErrRegistryUnavailable, resp.StatusCode)
	}

	var card EntityCard
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrRegistryUnavailable, err)
	}

	if card.INN == "" {
		card.INN = inn
	}

	return &card, nil
}

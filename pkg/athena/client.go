package athena

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/oauth2"
)

// Config carries everything needed to authenticate against the Athena
// ITSM API with the resource-owner password grant.
type Config struct {
	AuthURL  string // token endpoint base; falls back to BaseURL
	BaseURL  string
	ClientID string
	Username string
	Password string
}

// Client fetches tickets from the Athena API. Tokens are obtained through
// the password grant and reused until shortly before expiry; fetched
// tickets are cached in-process with a short TTL so repeated searches for
// the same ticket do not refetch it.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	ticketCache *gocache.Cache
}

const ticketCacheTTL = 5 * time.Minute

// tokenExpiryBuffer refreshes tokens 60 seconds before they expire.
const tokenExpiryBuffer = 60 * time.Second

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("athena base URL is not configured")
	}

	authBase := cfg.AuthURL
	if authBase == "" {
		authBase = cfg.BaseURL
	}

	oauthCfg := &oauth2.Config{
		ClientID: cfg.ClientID,
		Endpoint: oauth2.Endpoint{
			TokenURL:  strings.TrimRight(authBase, "/") + "/oauth2/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	src := &passwordTokenSource{
		cfg:      oauthCfg,
		username: cfg.Username,
		password: cfg.Password,
	}

	ts := oauth2.ReuseTokenSourceWithExpiry(nil, src, tokenExpiryBuffer)

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:  oauth2.NewClient(context.Background(), ts),
		ticketCache: gocache.New(ticketCacheTTL, 10*time.Minute),
	}, nil
}

// passwordTokenSource performs the password grant on demand; the wrapping
// ReuseTokenSource handles caching and early refresh.
type passwordTokenSource struct {
	cfg      *oauth2.Config
	username string
	password string
}

func (s *passwordTokenSource) Token() (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	token, err := s.cfg.PasswordCredentialsToken(ctx, s.username, s.password)
	if err != nil {
		return nil, fmt.Errorf("error obtaining Athena token: %w", err)
	}
	return token, nil
}

// GetTicket fetches one ticket by its public id (IR/SR number) and
// returns the raw JSON payload as a generic map.
func (c *Client) GetTicket(ctx context.Context, ticketId string) (map[string]interface{}, error) {
	key := strings.ToLower(ticketId)
	if cached, found := c.ticketCache.Get(key); found {
		return cached.(map[string]interface{}), nil
	}

	url := fmt.Sprintf("%s/tickets/%s", c.baseURL, ticketId)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("athena ticket request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("ticket %s not found in Athena", ticketId)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("athena returned %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(bodyBytes, &payload); err != nil {
		return nil, fmt.Errorf("invalid athena response: %w", err)
	}

	c.ticketCache.Set(key, payload, gocache.DefaultExpiration)
	return payload, nil
}

// FlattenTicket projects the nested Athena payload onto the flat
// athena_tickets column vocabulary. Missing paths produce empty strings;
// analyst_comments keeps its structured JSON form.
func FlattenTicket(payload map[string]interface{}) map[string]string {
	flat := make(map[string]string, len(ticketFieldMapping))
	for column, path := range ticketFieldMapping {
		if path == "" {
			flat[column] = ""
			continue
		}
		value := lookupPath(payload, path)
		if value == nil {
			flat[column] = ""
			continue
		}
		if column == "analyst_comments" {
			if raw, err := json.Marshal(value); err == nil {
				flat[column] = string(raw)
			}
			continue
		}
		flat[column] = stringify(value)
	}
	return flat
}

func lookupPath(data map[string]interface{}, path string) interface{} {
	parts := strings.Split(path, ".")
	var current interface{} = data
	for _, part := range parts {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current, ok = obj[part]
		if !ok {
			return nil
		}
	}
	return current
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		// JSON numbers decode as float64; ids and counts are integral.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case nil:
		return ""
	default:
		if raw, err := json.Marshal(v); err == nil {
			return string(raw)
		}
		return fmt.Sprintf("%v", v)
	}
}

package balldontlie

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-sim-service/internal/domain/players"
	"github.com/preston-bernstein/nba-sim-service/internal/domain/teams"
	"github.com/preston-bernstein/nba-sim-service/internal/providers"
)

// Config controls how the balldontlie client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	MaxPages   int
	// Rosters builds players for the fetched teams; the upstream free tier has no ratings.
	Rosters providers.PlayerProvider
}

// Client fetches teams from the balldontlie API and delegates rosters to a generator.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	now        func() time.Time
	maxPages   int
	rosters    providers.PlayerProvider
}

// NewClient constructs a balldontlie client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
		maxPages:   resolveMaxPages(cfg.MaxPages),
		rosters:    cfg.Rosters,
	}
}

// FetchTeams pages through /teams and keeps the franchises that resolve to a conference.
func (c *Client) FetchTeams(ctx context.Context) ([]teams.Team, error) {
	page := 1
	out := make([]teams.Team, 0, 30)
	seen := make(map[string]struct{})

	for {
		payload, err := c.fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}
		for _, raw := range payload.Data {
			t, ok := mapTeam(raw)
			if !ok {
				continue
			}
			if _, dup := seen[t.ID]; dup {
				continue
			}
			seen[t.ID] = struct{}{}
			out = append(out, t)
		}

		totalPages := payload.Meta.TotalPages
		if totalPages > 0 {
			if page >= totalPages {
				break
			}
		} else if len(payload.Data) < defaultPerPage {
			break
		}
		if page >= c.maxPages {
			break
		}
		page++
	}
	return out, nil
}

// FetchPlayers delegates to the roster generator.
func (c *Client) FetchPlayers(ctx context.Context, ts []teams.Team) ([]players.Player, error) {
	if c.rosters == nil {
		return nil, fmt.Errorf("%s rosters: %w", providerName, providers.ErrProviderUnavailable)
	}
	return c.rosters.FetchPlayers(ctx, ts)
}

func (c *Client) fetchPage(ctx context.Context, page int) (teamsResponse, error) {
	req, err := c.buildRequest(ctx, page)
	if err != nil {
		return teamsResponse{}, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return teamsResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return teamsResponse{}, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    "balldontlie rate limited",
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return teamsResponse{}, fmt.Errorf("balldontlie: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload teamsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return teamsResponse{}, fmt.Errorf("balldontlie: decode teams: %w", err)
	}
	return payload, nil
}

func (c *Client) buildRequest(ctx context.Context, page int) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/teams", nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("per_page", strconv.Itoa(defaultPerPage))
	q.Set("page", strconv.Itoa(page))
	req.URL.RawQuery = q.Encode()

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

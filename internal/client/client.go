package client

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"strings"
	"vrp-client/internal/adapters/vrphttp"
	"vrp-client/internal/domain"
	"vrp-client/internal/metrics"
	"vrp-client/internal/platform/obs"
	"vrp-client/internal/ports"
	"vrp-client/internal/services"
)

const DefaultBaseURL = "https://api.routific.com"

const (
	solvePath = "/v1/vrp"
	fixPath   = "/v1/fix"
)

type Config struct {
	// Token is sent as the bearer credential. Empty falls back to the shared default.
	Token   string
	BaseURL string
}

// Client collects one routing problem and submits it to the service.
// A Client is meant for a single build-and-submit lifecycle and is not
// safe for concurrent mutation.
type Client struct {
	token     string
	baseURL   string
	transport ports.Transport
	cache     ports.ScheduleCache

	visits    *domain.Registry[domain.Visit]
	fleet     *domain.Registry[domain.Vehicle]
	options   domain.Options
	solutions []domain.Solution
	unserved  []string
}

type Option func(*Client)

func WithTransport(t ports.Transport) Option {
	return func(c *Client) { c.transport = t }
}

// WithCache serves repeated identical requests from cache.
func WithCache(sc ports.ScheduleCache) Option {
	return func(c *Client) { c.cache = sc }
}

func New(cfg Config, opts ...Option) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}

	c := &Client{
		token:   cfg.Token,
		baseURL: base,
		visits:  domain.NewRegistry[domain.Visit](),
		fleet:   domain.NewRegistry[domain.Vehicle](),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = vrphttp.New()
	}
	return c
}

// AddVisit registers a visit under id, replacing any visit already stored there.
func (c *Client) AddVisit(id string, p domain.VisitParams) error {
	v, err := domain.NewVisit(id, p)
	if err != nil {
		return fmt.Errorf("add visit %q: %w", id, err)
	}
	c.visits.Set(id, v)
	return nil
}

// AddVehicle registers a vehicle under id, replacing any vehicle already stored there.
func (c *Client) AddVehicle(id string, p domain.VehicleParams) error {
	v, err := domain.NewVehicle(id, p)
	if err != nil {
		return fmt.Errorf("add vehicle %q: %w", id, err)
	}
	c.fleet.Set(id, v)
	return nil
}

func (c *Client) SetOptions(params map[string]any) {
	c.options = domain.NewOptions(params)
}

// AddSolution stores a prior route for vehicleID. Later entries for the same
// vehicle are kept but only the first one is sent on Fix.
func (c *Client) AddSolution(vehicleID string, visits []string) error {
	s, err := domain.NewSolution(vehicleID, visits)
	if err != nil {
		return err
	}
	c.solutions = append(c.solutions, s)
	return nil
}

func (c *Client) SetUnserved(ids []string) {
	c.unserved = slices.Clone(ids)
}

func (c *Client) Visits() *domain.Registry[domain.Visit] { return c.visits }

func (c *Client) Fleet() *domain.Registry[domain.Vehicle] { return c.fleet }

func (c *Client) Options() domain.Options { return c.options }

func (c *Client) Solutions() []domain.Solution { return slices.Clone(c.solutions) }

func (c *Client) Unserved() []string { return slices.Clone(c.unserved) }

func (c *Client) ValidSolutions() domain.SolutionSet {
	return domain.ValidSolutions(c.fleet.IDs(), c.solutions)
}

func (c *Client) ValidUnserved() []string {
	return domain.ValidUnserved(c.unserved, c.visits.Has)
}

// Reset clears every registry. Token, transport and cache are kept.
func (c *Client) Reset() {
	c.visits = domain.NewRegistry[domain.Visit]()
	c.fleet = domain.NewRegistry[domain.Vehicle]()
	c.options = domain.Options{}
	c.solutions = nil
	c.unserved = nil
}

func (c *Client) problem() services.Problem {
	return services.Problem{
		Visits:    c.visits,
		Fleet:     c.fleet,
		Options:   c.options,
		Solutions: c.solutions,
		Unserved:  c.unserved,
	}
}

// Solve submits the registered visits, fleet and options.
func (c *Client) Solve(ctx context.Context) (_ *domain.Schedule, err error) {
	defer obs.Time(ctx, "client.Solve")(&err)

	token, err := resolveToken(c.token)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(services.BuildSolveRequest(c.problem()))
	if err != nil {
		return nil, fmt.Errorf("solve: marshal request: %w", err)
	}
	return c.dispatch(ctx, solvePath, token, body)
}

// Fix submits the registered problem together with the stored solutions and
// unserved visits that still match it. It fails without any network call
// when either reconciled set is empty.
func (c *Client) Fix(ctx context.Context) (_ *domain.Schedule, err error) {
	defer obs.Time(ctx, "client.Fix")(&err)

	token, err := resolveToken(c.token)
	if err != nil {
		return nil, err
	}

	req, err := services.BuildFixRequest(c.problem())
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("fix: marshal request: %w", err)
	}
	return c.dispatch(ctx, fixPath, token, body)
}

// SolveData posts a fully formed solve payload, bypassing the registries.
// data may be raw JSON bytes or any value encoding/json accepts. A non-empty
// token overrides the client's own.
func (c *Client) SolveData(ctx context.Context, data any, token string) (_ *domain.Schedule, err error) {
	defer obs.Time(ctx, "client.SolveData")(&err)
	return c.post(ctx, solvePath, data, token)
}

// FixData posts a fully formed fix payload, bypassing the registries and the
// local fix preconditions.
func (c *Client) FixData(ctx context.Context, data any, token string) (_ *domain.Schedule, err error) {
	defer obs.Time(ctx, "client.FixData")(&err)
	return c.post(ctx, fixPath, data, token)
}

func (c *Client) post(ctx context.Context, endpoint string, data any, token string) (*domain.Schedule, error) {
	if token == "" {
		token = c.token
	}
	token, err := resolveToken(token)
	if err != nil {
		return nil, err
	}

	body, err := encodePayload(data)
	if err != nil {
		return nil, fmt.Errorf("%s: marshal request: %w", endpoint, err)
	}
	return c.dispatch(ctx, endpoint, token, body)
}

func encodePayload(data any) ([]byte, error) {
	switch d := data.(type) {
	case []byte:
		return d, nil
	case json.RawMessage:
		return d, nil
	case string:
		return []byte(d), nil
	default:
		return json.Marshal(data)
	}
}

func (c *Client) dispatch(ctx context.Context, endpoint, token string, body []byte) (*domain.Schedule, error) {
	key := cacheKey(endpoint, token, body)
	if cached, ok := c.lookup(ctx, key); ok {
		sched, err := domain.ParseSchedule(cached)
		if err == nil {
			return sched, nil
		}
		metrics.CacheLookups.WithLabelValues("error").Inc()
		log.Printf("req_id=%s op=cache.Get key=%s err=%v", obs.RequestID(ctx), key[:12], err)
	}

	resp, err := c.transport.Post(ctx, c.baseURL+endpoint, authorization(token), body)
	if err != nil {
		return nil, err
	}

	sched, err := domain.ParseSchedule(resp)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, resp)
	return sched, nil
}

// cacheKey scopes entries to the caller's credential. Only a digest of the
// token is hashed in, so the store never sees it.
func cacheKey(endpoint, token string, body []byte) string {
	tokenSum := sha256.Sum256([]byte(authorization(token)))

	h := sha256.New()
	h.Write([]byte(endpoint))
	h.Write([]byte{0})
	h.Write(tokenSum[:])
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Client) lookup(ctx context.Context, key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}

	body, ok, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		log.Printf("req_id=%s op=cache.Get key=%s err=%v", obs.RequestID(ctx), key[:12], err)
		return nil, false
	case ok:
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return body, true
	default:
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
}

func (c *Client) store(ctx context.Context, key string, body []byte) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Put(ctx, key, body); err != nil {
		log.Printf("req_id=%s op=cache.Put key=%s err=%v", obs.RequestID(ctx), key[:12], err)
	}
}

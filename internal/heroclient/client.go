// Package heroclient is the remote hero service: a JSON client for the
// api/heroes REST resource.
//
// Every operation reports a line to the notification collaborator. Failures
// are reported and logged too, then returned as the zero value plus an error
// wrapping one of model.ErrNotFound, model.ErrEmptyName, model.ErrUnauthorized
// or model.ErrUnavailable, so callers can fail closed without a branch of their own.
package heroclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	"github.com/Makepad-fr/heroes/internal/logging"
	"github.com/Makepad-fr/heroes/internal/model"
)

const heroesPath = "api/heroes"

// Messenger receives one human-readable line per operation.
type Messenger interface {
	Add(message string)
}

type nopMessenger struct{}

func (nopMessenger) Add(string) {}

type Client struct {
	heroesURL *url.URL
	http      *http.Client
	messages  Messenger
	logger    logging.Logger
	token     string
	timeout   time.Duration
}

type Option func(c *Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func WithMessages(m Messenger) Option {
	return func(c *Client) {
		c.messages = m
	}
}

func WithLogger(logger logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithToken sends "Authorization: Bearer <token>" on every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithTimeout bounds every request. It applies to whichever http.Client
// the other options leave in place, without modifying the caller's.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New returns a client for the API rooted at baseURL, e.g. "http://localhost:8080/".
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q: scheme and host are required", baseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	c := &Client{
		heroesURL: base.ResolveReference(&url.URL{Path: heroesPath}),
		http:      &http.Client{},
		messages:  nopMessenger{},
		logger:    logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	if c.messages == nil {
		c.messages = nopMessenger{}
	}
	if c.logger == nil {
		c.logger = logging.Nop()
	}
	c.logger = log.With(c.logger, "component", "heroclient")
	return c, nil
}

// GetHeroes fetches every hero, in server order.
func (c *Client) GetHeroes(ctx context.Context) ([]model.Hero, error) {
	var heroes []model.Hero
	if err := c.do(ctx, http.MethodGet, c.heroesURL.String(), nil, &heroes); err != nil {
		return nil, c.fail("getHeroes", err)
	}
	c.log("fetched heroes")
	return heroes, nil
}

// GetHero fetches one hero by id.
func (c *Client) GetHero(ctx context.Context, id int) (model.Hero, error) {
	var h model.Hero
	if err := c.do(ctx, http.MethodGet, c.heroURL(id), nil, &h); err != nil {
		return model.Hero{}, c.fail(fmt.Sprintf("getHero id=%d", id), err)
	}
	c.log(fmt.Sprintf("fetched hero id=%d", id))
	return h, nil
}

// SearchHeroes returns heroes whose name contains term. A blank term returns
// nothing without a request.
func (c *Client) SearchHeroes(ctx context.Context, term string) ([]model.Hero, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []model.Hero{}, nil
	}
	u := *c.heroesURL
	u.Path += "/"
	u.RawQuery = url.Values{"name": {term}}.Encode()

	var heroes []model.Hero
	if err := c.do(ctx, http.MethodGet, u.String(), nil, &heroes); err != nil {
		return nil, c.fail("searchHeroes", err)
	}
	if len(heroes) == 0 {
		c.log(fmt.Sprintf("no heroes matching %q", term))
	} else {
		c.log(fmt.Sprintf("found heroes matching %q", term))
	}
	return heroes, nil
}

// AddHero creates h on the server; the id is assigned there and any id on h
// is not sent.
func (c *Client) AddHero(ctx context.Context, h model.Hero) (model.Hero, error) {
	if err := h.Validate(); err != nil {
		return model.Hero{}, c.fail("addHero", err)
	}
	body := struct {
		Name     string `json:"name"`
		Strength int    `json:"strength"`
	}{h.Name, h.Strength}

	var created model.Hero
	if err := c.do(ctx, http.MethodPost, c.heroesURL.String(), body, &created); err != nil {
		return model.Hero{}, c.fail("addHero", err)
	}
	c.log(fmt.Sprintf("added hero w/ id=%d", created.ID))
	return created, nil
}

// UpdateHero replaces the stored hero with h. The response is only an
// acknowledgement.
func (c *Client) UpdateHero(ctx context.Context, h model.Hero) error {
	op := fmt.Sprintf("updateHero id=%d", h.ID)
	if err := h.Validate(); err != nil {
		return c.fail(op, err)
	}
	if err := c.do(ctx, http.MethodPut, c.heroURL(h.ID), h, nil); err != nil {
		return c.fail(op, err)
	}
	c.log(fmt.Sprintf("updated hero id=%d", h.ID))
	return nil
}

// DeleteHero removes h by id.
func (c *Client) DeleteHero(ctx context.Context, h model.Hero) error {
	op := fmt.Sprintf("deleteHero id=%d", h.ID)
	if err := c.do(ctx, http.MethodDelete, c.heroURL(h.ID), nil, nil); err != nil {
		return c.fail(op, err)
	}
	c.log(fmt.Sprintf("deleted hero id=%d", h.ID))
	return nil
}

func (c *Client) heroURL(id int) string {
	u := *c.heroesURL
	u.Path += "/" + strconv.Itoa(id)
	return u.String()
}

func (c *Client) do(ctx context.Context, method, target string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	reqID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	level.Debug(c.logger).Log(
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"request_id", reqID,
		"took", time.Since(start),
	)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", model.ErrUnavailable, err)
	}
	if err := statusError(resp.StatusCode, raw); err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	return nil
}

func statusError(code int, body []byte) error {
	if code < 300 {
		return nil
	}
	msg := serverMessage(body)
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: %s", model.ErrUnauthorized, msg)
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", model.ErrNotFound, msg)
	case code == http.StatusBadRequest && strings.Contains(msg, model.ErrEmptyName.Error()):
		return fmt.Errorf("%w (server)", model.ErrEmptyName)
	case code >= 500:
		return fmt.Errorf("%w: status %d: %s", model.ErrUnavailable, code, msg)
	default:
		return fmt.Errorf("unexpected status %d: %s", code, msg)
	}
}

func serverMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:197] + "..."
	}
	return s
}

func (c *Client) log(msg string) {
	c.messages.Add("HeroService: " + msg)
}

func (c *Client) fail(op string, err error) error {
	c.log(fmt.Sprintf("%s failed: %v", op, err))
	lvl := level.Error
	if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrEmptyName) || errors.Is(err, model.ErrUnauthorized) {
		lvl = level.Warn
	}
	lvl(c.logger).Log("op", op, "err", err)
	return fmt.Errorf("%s: %w", op, err)
}

// Package client is a typed Go client for the taskboard REST API.
//
// Credentials travel with each call through the context:
//
//	ctx := client.WithToken(ctx, res.Token)
//	tasks, err := c.ListTasks(ctx, validation.TaskQueryInput{Status: "done"})
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"taskboard/models"
	"taskboard/services"
	"taskboard/validation"

	"github.com/google/uuid"
)

type tokenKey struct{}

// WithToken returns a context whose requests carry the bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// APIError is a non-2xx response.
type APIError struct {
	Status  int               `json:"-"`
	Message string            `json:"message"`
	Errors  validation.Errors `json:"errors,omitempty"`
	Cause   string            `json:"error,omitempty"`
}

func (e *APIError) Error() string {
	if e.Cause != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Message, e.Cause)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func do[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (*T, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := tokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return nil, apiErr
	}

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return &out, nil
}

type message struct {
	Message string `json:"message"`
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

// ================== AUTH ==================

func (c *Client) Signup(ctx context.Context, in validation.SignupInput) (*services.AuthResult, error) {
	return do[services.AuthResult](ctx, c, http.MethodPost, "/api/auth/signup", nil, in)
}

func (c *Client) Login(ctx context.Context, in validation.LoginInput) (*services.AuthResult, error) {
	return do[services.AuthResult](ctx, c, http.MethodPost, "/api/auth/login", nil, in)
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	return do[models.User](ctx, c, http.MethodGet, "/api/auth/me", nil, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := do[message](ctx, c, http.MethodPost, "/api/auth/logout", nil, nil)
	return err
}

// ================== TEAM MEMBERS ==================

func (c *Client) ListTeamMembers(ctx context.Context, page, limit int) (*models.PageResult[models.TeamMember], error) {
	return do[models.PageResult[models.TeamMember]](ctx, c, http.MethodGet, "/api/teams", pageQuery(page, limit), nil)
}

func (c *Client) TeamMember(ctx context.Context, id uuid.UUID) (*models.TeamMember, error) {
	return do[models.TeamMember](ctx, c, http.MethodGet, "/api/teams/"+id.String(), nil, nil)
}

func (c *Client) CreateTeamMember(ctx context.Context, in validation.TeamMemberInput) (*models.TeamMember, error) {
	return do[models.TeamMember](ctx, c, http.MethodPost, "/api/teams", nil, in)
}

func (c *Client) UpdateTeamMember(ctx context.Context, id uuid.UUID, in validation.TeamMemberPatchInput) (*models.TeamMember, error) {
	return do[models.TeamMember](ctx, c, http.MethodPut, "/api/teams/"+id.String(), nil, in)
}

func (c *Client) DeleteTeamMember(ctx context.Context, id uuid.UUID) error {
	_, err := do[message](ctx, c, http.MethodDelete, "/api/teams/"+id.String(), nil, nil)
	return err
}

// ================== PROJECTS ==================

func (c *Client) ListProjects(ctx context.Context, page, limit int) (*models.PageResult[models.Project], error) {
	return do[models.PageResult[models.Project]](ctx, c, http.MethodGet, "/api/projects", pageQuery(page, limit), nil)
}

func (c *Client) Project(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return do[models.Project](ctx, c, http.MethodGet, "/api/projects/"+id.String(), nil, nil)
}

func (c *Client) CreateProject(ctx context.Context, in validation.ProjectInput) (*models.Project, error) {
	return do[models.Project](ctx, c, http.MethodPost, "/api/projects", nil, in)
}

func (c *Client) UpdateProject(ctx context.Context, id uuid.UUID, in validation.ProjectPatchInput) (*models.Project, error) {
	return do[models.Project](ctx, c, http.MethodPut, "/api/projects/"+id.String(), nil, in)
}

func (c *Client) DeleteProject(ctx context.Context, id uuid.UUID) error {
	_, err := do[message](ctx, c, http.MethodDelete, "/api/projects/"+id.String(), nil, nil)
	return err
}

// ================== TASKS ==================

// ListTasks sends every non-empty field of q as a query parameter.
func (c *Client) ListTasks(ctx context.Context, q validation.TaskQueryInput) (*models.PageResult[models.Task], error) {
	values := url.Values{}
	for key, val := range map[string]string{
		"page":      q.Page,
		"limit":     q.Limit,
		"project":   q.Project,
		"member":    q.Member,
		"status":    q.Status,
		"search":    q.Search,
		"startDate": q.StartDate,
		"endDate":   q.EndDate,
	} {
		if val != "" {
			values.Set(key, val)
		}
	}
	return do[models.PageResult[models.Task]](ctx, c, http.MethodGet, "/api/tasks", values, nil)
}

func (c *Client) Task(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	return do[models.Task](ctx, c, http.MethodGet, "/api/tasks/"+id.String(), nil, nil)
}

func (c *Client) CreateTask(ctx context.Context, in validation.TaskInput) (*models.Task, error) {
	return do[models.Task](ctx, c, http.MethodPost, "/api/tasks", nil, in)
}

func (c *Client) UpdateTask(ctx context.Context, id uuid.UUID, in validation.TaskPatchInput) (*models.Task, error) {
	return do[models.Task](ctx, c, http.MethodPut, "/api/tasks/"+id.String(), nil, in)
}

func (c *Client) DeleteTask(ctx context.Context, id uuid.UUID) error {
	_, err := do[message](ctx, c, http.MethodDelete, "/api/tasks/"+id.String(), nil, nil)
	return err
}

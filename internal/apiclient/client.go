// Package apiclient is a typed Go client for the CodeCanvas REST surface.
// It speaks the exact wire contract of the backend: every operation is a POST
// under /auth, every response carries the {success, message} envelope, and the
// per-endpoint id field names (projId, progId, projectId) are preserved.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"codecanvas/backend/internal/models"
)

// APIError is a response the server answered with success:false.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// Client calls the backend. Not safe for concurrent use while SetToken is
// being called; the editor session serializes access.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{}}
}

// SetToken installs the bearer token for subsequent authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// SignUp registers a new account.
func (c *Client) SignUp(ctx context.Context, username, name, email, password string) error {
	req := map[string]string{
		"username": username,
		"name":     name,
		"email":    email,
		"password": password,
	}
	return c.post(ctx, "/auth/signUp", req, nil)
}

// LoginResult is the identity issued at login.
type LoginResult struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// Login exchanges credentials for a token and installs it on the client.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	req := map[string]string{"email": email, "password": password}
	var res LoginResult
	if err := c.post(ctx, "/auth/login", req, &res); err != nil {
		return LoginResult{}, err
	}
	c.token = res.Token
	return res, nil
}

func (c *Client) GetUserDetails(ctx context.Context, userID string) (models.User, error) {
	req := map[string]string{"userId": userID}
	var res struct {
		User models.User `json:"user"`
	}
	err := c.post(ctx, "/auth/getUserDetails", req, &res)
	return res.User, err
}

func (c *Client) CreateProject(ctx context.Context, userID, title string) (string, error) {
	req := map[string]string{"userId": userID, "title": title}
	var res struct {
		ProjectID string `json:"projectId"`
	}
	err := c.post(ctx, "/auth/createProject", req, &res)
	return res.ProjectID, err
}

func (c *Client) GetProjects(ctx context.Context, userID string) ([]models.Project, error) {
	req := map[string]string{"userId": userID}
	var res struct {
		Projects []models.Project `json:"projects"`
	}
	err := c.post(ctx, "/auth/getProjects", req, &res)
	return res.Projects, err
}

func (c *Client) GetProject(ctx context.Context, userID, projectID string) (models.Project, error) {
	req := map[string]string{"userId": userID, "projId": projectID}
	var res struct {
		Project models.Project `json:"project"`
	}
	err := c.post(ctx, "/auth/getProject", req, &res)
	return res.Project, err
}

func (c *Client) DeleteProject(ctx context.Context, userID, projectID string) error {
	req := map[string]string{"userId": userID, "progId": projectID}
	return c.post(ctx, "/auth/deleteProject", req, nil)
}

func (c *Client) UpdateProject(ctx context.Context, userID, projectID, htmlCode, cssCode, jsCode string) error {
	req := map[string]string{
		"userId":   userID,
		"projId":   projectID,
		"htmlCode": htmlCode,
		"cssCode":  cssCode,
		"jsCode":   jsCode,
	}
	return c.post(ctx, "/auth/updateProject", req, nil)
}

func (c *Client) SaveDocument(ctx context.Context, userID, projectID, content, title string) error {
	req := map[string]string{
		"userId":    userID,
		"projectId": projectID,
		"content":   content,
		"title":     title,
	}
	return c.post(ctx, "/auth/saveDocument", req, nil)
}

func (c *Client) GetDocument(ctx context.Context, userID, projectID string) (models.Document, error) {
	req := map[string]string{"userId": userID, "projectId": projectID}
	var res struct {
		Document models.Document `json:"document"`
	}
	err := c.post(ctx, "/auth/getDocument", req, &res)
	return res.Document, err
}

// post sends one request and decodes the envelope. A success:false answer
// becomes an *APIError; transport failures are returned wrapped so callers can
// tell the two apart with errors.As.
func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var env struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}
	if !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if out != nil {
		return json.Unmarshal(raw, out)
	}
	return nil
}

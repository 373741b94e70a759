package suggest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/bytedance/sonic"
)

const (
	envToken = "TOKEN"
	envURL   = "URL"

	model = "deepseek/deepseek-r1-turbo"
)

// UpstreamError reports a failed call to the language-model endpoint. RawBody
// carries the response body when one was received so clients can inspect what
// the model actually returned.
type UpstreamError struct {
	Err     error
	RawBody string
}

func (e *UpstreamError) Error() string {
	return e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Client calls the external chat-completions endpoint. The endpoint URL and
// bearer token are read from the TOKEN and URL environment variables fresh on
// every call; unset values yield empty strings rather than a startup failure.
type Client struct {
	http   *http.Client
	getenv func(string) string
}

// NewClient creates a Client. A nil httpClient falls back to a default one
// with no request timeout; cancellation comes from the caller's context.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{http: httpClient, getenv: os.Getenv}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Suggest asks the model for exactly five subtask suggestions for the given
// task description and parses the titles out of its markdown reply. All
// failures are reported as *UpstreamError; the call never panics past this
// boundary.
func (c *Client) Suggest(ctx context.Context, description string) ([]Title, error) {
	token := strings.TrimSpace(c.getenv(envToken))
	endpoint := strings.TrimSpace(c.getenv(envURL))

	payload := chatRequest{
		Model: model,
		Messages: []chatMessage{{
			Role:    "user",
			Content: prompt(description),
		}},
	}
	data, err := sonic.Marshal(payload)
	if err != nil {
		return nil, &UpstreamError{Err: fmt.Errorf("marshaling request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, &UpstreamError{Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Err: fmt.Errorf("reading response: %w", err)}
	}

	var parsed chatResponse
	if err := sonic.Unmarshal(body, &parsed); err != nil {
		return nil, &UpstreamError{Err: fmt.Errorf("decoding response: %w", err), RawBody: string(body)}
	}
	if len(parsed.Choices) == 0 {
		return nil, &UpstreamError{Err: fmt.Errorf("response has no choices"), RawBody: string(body)}
	}

	return ParseTitles(parsed.Choices[0].Message.Content), nil
}

func prompt(description string) string {
	return fmt.Sprintf(
		"List exactly 5 unique, meaningful, and descriptive subtasks for the task: '%s'. "+
			"Format the response as a numbered list with each title in bold markdown, like this:\n"+
			"1. **Title One**\n"+
			"2. **Title Two**\n"+
			"3. **Title Three**\n"+
			"4. **Title Four**\n"+
			"5. **Title Five**\n"+
			"Do not include any other text or explanations.",
		description,
	)
}

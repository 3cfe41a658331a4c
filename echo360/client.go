// Package echo360 is a client for the lecture platform's web endpoints.
package echo360

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/echodl/echodl/network"
)

// Client fetches raw platform documents. Documents are returned undecoded
// so they can be cached exactly as served.
type Client struct {
	BaseURL string
	Session *network.Session
}

// New creates a client for the platform at baseURL.
func New(baseURL string, session *network.Session) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Session: session,
	}
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

func (c *Client) endpoint(format string, ids ...string) string {
	escaped := make([]any, len(ids))
	for i, id := range ids {
		escaped[i] = url.PathEscape(id)
	}
	return c.BaseURL + fmt.Sprintf(format, escaped...)
}

func (c *Client) data(ctx context.Context, endpoint string) (json.RawMessage, error) {
	var env envelope
	if err := c.Session.FetchJSON(ctx, endpoint, &env); err != nil {
		return nil, err
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, fmt.Errorf("%s: response has no data", endpoint)
	}

	return env.Data, nil
}

// Enrollments returns the enrollment list of the signed-in user.
func (c *Client) Enrollments(ctx context.Context) (json.RawMessage, error) {
	return c.data(ctx, c.endpoint("/user/enrollments"))
}

// Syllabus returns the syllabus of a section.
func (c *Client) Syllabus(ctx context.Context, sectionID string) (json.RawMessage, error) {
	return c.data(ctx, c.endpoint("/section/%s/syllabus", sectionID))
}

// LessonInfo returns the player data embedded in a lesson's classroom page.
func (c *Client) LessonInfo(ctx context.Context, lessonID string) (json.RawMessage, error) {
	endpoint := c.endpoint("/lesson/%s/classroom", lessonID)

	page, err := c.Session.FetchText(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	info, err := ExtractPlayerData(page)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}

	return info, nil
}

// Transcript returns the transcript of one media of a lesson.
func (c *Client) Transcript(ctx context.Context, lessonID, mediaID string) (json.RawMessage, error) {
	return c.data(ctx, c.endpoint("/api/ui/echoplayer/lessons/%s/medias/%s/transcript", lessonID, mediaID))
}

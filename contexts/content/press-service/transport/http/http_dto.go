package http

type PostResponse struct {
	PostID      string   `json:"post_id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	ContentHTML string   `json:"content_html"`
	Excerpt     string   `json:"excerpt,omitempty"`
	ContentType string   `json:"content_type"`
	Status      string   `json:"status"`
	Categories  []string `json:"categories,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

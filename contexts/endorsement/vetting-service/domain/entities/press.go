package entities

// PressReleaseDraft is the rendered draft handed to the content collaborator.
// All candidate-supplied strings are already HTML-escaped by the drafter.
type PressReleaseDraft struct {
	Title       string
	Slug        string
	ContentHTML string
	Excerpt     string
	ContentType string
	Status      string
	Categories  []string
	Tags        []string
}

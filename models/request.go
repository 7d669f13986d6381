package models

// ClipRequest is the payload for POST /api/v1/clip.
type ClipRequest struct {
	// URL is the recipe page to clip. Required.
	URL string `json:"url" binding:"required,url"`

	// Timeout is the maximum duration in seconds for the page fetch.
	// Default: 10. Max: 60.
	Timeout int `json:"timeout,omitempty" binding:"omitempty,min=1,max=60"`

	// NoteFormat controls the note body.
	// "ingredients" (default): bulleted ingredient lines only.
	// "page": ingredient bullets followed by the full recipe page as Markdown.
	NoteFormat string `json:"note_format,omitempty" binding:"omitempty,oneof=ingredients page"`

	// CSSSelector optionally restricts extraction to the matched elements'
	// outer HTML. When nothing matches, the full document is used.
	CSSSelector string `json:"css_selector,omitempty"`

	// MaxAge enables the response cache: a cached clip younger than this
	// many milliseconds is returned instead of refetching. 0 disables.
	MaxAge int `json:"max_age,omitempty" binding:"omitempty,min=0"`
}

// Defaults applies default values to unset fields.
func (r *ClipRequest) Defaults() {
	if r.NoteFormat == "" {
		r.NoteFormat = "ingredients"
	}
}

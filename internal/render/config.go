// Package render interprets declarative page configurations and projects
// generic Post records into list cards and detail views. Page behavior that
// used to be bespoke per route lives in data here instead of code.
package render

import "encoding/json"

const (
	TypePostList   = "post-list"
	TypePostDetail = "post-detail"
)

// SourceList accepts either a single category string or an array of
// category strings in JSON, mirroring how the page configs are authored.
type SourceList []string

func (s *SourceList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = SourceList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = SourceList(many)
	return nil
}

type Order struct {
	Field     string `json:"field"`
	Direction string `json:"direction"` // asc | desc
}

// MetaField resolves a labelled value through a template expression.
type MetaField struct {
	Label string `json:"label"`
	Expr  string `json:"expr"`
}

// Action is a call-to-action button descriptor. URL may be a template
// expression so detail pages can link into record fields.
type Action struct {
	Label string `json:"label"`
	URL   string `json:"url"`
	Style string `json:"style,omitempty"`
}

type Display struct {
	Title     string      `json:"title,omitempty"`     // expr; defaults to the title field
	Excerpt   string      `json:"excerpt,omitempty"`   // expr; defaults to summary || body
	Thumbnail string      `json:"thumbnail,omitempty"` // expr; defaults to thumbnail fallback chain
	Meta      []MetaField `json:"meta,omitempty"`
	Actions   []Action    `json:"actions,omitempty"`
}

// Config is the declarative description of one public content page.
type Config struct {
	Type          string            `json:"type"`
	Source        SourceList        `json:"source"`
	Order         Order             `json:"order"`
	Limit         int               `json:"limit"`
	ExcerptLength int               `json:"excerptLength"`
	Display       Display           `json:"display"`
	EmptyMessage  string            `json:"emptyMessage,omitempty"`
	Style         map[string]string `json:"style,omitempty"`
}

func (c Config) orderOrDefault() Order {
	o := c.Order
	if o.Field == "" {
		o.Field = "publish_at"
	}
	if o.Direction != "asc" {
		o.Direction = "desc"
	}
	return o
}

// QueryOrder returns the ordering to push into the store query. Ties keep
// the store's insertion order; no secondary key is computed here.
func (c Config) QueryOrder() (field, direction string) {
	o := c.orderOrDefault()
	return o.Field, o.Direction
}

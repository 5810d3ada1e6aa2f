package addon

import (
	"encoding/json"
	"errors"
)

// ErrEmptyResponse is returned when a ResourceResponse with no variant set
// is serialised.
var ErrEmptyResponse = errors.New("resource response has no variant set")

type responseKind int

const (
	kindNone responseKind = iota
	kindStreams
	kindMetas
	kindMeta
	kindSubtitles
)

// ResourceResponse is the payload a handler returns for a resource
// request. It is one of four variants, constructed with NewStreams,
// NewMetas, NewMeta or NewSubtitles; the variant determines the top-level
// key of the serialised JSON object.
type ResourceResponse struct {
	kind      responseKind
	streams   []Stream
	metas     []MetaPreview
	meta      *MetaItem
	subtitles []Subtitle
}

// NewStreams returns a streams response. A nil slice serialises as an
// empty list, which clients treat as "no streams available".
func NewStreams(streams []Stream) *ResourceResponse {
	if streams == nil {
		streams = []Stream{}
	}
	return &ResourceResponse{kind: kindStreams, streams: streams}
}

// NewMetas returns a catalog response listing metadata previews.
func NewMetas(metas []MetaPreview) *ResourceResponse {
	if metas == nil {
		metas = []MetaPreview{}
	}
	return &ResourceResponse{kind: kindMetas, metas: metas}
}

// NewMeta returns a response carrying a single detailed metadata item.
func NewMeta(meta MetaItem) *ResourceResponse {
	return &ResourceResponse{kind: kindMeta, meta: &meta}
}

// NewSubtitles returns a subtitles response.
func NewSubtitles(subtitles []Subtitle) *ResourceResponse {
	if subtitles == nil {
		subtitles = []Subtitle{}
	}
	return &ResourceResponse{kind: kindSubtitles, subtitles: subtitles}
}

// Streams returns the streams variant payload, if set.
func (r *ResourceResponse) Streams() ([]Stream, bool) {
	return r.streams, r.kind == kindStreams
}

// Metas returns the catalog variant payload, if set.
func (r *ResourceResponse) Metas() ([]MetaPreview, bool) {
	return r.metas, r.kind == kindMetas
}

// Meta returns the single-item metadata variant payload, if set.
func (r *ResourceResponse) Meta() (*MetaItem, bool) {
	return r.meta, r.kind == kindMeta
}

// Subtitles returns the subtitles variant payload, if set.
func (r *ResourceResponse) Subtitles() ([]Subtitle, bool) {
	return r.subtitles, r.kind == kindSubtitles
}

func (r *ResourceResponse) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case kindStreams:
		return json.Marshal(struct {
			Streams []Stream `json:"streams"`
		}{r.streams})
	case kindMetas:
		return json.Marshal(struct {
			Metas []MetaPreview `json:"metas"`
		}{r.metas})
	case kindMeta:
		return json.Marshal(struct {
			Meta *MetaItem `json:"meta"`
		}{r.meta})
	case kindSubtitles:
		return json.Marshal(struct {
			Subtitles []Subtitle `json:"subtitles"`
		}{r.subtitles})
	default:
		return nil, ErrEmptyResponse
	}
}

// Stream describes one way of obtaining the content of an item. Exactly
// one of the source fields (URL, YoutubeID, InfoHash, ExternalURL) is
// expected to be set.
type Stream struct {
	URL           string         `json:"url,omitempty"`
	YoutubeID     string         `json:"ytId,omitempty"`
	InfoHash      string         `json:"infoHash,omitempty"`
	FileIndex     *int           `json:"fileIdx,omitempty"`
	ExternalURL   string         `json:"externalUrl,omitempty"`
	Name          string         `json:"name,omitempty"`
	Description   string         `json:"description,omitempty"`
	Thumbnail     string         `json:"thumbnail,omitempty"`
	Subtitles     []Subtitle     `json:"subtitles,omitempty"`
	BehaviorHints map[string]any `json:"behaviorHints,omitempty"`
}

// MetaPreview is the abridged metadata shown in catalog listings.
type MetaPreview struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Poster      string `json:"poster,omitempty"`
	Background  string `json:"background,omitempty"`
	Logo        string `json:"logo,omitempty"`
	Description string `json:"description,omitempty"`
}

// MetaItem is the full metadata record for a single item.
type MetaItem struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Poster      string   `json:"poster,omitempty"`
	Background  string   `json:"background,omitempty"`
	Logo        string   `json:"logo,omitempty"`
	Description string   `json:"description,omitempty"`
	ReleaseInfo string   `json:"releaseInfo,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Videos      []Video  `json:"videos,omitempty"`
}

// Video is one watchable entry of a MetaItem, such as an episode.
type Video struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Released  string `json:"released,omitempty"`
	Season    int    `json:"season,omitempty"`
	Episode   int    `json:"episode,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// Subtitle is a reference to a subtitle track for an item.
type Subtitle struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Lang string `json:"lang"`
}

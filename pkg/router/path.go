package router

import (
	"errors"
	"strings"

	"github.com/addonkit-project/addonkit-go/pkg/addon"
)

// ErrMalformedPath is returned when a URL path does not have the shape of
// a resource request.
var ErrMalformedPath = errors.New("malformed resource path")

// ParseResourcePath parses a URL path of the form
// /{resource}/{type}/{id}[.json] or /{resource}/{type}/{id}/{extras}.json
// into a ResourcePath. The extras segment encodes ordered key=value pairs
// joined by '&'; an entry without exactly one '=' is dropped individually
// without failing the rest of the request. Parsing is pure and never
// invokes a handler.
func ParseResourcePath(path string) (addon.ResourcePath, error) {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(parts) < 3 || len(parts) > 4 {
		return addon.ResourcePath{}, ErrMalformedPath
	}

	resource, contentType, id := parts[0], parts[1], parts[2]

	var extra []addon.ExtraValue
	if len(parts) == 4 {
		for _, entry := range strings.Split(strings.TrimSuffix(parts[3], ".json"), "&") {
			pair := strings.Split(entry, "=")
			if len(pair) != 2 {
				continue
			}
			extra = append(extra, addon.ExtraValue{Name: pair[0], Value: pair[1]})
		}
	} else {
		id = strings.TrimSuffix(id, ".json")
	}

	if resource == "" || contentType == "" || id == "" {
		return addon.ResourcePath{}, ErrMalformedPath
	}

	return addon.ResourcePath{
		Resource: resource,
		Type:     contentType,
		ID:       id,
		Extra:    extra,
	}, nil
}

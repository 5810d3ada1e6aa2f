package addon

import (
	"encoding/json"
	"fmt"
)

// ManifestPath is the well-known path the manifest is served from.
const ManifestPath = "/manifest.json"

// Resource kind names understood by clients.
const (
	ResourceCatalog   = "catalog"
	ResourceMeta      = "meta"
	ResourceStream    = "stream"
	ResourceSubtitles = "subtitles"
)

// Manifest describes an add-on: its identity, the resource kinds it can
// serve and the content types and catalogs it declares. It is constructed
// once and never mutated after the router is built.
type Manifest struct {
	ID            string        `json:"id"`
	Version       string        `json:"version"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	ContactEmail  string        `json:"contactEmail,omitempty"`
	Logo          string        `json:"logo,omitempty"`
	Background    string        `json:"background,omitempty"`
	Types         []string      `json:"types"`
	Resources     []Resource    `json:"resources"`
	IDPrefixes    []string      `json:"idPrefixes,omitempty"`
	Catalogs      []Catalog     `json:"catalogs"`
	AddonCatalogs []Catalog     `json:"addonCatalogs,omitempty"`
	BehaviorHints BehaviorHints `json:"behaviorHints"`
}

// Resource is a single entry of Manifest.Resources. The wire format has two
// shapes: a bare string naming the resource kind, or an object that
// additionally narrows the content types and id prefixes the add-on serves
// for that kind.
type Resource struct {
	Name       string
	Types      []string
	IDPrefixes []string
}

// resourceObject is the long wire form of Resource.
type resourceObject struct {
	Name       string   `json:"name"`
	Types      []string `json:"types,omitempty"`
	IDPrefixes []string `json:"idPrefixes,omitempty"`
}

// MarshalJSON emits the short string form when only the name is set.
func (r Resource) MarshalJSON() ([]byte, error) {
	if len(r.Types) == 0 && len(r.IDPrefixes) == 0 {
		return json.Marshal(r.Name)
	}
	return json.Marshal(resourceObject(r))
}

// UnmarshalJSON accepts both the short string form and the object form.
func (r *Resource) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.Name)
	}
	var obj resourceObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("resource must be a string or an object: %w", err)
	}
	*r = Resource(obj)
	return nil
}

// Catalog declares a browsable content listing served by the catalog
// resource for a given content type.
type Catalog struct {
	Type  string         `json:"type"`
	ID    string         `json:"id"`
	Name  string         `json:"name,omitempty"`
	Extra []CatalogExtra `json:"extra,omitempty"`
}

// CatalogExtra declares an extra parameter a catalog supports, such as
// "search" or "skip".
type CatalogExtra struct {
	Name       string   `json:"name"`
	IsRequired bool     `json:"isRequired,omitempty"`
	Options    []string `json:"options,omitempty"`
}

// BehaviorHints carries client-facing flags about the add-on.
type BehaviorHints struct {
	Adult                 bool `json:"adult,omitempty"`
	P2P                   bool `json:"p2p,omitempty"`
	Configurable          bool `json:"configurable,omitempty"`
	ConfigurationRequired bool `json:"configurationRequired,omitempty"`
}

// ResourceNames returns the names of the declared resources, in
// declaration order.
func (m Manifest) ResourceNames() []string {
	names := make([]string, 0, len(m.Resources))
	for _, r := range m.Resources {
		names = append(names, r.Name)
	}
	return names
}

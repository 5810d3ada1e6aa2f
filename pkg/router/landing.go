package router

import (
	"html/template"
	"strings"

	"github.com/addonkit-project/addonkit-go/pkg/addon"
)

// landingTemplate renders the human-readable root-path page. The install
// link rewrites the current origin to the stremio:// scheme so the add-on
// can be installed with one click.
var landingTemplate = template.Must(template.New("landing").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Name}} - Add-on</title>
<style>
body { font-family: sans-serif; background: #1a1a2e; color: #eee; text-align: center; padding-top: 10vh; }
img.logo { max-width: 120px; }
a.install { display: inline-block; margin-top: 2em; padding: 0.8em 2em; background: #7b5bf5; color: #fff; border-radius: 4px; text-decoration: none; }
p.version { color: #888; }
</style>
</head>
<body>
{{if .Logo}}<img class="logo" src="{{.Logo}}" alt="logo">{{end}}
<h1>{{.Name}}</h1>
<p class="version">v{{.Version}}</p>
{{if .Description}}<p>{{.Description}}</p>{{end}}
<a class="install" href="#" onclick="install(); return false;">Install Add-on</a>
<script>
function install() {
	window.location.href = "stremio://" + window.location.host + "{{.ManifestPath}}";
}
</script>
</body>
</html>
`))

type landingData struct {
	Name         string
	Version      string
	Description  string
	Logo         string
	ManifestPath string
}

// DefaultLanding renders the default landing markup for a manifest. It is
// used when no landing page is configured.
func DefaultLanding(manifest addon.Manifest) (string, error) {
	var buf strings.Builder
	err := landingTemplate.Execute(&buf, landingData{
		Name:         manifest.Name,
		Version:      manifest.Version,
		Description:  manifest.Description,
		Logo:         manifest.Logo,
		ManifestPath: addon.ManifestPath,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

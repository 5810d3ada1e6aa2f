package main

import (
	"context"
	"os"

	"github.com/addonkit-project/addonkit-go/internal/adapter"
	"github.com/addonkit-project/addonkit-go/internal/adapter/awslambda"
	"github.com/addonkit-project/addonkit-go/internal/adapter/httpserver"
	"github.com/addonkit-project/addonkit-go/internal/config"
	"github.com/addonkit-project/addonkit-go/internal/logging"
	"github.com/addonkit-project/addonkit-go/pkg/addon"
	"github.com/addonkit-project/addonkit-go/pkg/router"
)

func main() {
	log := logging.New("addonkit")

	opts, err := config.LoadServerOptions()
	if err != nil {
		log.Error("failed to load server options", "error", err)
		os.Exit(1)
	}

	rt, err := buildRouter(opts)
	if err != nil {
		log.Error("failed to build addon interface", "error", err)
		os.Exit(1)
	}

	var a adapter.Adapter
	switch adapter.DetectMode() {
	case adapter.ModeLambda:
		a = awslambda.NewAdapter(rt, log)
	default:
		a = httpserver.NewAdapter(rt, log)
	}
	a.Start()
}

// buildRouter assembles the example add-on: a manifest declaring movie
// streams, and a stream handler that knows exactly one movie.
func buildRouter(opts router.ServerOptions) (*router.Router, error) {
	manifest := addon.Manifest{
		ID:          "org.example.addon",
		Version:     "1.0.0",
		Name:        "Example",
		Description: "Example Addon",
		Logo:        "https://i.imgur.com/M6pQlDh.jpg",
		Background:  "https://i.imgur.com/P3JQEmD.jpg",
		Types:       []string{"movie"},
		Resources:   []addon.Resource{{Name: addon.ResourceStream}},
	}

	builder := router.NewBuilder(manifest)
	if err := builder.HandleStream(streamHandler); err != nil {
		return nil, err
	}
	return builder.Build(opts)
}

func streamHandler(_ context.Context, path addon.ResourcePath) (*addon.ResourceResponse, error) {
	if path.Type == "movie" && path.ID == "tt1254207" {
		return addon.NewStreams([]addon.Stream{{
			URL: "http://distribution.bbb3d.renderfarming.net/video/mp4/bbb_sunflower_1080p_30fps_normal.mp4",
		}}), nil
	}
	return addon.NewStreams(nil), nil
}

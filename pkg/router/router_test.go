package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addonkit-project/addonkit-go/pkg/addon"
	"github.com/addonkit-project/addonkit-go/pkg/transport"
)

func testOptions() ServerOptions {
	opts := DefaultServerOptions()
	opts.CacheMaxAge = 3600
	opts.LandingHTML = "<html>Hello World</html>"
	return opts
}

func get(path string) *transport.Request {
	return transport.NewHTTPRequest(httptest.NewRequest(http.MethodGet, path, nil))
}

func TestRouteMethodNotAllowedWhenNotGet(t *testing.T) {
	rt := newRouter(testManifest(), nil, testOptions())

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodHead} {
		t.Run(method, func(t *testing.T) {
			req := transport.NewHTTPRequest(httptest.NewRequest(method, addon.ManifestPath, nil))
			resp, err := rt.Route(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode())
			assert.Empty(t, resp.Header())
			assert.Equal(t, "Method Not Allowed", string(resp.Body()))
		})
	}
}

func TestRouteLandingPageOnRoot(t *testing.T) {
	rt := newRouter(testManifest(), nil, testOptions())

	resp, err := rt.Route(context.Background(), get("/"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "text/html", resp.Header().Get("Content-Type"))
	assert.Empty(t, resp.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "<html>Hello World</html>", string(resp.Body()))
}

func TestRouteManifest(t *testing.T) {
	manifest := testManifest()
	rt := newRouter(manifest, nil, testOptions())

	resp, err := rt.Route(context.Background(), get(addon.ManifestPath))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, "application/json", resp.Header().Get("Content-Type"))
	assert.Equal(t, "*", resp.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "max-age=3600, public", resp.Header().Get("Cache-Control"))

	expected, err := json.Marshal(manifest)
	require.NoError(t, err)
	assert.Equal(t, string(expected), string(resp.Body()))
}

func TestRouteManifestViaBuilder(t *testing.T) {
	b := NewBuilder(testManifest())
	require.NoError(t, b.HandleStream(emptyStreams))
	rt, err := b.Build(testOptions())
	require.NoError(t, err)

	resp, err := rt.Route(context.Background(), get(addon.ManifestPath))
	require.NoError(t, err)

	expected, err := json.Marshal(testManifest())
	require.NoError(t, err)
	assert.Equal(t, string(expected), string(resp.Body()))
}

func TestRouteBadRequestForMalformedPath(t *testing.T) {
	rt := newRouter(testManifest(), nil, testOptions())

	for _, path := range []string{"/foo/bar", "/a/b/c/d/e", "/stream//id"} {
		t.Run(path, func(t *testing.T) {
			resp, err := rt.Route(context.Background(), get(path))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
			assert.Empty(t, resp.Header())
			assert.Equal(t, "Bad Request", string(resp.Body()))
		})
	}
}

func TestRouteNotFoundWhenNoHandlerMatches(t *testing.T) {
	rt := newRouter(testManifest(), nil, testOptions())

	resp, err := rt.Route(context.Background(), get("/stream/movie/id"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.Empty(t, resp.Header())
	assert.Equal(t, "Not Found", string(resp.Body()))
}

func TestRouteMatchesHandlerByExactSegment(t *testing.T) {
	called := false
	handlers := []Handler{{
		Name: addon.ResourceStream,
		Func: func(_ context.Context, _ addon.ResourcePath) (*addon.ResourceResponse, error) {
			called = true
			return addon.NewStreams(nil), nil
		},
	}}
	rt := newRouter(testManifest(), handlers, testOptions())

	// "streams" must not match the handler named "stream".
	resp, err := rt.Route(context.Background(), get("/streams/movie/id"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.False(t, called)

	resp, err = rt.Route(context.Background(), get("/stream/movie/id"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.True(t, called)
}

func TestRouteNotFoundWhenHandlerReturnsNil(t *testing.T) {
	handlers := []Handler{{
		Name: addon.ResourceStream,
		Func: func(_ context.Context, _ addon.ResourcePath) (*addon.ResourceResponse, error) {
			return nil, nil
		},
	}}
	rt := newRouter(testManifest(), handlers, testOptions())

	resp, err := rt.Route(context.Background(), get("/stream/movie/id.json"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.Empty(t, resp.Header())
}

func TestRouteStreamHandler(t *testing.T) {
	streamURL := "http://distribution.bbb3d.renderfarming.net/video/mp4/bbb_sunflower_1080p_30fps_normal.mp4"
	handlers := []Handler{{
		Name: addon.ResourceStream,
		Func: func(_ context.Context, path addon.ResourcePath) (*addon.ResourceResponse, error) {
			if path.Type == "movie" && path.ID == "tt1254207" {
				return addon.NewStreams([]addon.Stream{{URL: streamURL}}), nil
			}
			return addon.NewStreams(nil), nil
		},
	}}
	rt := newRouter(testManifest(), handlers, testOptions())

	t.Run("known id returns the stream list", func(t *testing.T) {
		resp, err := rt.Route(context.Background(), get("/stream/movie/tt1254207"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode())
		assert.Equal(t, "application/json", resp.Header().Get("Content-Type"))
		assert.Equal(t, "*", resp.Header().Get("Access-Control-Allow-Origin"))

		var payload struct {
			Streams []addon.Stream `json:"streams"`
		}
		require.NoError(t, json.Unmarshal(resp.Body(), &payload))
		require.Len(t, payload.Streams, 1)
		assert.Equal(t, streamURL, payload.Streams[0].URL)
	})

	t.Run("unknown id returns an empty stream list", func(t *testing.T) {
		resp, err := rt.Route(context.Background(), get("/stream/movie/tt0000000"))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode())
		assert.JSONEq(t, `{"streams":[]}`, string(resp.Body()))
	})
}

func TestRoutePassesExtrasInOrder(t *testing.T) {
	var captured addon.ResourcePath
	handlers := []Handler{{
		Name: addon.ResourceStream,
		Func: func(_ context.Context, path addon.ResourcePath) (*addon.ResourceResponse, error) {
			captured = path
			return addon.NewStreams(nil), nil
		},
	}}
	rt := newRouter(testManifest(), handlers, testOptions())

	t.Run("well formed extras", func(t *testing.T) {
		_, err := rt.Route(context.Background(), get("/stream/movie/id/a=1&b=2.json"))
		require.NoError(t, err)
		assert.Equal(t, []addon.ExtraValue{
			{Name: "a", Value: "1"},
			{Name: "b", Value: "2"},
		}, captured.Extra)
	})

	t.Run("malformed entry dropped", func(t *testing.T) {
		_, err := rt.Route(context.Background(), get("/stream/movie/id/malformed&b=2.json"))
		require.NoError(t, err)
		assert.Equal(t, []addon.ExtraValue{{Name: "b", Value: "2"}}, captured.Extra)
	})
}

func TestRouteSerialisationFailureIsNotMappedToNotFound(t *testing.T) {
	handlers := []Handler{{
		Name: addon.ResourceStream,
		Func: func(_ context.Context, _ addon.ResourcePath) (*addon.ResourceResponse, error) {
			// A zero-value response has no variant and cannot be
			// serialised.
			return &addon.ResourceResponse{}, nil
		},
	}}
	rt := newRouter(testManifest(), handlers, testOptions())

	resp, err := rt.Route(context.Background(), get("/stream/movie/id"))
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, addon.ErrEmptyResponse)
}

func TestRouteHandlerErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	handlers := []Handler{{
		Name: addon.ResourceStream,
		Func: func(_ context.Context, _ addon.ResourcePath) (*addon.ResourceResponse, error) {
			return nil, boom
		},
	}}
	rt := newRouter(testManifest(), handlers, testOptions())

	resp, err := rt.Route(context.Background(), get("/stream/movie/id"))
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, boom)
}

func TestRouteForwardsContext(t *testing.T) {
	type ctxKey struct{}
	var got any
	handlers := []Handler{{
		Name: addon.ResourceStream,
		Func: func(ctx context.Context, _ addon.ResourcePath) (*addon.ResourceResponse, error) {
			got = ctx.Value(ctxKey{})
			return addon.NewStreams(nil), nil
		},
	}}
	rt := newRouter(testManifest(), handlers, testOptions())

	ctx := context.WithValue(context.Background(), ctxKey{}, "marker")
	_, err := rt.Route(ctx, get("/stream/movie/id"))
	require.NoError(t, err)
	assert.Equal(t, "marker", got)
}

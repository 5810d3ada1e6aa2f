package router

// ServerOptions carries the externally supplied serving configuration.
// It is opaque to the routing logic except for the cache max-age and the
// landing markup.
type ServerOptions struct {
	BindAddress string
	Port        int
	CacheMaxAge int
	LandingHTML string
}

// DefaultServerOptions returns the default serving configuration: loopback
// bind, port 43001 and a three day cache max-age.
func DefaultServerOptions() ServerOptions {
	return ServerOptions{
		BindAddress: "127.0.0.1",
		Port:        43001,
		CacheMaxAge: 3 * 24 * 3600,
	}
}

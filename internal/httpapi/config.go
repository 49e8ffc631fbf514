package httpapi

// 1 MiB is plenty for prompt payloads while keeping abusive bodies out.
const defaultMaxBodyBytes = 1 << 20

var maxBodyBytes int64 = defaultMaxBodyBytes

// SetMaxBodyBytes overrides the request body cap on the JSON endpoints.
// Values of zero or below restore the default.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		n = defaultMaxBodyBytes
	}
	maxBodyBytes = n
}

// corsOptions carries the opt-in CORS allowlists. The zero value leaves the
// middleware unmounted.
type corsOptions struct {
	enabled bool
	origins []string
	methods []string
	headers []string
}

var corsConfig corsOptions

// SetCORSOptions enables or disables CORS for subsequently built muxes.
// The slices are copied so callers may reuse their backing arrays.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsConfig = corsOptions{
		enabled: enabled,
		origins: append([]string(nil), origins...),
		methods: append([]string(nil), methods...),
		headers: append([]string(nil), headers...),
	}
}

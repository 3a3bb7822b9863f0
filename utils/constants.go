package utils

import (
	"time"
)

// ContextKey is the type used for request-scoped context values.
type ContextKey string

// Request context keys
const (
	// RequestIDKey carries the inbound X-Request-ID header value
	RequestIDKey ContextKey = "request_id"

	// UserAgentKey carries the caller's User-Agent header value
	UserAgentKey ContextKey = "user_agent"

	// IPAddressKey carries the caller's IP address
	IPAddressKey ContextKey = "ip_address"

	// EndpointKey carries the matched endpoint path
	EndpointKey ContextKey = "endpoint"
)

// Session and workspace time constants
const (
	// SessionTokenTTL is the time-to-live for workspace session tokens (24 hours)
	SessionTokenTTL = 24 * time.Hour

	// WorkspaceIdleTTL is how long an untouched table workspace is kept before eviction
	WorkspaceIdleTTL = 2 * time.Hour

	// WorkspaceSweepInterval is how often expired workspaces are swept
	WorkspaceSweepInterval = 10 * time.Minute
)

// Upstream client constants
const (
	// UpstreamTimeout is the default per-request timeout against the academy backend
	UpstreamTimeout = 15 * time.Second

	// MultipartMemoryLimit caps in-memory buffering of forwarded uploads (8MB)
	MultipartMemoryLimit = 8 << 20
)

// HTTP constants
const (
	// CORSMaxAge is how long browsers may cache preflight responses (seconds)
	CORSMaxAge = 86400
)

// Table defaults
const (
	// DefaultPageSize is the page size used when a workspace has no preference set
	DefaultPageSize = 6

	// MaxPageSize bounds client-requested page sizes
	MaxPageSize = 100
)

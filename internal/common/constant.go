package common

// AuthorizationHeaderName is the gRPC metadata key (and HTTP header) that
// carries a bearer token on authenticated requests.
const AuthorizationHeaderName = "authorization"

// BearerPrefix precedes the token value inside the authorization header.
const BearerPrefix = "Bearer "

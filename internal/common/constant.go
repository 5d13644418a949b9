package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the service
// token on calls to the adapter.
const AccessTokenHeaderName = "access_token"

// DefaultRole is assigned to every new user when role assignment is enabled.
const DefaultRole = "user"

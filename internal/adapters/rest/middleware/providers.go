package middleware

import (
	"github.com/google/wire"
)

// ProviderSet is the wire provider set for middleware components
var ProviderSet = wire.NewSet(
	NewAuthorizer,
)

package validator

import "github.com/google/wire"

// ProviderSet is the wire provider set for request validation
var ProviderSet = wire.NewSet(New)

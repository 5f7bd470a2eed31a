package application

import (
	"github.com/google/wire"
)

// ProviderSet is the wire provider set for user application services
var ProviderSet = wire.NewSet(
	NewUserService,
)

package rest

import (
	"github.com/google/wire"
)

// ProviderSet is the wire provider set for REST handlers
var ProviderSet = wire.NewSet(
	NewBaseHandler,
	NewRoleHandler,
	NewUserHandler,
	NewAuthzHandler,
	NewHealthHandler,
	NewServer,
)

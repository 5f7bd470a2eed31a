package audit

import "github.com/google/wire"

// ProviderSet is the wire provider set for the audit subscriber
var ProviderSet = wire.NewSet(
	NewSubscriber,
)

// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the favicon discovery logic

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// HTTPClient fetches pages and checks icon locations
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger
}

// LoggerOrNop returns the configured logger, or a NopLogger when none is set
func (d Dependencies) LoggerOrNop() Logger {
	if d.Logger == nil {
		return NopLogger{}
	}
	return d.Logger
}

package docxtable

import "log/slog"

// ExtractOptions holds configuration for table extraction.
type ExtractOptions struct {
	// Only tables that are not nested in another table's cells
	topLevelOnly bool

	// Debug output about package parts; nil means silent
	logger *slog.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		topLevelOnly: false,
		logger:       nil,
	}
}

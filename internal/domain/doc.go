// Package domain defines the core business entities of the TED search
// service: search filters and results, notice summaries and details,
// background tasks and their lifecycle, and the errors shared across
// the application layers.
package domain

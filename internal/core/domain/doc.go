// Package domain defines the core business entities for wbrank.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ProductInfo: Catalog metadata for a single product
//   - ResultPage: One page of ranked search results
//   - RankOutcome: The terminal result of ranking one keyword
//   - CancelToken: A shared cooperative cancellation signal
//   - Session: A live search registered under a session key
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - SearchIndex: Paced page fetches from the marketplace search
//   - Catalog: Product card and price retrieval
//   - SessionRegistry: Live searches keyed by session
//   - KeywordExtractor: Keyword derivation from a product card
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ShardCache: Resolved storage shards. Without it every card lookup probes.
//   - LLMService: Language model operations. Without it keyword extraction uses rules.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven

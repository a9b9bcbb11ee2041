// Package keywords implements keyword extraction from product cards.
//
// Two strategies are provided:
//
//   - RuleExtractor: words from the title, selected card options and the
//     composition list, filtered by stop words and deduplicated by stem
//   - LLMExtractor: keyphrases generated by a language model, falling back
//     to a RuleExtractor when the model is unavailable
package keywords

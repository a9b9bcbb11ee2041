// Package wildberries implements the marketplace driven ports.
//
// # Components
//
//   - SearchClient: full-text search pages ([driven.SearchIndex])
//   - CatalogClient: product cards, photos and prices ([driven.Catalog])
//   - Pacer: the fixed pause taken before every search request
//
// # Request discipline
//
// The upstream blocks clients that issue requests too quickly. Search
// requests are preceded by a fixed delay (one second by default), and
// catalog requests share a token bucket of one request per second.
// Requests are never retried; failures are reported as domain.ErrNetwork
// or domain.ErrParse.
//
// # Storage shards
//
// Product cards live on numbered storage shards ("baskets"). The shard for
// older products is derived from a fixed volume range table; newer volumes
// are probed in order and the answer is remembered in a [driven.ShardCache].
package wildberries

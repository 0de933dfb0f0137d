// Package registry provides the tool catalog for automation providers.
//
// The registry maintains the set of registered providers and handles
// listing, discovery, and tool execution routing.
//
// Components:
//   - Registry: Central provider catalog
//   - Provider: Interface provider packages implement
//   - Intent-based discovery with relevance scoring
//
// Tool IDs are "provider.tool" pairs; Execute splits on the first dot
// and routes to the owning provider.
//
// Example Usage:
//
//	registry := registry.New()
//	registry.Register(deckProvider)
//	result, err := registry.Execute(ctx, "deck.open", params, callCtx)
package registry

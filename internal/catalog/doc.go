// Package catalog supplies the products a shopper can put in the cart.
//
// The cart itself stores only product ids and quantities; names, prices
// and categories come from a Source. Two sources exist: Static, a built-in
// list that needs nothing, and Client, which reads GET /api/products from a
// catalog service.
//
// Cache holds the last good product list for the UI and tracks consecutive
// fetch failures so the UI can show an offline badge while still rendering
// the previous list. The refresh loop that fills it lives in package app.
package catalog

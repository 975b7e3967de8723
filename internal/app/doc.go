// Package app composes the DeepR API HTTP application.
//
// The application is an explicit route table (method + pattern -> handler)
// plus a prefix-delegation table for the authentication router, both built
// once by New and never mutated afterwards. Every route, including the
// delegated ones and the 404/405 fallbacks, sits behind the cross-origin
// policy.
package app

// Package preflight runs the checks an organize run depends on before any
// file is touched: source readability, destination access, and a free-space
// floor on the destination filesystem.
package preflight

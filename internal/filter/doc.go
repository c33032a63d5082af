// Package filter selects media items by tag membership and path pattern.
//
// Tag matching defaults to ALL semantics (the item must carry every required
// tag); ANY matching is an explicit opt-in. Tags compare Unicode case-folded
// so "Portrait" and "portrait" are the same tag. The regex rule is evaluated
// against the item's full path with search semantics. When both rules are
// configured an item must satisfy both; a filter with no criteria accepts
// every item.
package filter

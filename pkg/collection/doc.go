// Package collection has small helpers for listing pages: in-memory pagination,
// form value coercion and a nil-last comparator with Vietnamese collation.
package collection

// Package domain contains the core model for mingpan: sexagenary stems and branches,
// the five elements, five-grid name numerology results and the reading artifact.
//
// The domain has no I/O: it does not read reference tables, resolve time zones or touch
// the filesystem. Infra/adapters map into/from these types.
package domain

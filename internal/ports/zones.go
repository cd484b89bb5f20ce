package ports

import "time"

// ZoneResolver turns an IANA zone name into a location. Unknown names fall back
// to a configured default; fellBack reports when that happened.
type ZoneResolver interface {
	Resolve(name string) (loc *time.Location, fellBack bool, err error)
}

package ports

import "github.com/mingpan/mingpan/internal/domain"

// ReadingStore persists reading artifacts.
type ReadingStore interface {
	SaveReading(r domain.Reading) (id string, err error)
}

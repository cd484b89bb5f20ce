package ports

import "github.com/mingpan/mingpan/internal/domain"

// CaseBookLoader loads reference casebooks from a source (e.g., filesystem).
type CaseBookLoader interface {
	LoadCaseBook(path string) (domain.CaseBook, error)
	ListCaseBooks(root string) ([]domain.CaseBookRef, error)
}

package comparer

import "github.com/ginjaninja78/BOM-compare/internal/xlsxparser"

// SourceOpener opens one BOM source for extraction.
// The comparer depends on this interface, not on the file readers.
//
//go:generate mockgen -destination=mocks/mock_opener.go -package=mock_comparer -source=interface.go SourceOpener
type SourceOpener interface {
	Open(path string) (xlsxparser.Sheet, error)
}

//go:build !cgo

package store

// SQLiteErrorClassifier is inert without cgo: the SQLite driver cannot open
// databases in such builds.
type SQLiteErrorClassifier struct{}

func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

func (c *SQLiteErrorClassifier) Classify(error) (ErrorClassification, string) {
	return Unclassified, ""
}

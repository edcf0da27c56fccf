// Package upload persists uploaded tenant program images and reports where
// each one was written.
package upload

// File describes one stored upload. FilePath is what tenants reference.
type File struct {
	FilePath     string
	OriginalName string
	Size         int64
	ContentType  string
}

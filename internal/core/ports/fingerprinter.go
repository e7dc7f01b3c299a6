package ports

// Fingerprinter hashes the sources a project compiles from.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	// Fingerprint returns a value that changes whenever a compilable file below root changes.
	Fingerprint(root string) (string, error)
}

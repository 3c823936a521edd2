// Package constraints provides type constraints for generic helpers.
package constraints

// Byteseq represents header value input given as a string or a byte slice.
type Byteseq interface {
	~string | ~[]byte
}

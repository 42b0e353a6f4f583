// Package constraints provides type constraints for generic parsers.
package constraints

// Byteseq is satisfied by string and byte slice types accepted as raw parser input.
type Byteseq interface {
	~string | ~[]byte
}

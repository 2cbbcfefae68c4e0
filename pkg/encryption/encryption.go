// Package encryption holds the per-column encryption handles attached during
// writer-tree construction. Handles are resolved by schema ordinal; a column
// without an entry is written in the clear.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/skylarkdata/orcio/pkg/orcerrors"
)

// DataEncryptor is the opaque handle a column writer carries. It wraps an
// AES block cipher plus the key metadata recorded in the file so readers can
// resolve the matching key.
type DataEncryptor struct {
	block       cipher.Block
	keyMetadata []byte
}

// NewDataEncryptor builds a handle from a raw AES key (16, 24, or 32 bytes)
// and the key metadata to record alongside the encrypted streams.
func NewDataEncryptor(key, keyMetadata []byte) (*DataEncryptor, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, orcerrors.Wrap(err, orcerrors.ErrorTypeConfig, "invalid encryption key")
	}
	metadata := make([]byte, len(keyMetadata))
	copy(metadata, keyMetadata)
	return &DataEncryptor{block: block, keyMetadata: metadata}, nil
}

// BlockSize returns the cipher block size, which is also the required
// initialization vector length.
func (e *DataEncryptor) BlockSize() int {
	return e.block.BlockSize()
}

// KeyMetadata returns the metadata recorded for key resolution.
func (e *DataEncryptor) KeyMetadata() []byte {
	return e.keyMetadata
}

// Encrypt encrypts data in CTR mode under the given initialization vector.
// The input is not modified.
func (e *DataEncryptor) Encrypt(iv, data []byte) ([]byte, error) {
	if len(iv) != e.block.BlockSize() {
		return nil, orcerrors.Newf(orcerrors.ErrorTypeConfig,
			"initialization vector must be %d bytes, got %d", e.block.BlockSize(), len(iv))
	}
	out := make([]byte, len(data))
	cipher.NewCTR(e.block, iv).XORKeyStream(out, data)
	return out, nil
}

// Info maps schema ordinals to their optional encryption handles. At most
// one handle may be registered per ordinal. The zero-value-adjacent nil
// *Info resolves every lookup to "no encryption", so an unencrypted build
// needs no allocation.
type Info struct {
	encryptors map[int]*DataEncryptor
}

// NewInfo creates an empty resolver.
func NewInfo() *Info {
	return &Info{encryptors: make(map[int]*DataEncryptor)}
}

// SetNodeEncryptor registers a handle for one ordinal. Registering a second
// handle for the same ordinal is a configuration error.
func (i *Info) SetNodeEncryptor(ordinal int, encryptor *DataEncryptor) error {
	if _, exists := i.encryptors[ordinal]; exists {
		return orcerrors.Newf(orcerrors.ErrorTypeConfig,
			"encryptor already registered for node %d", ordinal)
	}
	i.encryptors[ordinal] = encryptor
	return nil
}

// SetGroupEncryptor registers one handle for a whole column group, so every
// node encrypted under the same key is configured in one call. Any ordinal
// already registered fails the whole call; earlier ordinals in the group stay
// registered.
func (i *Info) SetGroupEncryptor(encryptor *DataEncryptor, ordinals ...int) error {
	for _, ordinal := range ordinals {
		if err := i.SetNodeEncryptor(ordinal, encryptor); err != nil {
			return err
		}
	}
	return nil
}

// EncryptorByNode resolves the handle for one ordinal. Absence means the
// column has no column-specific encryption.
func (i *Info) EncryptorByNode(ordinal int) (*DataEncryptor, bool) {
	if i == nil {
		return nil, false
	}
	encryptor, ok := i.encryptors[ordinal]
	return encryptor, ok
}

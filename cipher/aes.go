package cipher

import (
	"bytes"
	"crypto/aes"
	cryptocipher "crypto/cipher"

	liberr "github.com/nabbar/golib/errors"

	"github.com/acridotheres/go-hssp/stream"
)

// DecryptRange reads length bytes from r starting at pos, AES-256-CBC
// decrypts them with key/iv and strips PKCS#7 padding, returning the
// plaintext body bytes (spec.md §4.4 step 2).
func DecryptRange(r stream.Reader, key [32]byte, iv [16]byte, pos, length int64) ([]byte, liberr.Error) {
	if err := r.Seek(pos); err != nil {
		return nil, err
	}
	ciphertext, err := r.ReadBytes(int(length))
	if err != nil {
		return nil, err
	}
	return Decrypt(key, iv, ciphertext)
}

// Decrypt AES-256-CBC decrypts ciphertext and strips PKCS#7 padding.
func Decrypt(key [32]byte, iv [16]byte, ciphertext []byte) ([]byte, liberr.Error) {
	if len(ciphertext) == 0 {
		return []byte{}, nil
	}
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrorDecrypt.Error(nil)
	}

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, ErrorBlock.Error(err)
	}

	out := make([]byte, len(ciphertext))
	cryptocipher.NewCBCDecrypter(block, iv[:]).CryptBlocks(out, ciphertext)

	return unpad(out)
}

// Encrypt pads plaintext with PKCS#7 and AES-256-CBC encrypts it.
func Encrypt(key [32]byte, iv [16]byte, plaintext []byte) ([]byte, liberr.Error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, ErrorBlock.Error(err)
	}

	padded := pad(plaintext, aes.BlockSize)
	out := make([]byte, len(padded))
	cryptocipher.NewCBCEncrypter(block, iv[:]).CryptBlocks(out, padded)

	return out, nil
}

func pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	return append(append([]byte(nil), b...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte) ([]byte, liberr.Error) {
	if len(b) == 0 {
		return b, nil
	}
	n := int(b[len(b)-1])
	if n == 0 || n > len(b) || n > aes.BlockSize {
		return nil, ErrorDecrypt.Error(nil)
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, ErrorDecrypt.Error(nil)
		}
	}
	return b[:len(b)-n], nil
}

package util

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// fieldKeySalt 固定盐，只用于从配置密钥派生字段加密 key
var fieldKeySalt = []byte("flux-wallet-field-key")

// deriveFieldKey 始终生成 32 字节 key，避免对配置长度过于敏感。
func deriveFieldKey(secret string) []byte {
	return pbkdf2.Key([]byte(secret), fieldKeySalt, 100_000, 32, sha256.New)
}

// FieldCipher encrypts and decrypts sensitive text columns with a single
// process-wide key. Encryption is deterministic: no per-record nonce, the
// same plaintext always yields the same ciphertext, so encrypted columns
// stay stable across writes.
type FieldCipher struct {
	block cipher.Block
}

// NewFieldCipher derives the AES key from the configured secret.
// An empty or blank secret is a configuration error.
func NewFieldCipher(secret string) (*FieldCipher, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("encryption key is empty")
	}
	block, err := aes.NewCipher(deriveFieldKey(secret))
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	return &FieldCipher{block: block}, nil
}

// Encrypt 加密明文并返回 base64 字符串
func (f *FieldCipher) Encrypt(plain string) (string, error) {
	padded := pkcs7Pad([]byte(plain), aes.BlockSize)
	out := make([]byte, len(padded))
	for i := 0; i < len(padded); i += aes.BlockSize {
		f.block.Encrypt(out[i:i+aes.BlockSize], padded[i:i+aes.BlockSize])
	}
	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt 解密 base64 密文；输入不是合法密文时返回错误
func (f *FieldCipher) Decrypt(cipherStr string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(cipherStr)
	if err != nil {
		return "", fmt.Errorf("decode cipher: %w", err)
	}
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return "", fmt.Errorf("cipher length %d is not a block multiple", len(data))
	}

	out := make([]byte, len(data))
	for i := 0; i < len(data); i += aes.BlockSize {
		f.block.Decrypt(out[i:i+aes.BlockSize], data[i:i+aes.BlockSize])
	}

	plain, err := pkcs7Unpad(out, aes.BlockSize)
	if err != nil {
		return "", fmt.Errorf("unpad: %w", err)
	}
	return string(plain), nil
}

// DecryptTolerant 尝试解密，失败则原样返回输入。
// Historical rows may hold plaintext or ciphertext written under another
// key; callers that page over many records use this so one bad value
// cannot abort the batch. The second return reports whether decryption
// actually succeeded.
func (f *FieldCipher) DecryptTolerant(cipherStr string) (string, bool) {
	if cipherStr == "" {
		return cipherStr, true
	}
	plain, err := f.Decrypt(cipherStr)
	if err != nil {
		return cipherStr, false
	}
	return plain, true
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(data))
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("invalid padding byte %d", n)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("inconsistent padding")
		}
	}
	return data[:len(data)-n], nil
}

package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"io/ioutil"
	"path"
	"strings"
	"sync"
)

var (
	fileEncrKey = []byte("mNr2&wq9Zp!cXiT7e)KdU^5sLby-Fg3H")
)

// EncryptedFile stores config bytes encrypted at rest so warehouse credentials
// never land on disk in clear text.
type EncryptedFile struct {
	Dirname     string
	FileName    string
	FilePrefix  string
	FileExt     string
	FullPath    string
	mu          sync.Mutex
	fileCreated bool
}

func NewEncryptedFileWithDir(dirName string, filename string) *EncryptedFile {
	f := &EncryptedFile{Dirname: dirName, FileName: filename}
	f.FullPath = path.Join(dirName, filename)
	f.FileExt = strings.TrimLeft(path.Ext(filename), ".")
	f.FilePrefix = strings.TrimRight(f.FileName, "."+f.FileExt)
	return f
}

func (f *EncryptedFile) Set(text []byte) (err error) {
	c, err := aes.NewCipher(fileEncrKey)
	if err != nil {
		return err
	}
	gcm, err := cipher.NewGCM(c)
	if err != nil {
		return err
	}
	// The nonce must be NonceSize() bytes long and unique for all time, for a given key.
	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return err
	}
	sealedBytes := gcm.Seal(nonce, nonce, text, nil)
	b64 := base64.StdEncoding.EncodeToString(sealedBytes)
	// Create the config file if required.
	if !fileExists(f.FullPath) { // if the file does not exist...
		if err := makeDir(f.Dirname); err != nil { // if we could not create the config directory...
			return err
		}
	}
	return ioutil.WriteFile(f.FullPath, []byte(b64), 0600)
}

func (f *EncryptedFile) Get() (text []byte, err error) {
	if !fileExists(f.FullPath) { // if the file does not exist...
		return nil, FileNotFoundError{f.FullPath}
	}
	b64, err := ioutil.ReadFile(f.FullPath)
	if err != nil {
		return nil, err
	}
	cipherText, err := base64.StdEncoding.DecodeString(string(b64))
	if err != nil {
		return nil, err
	}
	return Decrypt(cipherText, fileEncrKey)
}

func Decrypt(text []byte, key []byte) ([]byte, error) {
	c, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(c)
	if err != nil {
		return nil, err
	}
	nonceSize := gcm.NonceSize()
	if len(text) < nonceSize {
		return nil, fmt.Errorf("encrypted text is too short")
	}
	nonce, cipherText := text[:nonceSize], text[nonceSize:]
	return gcm.Open(nil, nonce, cipherText, nil)
}

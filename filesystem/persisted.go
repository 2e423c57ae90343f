package filesystem

import (
	"io"
	"os"
	"time"

	"github.com/metafates/gache"
)

// gacheFs hands gache the backend selected at the time of each access.
type gacheFs struct{}

func (gacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

func (gacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}

// Persisted is a value of type T kept as JSON in the file at path.
// A zero lifetime never expires.
func Persisted[T any](path string, lifetime time.Duration) *gache.Cache[T] {
	return gache.New[T](&gache.Options{
		Path:       path,
		Lifetime:   lifetime,
		FileSystem: gacheFs{},
	})
}

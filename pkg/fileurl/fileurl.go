package fileurl

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// IsExist checks whether a path exists
// IsExist 判断路径是否存在
func IsExist(p string) bool {
	_, err := os.Stat(p)
	return err == nil || os.IsExist(err)
}

// IsDir determines if the given path is a directory
func IsDir(p string) bool {
	s, err := os.Stat(p)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// CreatePath creates the parent directory chain for a file path.
// CreatePath 为文件路径创建父级目录
func CreatePath(p string, perm os.FileMode) error {
	dir := filepath.Dir(p)
	if IsExist(dir) {
		return nil
	}
	return os.MkdirAll(dir, perm)
}

// GetFileExt gets file extension
func GetFileExt(name string) string {
	return path.Ext(name)
}

// PathSuffixCheckAdd appends suffix to p when p is non-empty and does not
// already end with it.
func PathSuffixCheckAdd(p string, suffix string) string {
	if p == "" {
		return p
	}
	if !strings.HasSuffix(p, suffix) {
		return p + suffix
	}
	return p
}

// GetExePath returns the directory of the running binary.
func GetExePath() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

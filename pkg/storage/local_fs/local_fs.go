package local_fs

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/daybookhq/journal-sync-service/pkg/fileurl"
)

type Config struct {
	HttpfsIsEnable bool   `yaml:"httpfs-is-enable" default:"true"`
	SavePath       string `yaml:"save-path" default:"storage/uploads"`
	CustomPath     string `yaml:"custom-path"`
}

type LocalFS struct {
	Config *Config
}

func NewClient(conf *Config) (*LocalFS, error) {
	if conf.SavePath == "" {
		conf.SavePath = "storage/uploads"
	}
	return &LocalFS{
		Config: conf,
	}, nil
}

func (p *LocalFS) getSavePath() string {
	return fileurl.PathSuffixCheckAdd(p.Config.SavePath, "/")
}

func (p *LocalFS) SendFile(fileKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	return p.SendContent(fileKey, content, modTime)
}

func (p *LocalFS) SendContent(fileKey string, content []byte, modTime time.Time) (string, error) {
	dstFileKey := p.getSavePath() + fileKey

	if err := fileurl.CreatePath(filepath.Dir(dstFileKey), os.ModePerm); err != nil {
		return "", err
	}
	if err := os.WriteFile(dstFileKey, content, 0o644); err != nil {
		return "", err
	}
	if !modTime.IsZero() {
		if err := os.Chtimes(dstFileKey, modTime, modTime); err != nil {
			return "", err
		}
	}
	return dstFileKey, nil
}

func (p *LocalFS) Delete(fileKey string) error {
	dstFileKey := p.getSavePath() + fileKey
	if fileurl.IsExist(dstFileKey) {
		return os.Remove(dstFileKey)
	}
	return nil
}

package webdav

import (
	"io"
	"os"
	"path"
	"time"

	"github.com/daybookhq/journal-sync-service/pkg/fileurl"

	"github.com/pkg/errors"
	"github.com/studio-b12/gowebdav"
)

type Config struct {
	Endpoint   string `yaml:"endpoint"`
	Path       string `yaml:"path"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	CustomPath string `yaml:"custom-path"`
}

type WebDAV struct {
	Client *gowebdav.Client
	Config *Config
}

func NewClient(conf *Config) (*WebDAV, error) {
	root := conf.Endpoint
	if conf.Path != "" {
		root = fileurl.PathSuffixCheckAdd(conf.Endpoint, "/") + conf.Path
	}
	client := gowebdav.NewClient(root, conf.User, conf.Password)
	if err := client.Connect(); err != nil {
		return nil, errors.Wrap(err, "webdav")
	}
	return &WebDAV{
		Client: client,
		Config: conf,
	}, nil
}

// SendFile 将文件上传到 WebDAV 服务器
func (w *WebDAV) SendFile(fileKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	return w.SendContent(fileKey, content, modTime)
}

// SendContent 将二进制内容上传到 WebDAV 服务器
func (w *WebDAV) SendContent(fileKey string, content []byte, modTime time.Time) (string, error) {
	fileKey = fileurl.PathSuffixCheckAdd(w.Config.CustomPath, "/") + fileKey

	if err := w.Client.MkdirAll(path.Dir(fileKey), 0o644); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	if err := w.Client.Write(fileKey, content, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	return fileKey, nil
}

func (w *WebDAV) Delete(fileKey string) error {
	fileKey = fileurl.PathSuffixCheckAdd(w.Config.CustomPath, "/") + fileKey
	return w.Client.Remove(fileKey)
}

package server

import (
	"bytes"
	"io"
	"io/fs"
	"log"
	"path"
	"time"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

var mediaTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
}

// MinifyFS copies the frontend tree into memory, minifying HTML/CSS/JS on
// the way. Other file types pass through unchanged. A file that fails to
// minify is served as-is.
func MinifyFS(src fs.FS) fs.FS {
	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("application/javascript", js.Minify)

	out := memFS{}
	err := fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(src, p)
		if err != nil {
			return err
		}
		if mediaType, ok := mediaTypes[path.Ext(p)]; ok {
			if min, err := m.Bytes(mediaType, data); err == nil {
				data = min
			} else {
				log.Printf("Minify %s failed: %v", p, err)
			}
		}
		out[p] = data
		return nil
	})
	if err != nil {
		log.Printf("Minifying frontend failed: %v", err)
		return src
	}
	return out
}

// memFS is a flat in-memory fs.FS over the minified assets.
type memFS map[string][]byte

func (m memFS) Open(name string) (fs.File, error) {
	if data, ok := m[name]; ok {
		return &memFile{name: path.Base(name), data: bytes.NewReader(data), size: int64(len(data))}, nil
	}
	// Synthesize directories so http.FileServer can walk the tree.
	if name == "." {
		return &memDir{fsys: m, name: "."}, nil
	}
	prefix := name + "/"
	for p := range m {
		if len(p) > len(prefix) && p[:len(prefix)] == prefix {
			return &memDir{fsys: m, name: name}, nil
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

type memFile struct {
	name string
	data *bytes.Reader
	size int64
}

func (f *memFile) Stat() (fs.FileInfo, error) { return fileInfo{name: f.name, size: f.size}, nil }
func (f *memFile) Read(p []byte) (int, error) { return f.data.Read(p) }
func (f *memFile) Close() error               { return nil }

func (f *memFile) Seek(offset int64, whence int) (int64, error) {
	return f.data.Seek(offset, whence)
}

type memDir struct {
	fsys memFS
	name string
}

func (d *memDir) Stat() (fs.FileInfo, error) { return fileInfo{name: path.Base(d.name), dir: true}, nil }
func (d *memDir) Read([]byte) (int, error)   { return 0, io.EOF }
func (d *memDir) Close() error               { return nil }

type fileInfo struct {
	name string
	size int64
	dir  bool
}

func (i fileInfo) Name() string { return i.name }
func (i fileInfo) Size() int64  { return i.size }

func (i fileInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0o555
	}
	return 0o444
}

func (i fileInfo) ModTime() time.Time { return time.Time{} }
func (i fileInfo) IsDir() bool        { return i.dir }
func (i fileInfo) Sys() any           { return nil }

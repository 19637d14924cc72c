// Package pack writes a report site into a tar archive that can be unpacked into any static web
// server's document root.
package pack

import (
	"archive/tar"
	"fmt"
	"io"
	"mime"
	"os"
	"regexp"
	"strings"
	"time"

	"flo.znkr.io/tabdiff/report"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/json"
	"github.com/tdewolff/minify/v2/xml"
)

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("application/json", json.Minify)
	m.AddFuncRegexp(regexp.MustCompile("[/+]xml$"), xml.Minify)
	return m
}

// Pack writes the site to a tar file at filename.
func Pack(filename string, s *report.Site) error {
	file, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("opening file: %v", err)
	}
	if err := Write(file, s, time.Now()); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Write writes the site as tar archive to w. All entries carry the modification time mtime.
func Write(w io.Writer, s *report.Site, mtime time.Time) error {
	minifier := newMinifier()
	tw := tar.NewWriter(w)

	for _, d := range s.AllDocs() {
		b := d.Data

		mt, _, err := mime.ParseMediaType(d.MimeType)
		if err != nil {
			return fmt.Errorf("invalid mime type: %v", err)
		}

		switch mt {
		case "text/html", "text/css", "application/json", "application/atom+xml":
			b, err = minifier.Bytes(mt, b)
			if err != nil {
				return fmt.Errorf("minification failed for %s: %v", d.Path, err)
			}
		}

		path := d.Path
		if path == "/" {
			path = "index.html"
		}
		path = strings.TrimPrefix(path, "/")

		hdr := &tar.Header{
			Name:    "./" + path,
			Mode:    int64(0644),
			Size:    int64(len(b)),
			ModTime: mtime,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("writing header: %v", err)
		}
		if _, err := tw.Write(b); err != nil {
			return fmt.Errorf("writing body: %v", err)
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("finishing archive: %v", err)
	}
	return nil
}

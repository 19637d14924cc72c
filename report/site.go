package report

import (
	"fmt"
	"slices"
	"strings"
)

// Doc is a single rendered file of a report.
type Doc struct {
	Path     string // absolute URL path, "/" for the HTML page
	MimeType string
	Data     []byte
}

// Site is the set of files a report is published as: the HTML page, the Markdown source and the
// JSON encoded difference.
type Site struct {
	Report *Report
	docs   []*Doc
}

// SiteOption configures a Site.
type SiteOption func(*siteOptions)

type siteOptions struct {
	history *History
	base    string
}

// WithHistory adds an Atom feed of h at /feed.atom. base is the URL the site is served at.
func WithHistory(h *History, base string) SiteOption {
	return func(o *siteOptions) {
		o.history = h
		o.base = base
	}
}

// NewSite renders all files of r.
func NewSite(r *Report, opts ...SiteOption) (*Site, error) {
	var o siteOptions
	for _, opt := range opts {
		opt(&o)
	}

	page, err := HTML(r)
	if err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	data, err := JSON(r)
	if err != nil {
		return nil, err
	}
	s := &Site{
		Report: r,
		docs: []*Doc{
			{Path: "/", MimeType: "text/html; charset=utf-8", Data: page},
			{Path: "/report.md", MimeType: "text/markdown; charset=utf-8", Data: Markdown(r)},
			{Path: "/difference.json", MimeType: "application/json", Data: data},
		},
	}
	if o.history != nil {
		feed, err := o.history.Feed(o.base)
		if err != nil {
			return nil, err
		}
		s.docs = append(s.docs, &Doc{Path: "/feed.atom", MimeType: "application/atom+xml", Data: feed})
	}
	return s, nil
}

// Doc returns the document at path or nil if there is none. "/index.html" is an alias for "/".
func (s *Site) Doc(path string) *Doc {
	if path == "/index.html" || path == "" {
		path = "/"
	}
	path = "/" + strings.TrimPrefix(path, "/")
	i := slices.IndexFunc(s.docs, func(d *Doc) bool { return d.Path == path })
	if i < 0 {
		return nil
	}
	return s.docs[i]
}

// AllDocs returns all documents.
func (s *Site) AllDocs() []*Doc { return slices.Clone(s.docs) }

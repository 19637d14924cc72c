// Package layout loads tab layouts: a title, the items of a tab bar and the initially selected
// item. Layouts are stored as YAML, TOML, JSON or in a small line based text format.
package layout

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"flo.znkr.io/tabdiff/tabbar"
	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a layout file.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
	JSON Format = "json"
	Text Format = "text"
)

// FormatFromFilename determines the format of a layout file from its extension. Unknown
// extensions are read as text.
func FormatFromFilename(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	case ".toml":
		return TOML
	case ".json":
		return JSON
	default:
		return Text
	}
}

// Layout is a parsed and validated layout.
type Layout struct {
	Title    string
	Selected string // ID of the selected item, may be empty
	Items    []tabbar.Item

	Path   string // empty if not loaded from a file
	Format Format
	Source []byte
}

// SelectedIndex returns the index of the selected item, or 0 if the layout doesn't name one.
func (l *Layout) SelectedIndex() int {
	for i, item := range l.Items {
		if item.ID == l.Selected {
			return i
		}
	}
	return 0
}

// Limits enforced on every layout.
const (
	MaxTitleLen = 64
	MaxItems    = 32
)

// Load reads and parses the layout file at path.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := Parse(data, FormatFromFilename(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.Path = path
	return l, nil
}

// file is the common shape of the structured formats.
type file struct {
	Title    string     `yaml:"title" toml:"title" json:"title" validate:"required,max=64"`
	Selected string     `yaml:"selected" toml:"selected" json:"selected"`
	Items    []fileItem `yaml:"items" toml:"items" json:"items" validate:"max=32,unique=ID,dive"`
}

type fileItem struct {
	ID        string `yaml:"id" toml:"id" json:"id" validate:"required"`
	Title     string `yaml:"title" toml:"title" json:"title" validate:"required,max=64"`
	Icon      string `yaml:"icon" toml:"icon" json:"icon"`
	Disabled  bool   `yaml:"disabled" toml:"disabled" json:"disabled"`
	Indicator bool   `yaml:"indicator" toml:"indicator" json:"indicator"`
}

// Parse parses data in the given format and validates the result.
func Parse(data []byte, format Format) (*Layout, error) {
	var f file
	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
	case TOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, fmt.Errorf("parsing toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parsing toml: unknown key %q", undecoded[0].String())
		}
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("parsing json: %w", err)
		}
	case Text:
		var err error
		f, err = parseText(data)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown layout format %q", format)
	}

	for i := range f.Items {
		if f.Items[i].ID == "" {
			f.Items[i].ID = ItemID(f.Items[i].Title)
		}
	}
	if err := validate(&f); err != nil {
		return nil, err
	}

	l := &Layout{
		Title:    f.Title,
		Selected: f.Selected,
		Items:    make([]tabbar.Item, 0, len(f.Items)),
		Format:   format,
		Source:   data,
	}
	for _, it := range f.Items {
		l.Items = append(l.Items, tabbar.Item{
			ID:        it.ID,
			Title:     it.Title,
			Icon:      it.Icon,
			Enabled:   !it.Disabled,
			Indicator: it.Indicator,
		})
	}
	return l, nil
}

var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://flo.znkr.io/tabdiff"))

// ItemID returns the ID given to items that don't declare one: a name based UUID of the title.
func ItemID(title string) string {
	return uuid.NewSHA1(namespace, []byte(title)).String()
}

var validate = func() func(*file) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	return func(f *file) error {
		var errs []error
		if err := v.Struct(f); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return err
			}
			for _, fe := range verrs {
				errs = append(errs, fieldError(fe))
			}
		}
		if f.Selected != "" && !hasItem(f.Items, f.Selected) {
			errs = append(errs, fmt.Errorf("selected: no item with id %q", f.Selected))
		}
		return errors.Join(errs...)
	}
}()

func fieldError(fe validator.FieldError) error {
	field := strings.TrimPrefix(fe.Namespace(), "file.")
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s: missing", field)
	case "max":
		return fmt.Errorf("%s: longer than %s", field, fe.Param())
	case "unique":
		return fmt.Errorf("%s: duplicate %s", field, fe.Param())
	default:
		return fmt.Errorf("%s: failed %q", field, fe.Tag())
	}
}

func hasItem(items []fileItem, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

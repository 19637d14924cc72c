package layout

import (
	"fmt"
	"slices"
	"strings"
)

// parseText parses the text format. It starts with a header
//
//	# <title>
//	:<key>: <value>
//
// followed by one item per line
//
//	[<id> =] <title> [*] [!]
//
// where * marks a notification indicator and ! a disabled item. A leading icon is separated from
// the title by a | (e.g. "♪ | Music"). Blank lines and lines starting with // are ignored.
func parseText(in []byte) (file, error) {
	f := file{}

	if len(in) > 2 && in[0] == '#' && in[1] == ' ' {
		eol := slices.Index(in, '\n')
		if eol < 0 {
			eol = len(in)
		}
		f.Title = strings.TrimSpace(string(in[1:eol]))
		in = in[min(eol+1, len(in)):]
	}

	// Header lines follow a simple format:
	//   :<key>: <value>
	// A value ending in \ continues on the next line.
	header := make(map[string]string)
	for len(in) > 0 && in[0] == ':' {
		pos := 1
		end := pos + slices.Index(in[pos:], ':')
		if end < pos {
			break
		}

		key := string(in[pos:end])

		var val strings.Builder
		for {
			pos = end + 1
			if pos >= len(in) {
				break
			}
			if eol := slices.Index(in[pos:], '\n'); eol < 0 {
				end = len(in)
			} else {
				end = pos + eol
			}
			if end > pos && in[end-1] == '\\' {
				val.Write(in[pos : end-1])
				val.WriteByte('\n')
			} else {
				val.Write(in[pos:end])
				break
			}
		}
		if end < len(in) {
			in = in[end+1:]
		} else {
			in = nil
		}

		header[key] = strings.TrimSpace(val.String())
	}

	for key, val := range header {
		switch key {
		case "selected":
			f.Selected = val
		default:
			return file{}, fmt.Errorf("unknown header key %q", key)
		}
	}

	for n, line := range strings.Split(string(in), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		item, err := parseItem(line)
		if err != nil {
			return file{}, fmt.Errorf("item %d: %w", n+1, err)
		}
		f.Items = append(f.Items, item)
	}
	return f, nil
}

func parseItem(line string) (fileItem, error) {
	item := fileItem{}

	// Flags are trailing words.
	for {
		rest, flag, ok := cutLastField(line)
		if !ok {
			break
		}
		switch flag {
		case "*":
			item.Indicator = true
		case "!":
			item.Disabled = true
		default:
			ok = false
		}
		if !ok {
			break
		}
		line = rest
	}

	if id, title, ok := strings.Cut(line, "="); ok {
		item.ID = strings.TrimSpace(id)
		if item.ID == "" {
			return fileItem{}, fmt.Errorf("empty id in %q", line)
		}
		line = title
	}
	if icon, title, ok := strings.Cut(line, "|"); ok {
		item.Icon = strings.TrimSpace(icon)
		line = title
	}
	item.Title = strings.TrimSpace(line)
	return item, nil
}

func cutLastField(s string) (rest, last string, ok bool) {
	i := strings.LastIndexByte(s, ' ')
	if i < 0 {
		return s, "", false
	}
	return strings.TrimSpace(s[:i]), s[i+1:], true
}

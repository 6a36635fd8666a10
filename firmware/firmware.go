/*
Package firmware assembles a display controller firmware image from a
template and the encoded logo records.

The template is an Intel HEX file supplied by the firmware vendor with the
logo records cut out and replaced by a single Placeholder. Apart from that
token its contents are passed through untouched.
*/
package firmware

import (
	"errors"
	"io"
	"io/ioutil"
	"path/filepath"
	"strings"
)

// Placeholder marks where the logo records are substituted.
const Placeholder = "{logo}"

const (
	namePrefix    = "True_D_V2.0_with_"
	nameSuffix    = ".ino.hex"
	previewSuffix = ".png"
)

var (
	// ErrPlaceholderMissing is returned when a template has no
	// Placeholder.
	ErrPlaceholderMissing = errors.New("firmware: template placeholder missing")

	// ErrPlaceholderDuplicated is returned when a template has more than
	// one Placeholder.
	ErrPlaceholderDuplicated = errors.New("firmware: template placeholder duplicated")
)

// Template is a validated firmware template.
type Template struct {
	before, after string
}

// ParseTemplate checks text holds exactly one Placeholder.
func ParseTemplate(text string) (*Template, error) {
	switch strings.Count(text, Placeholder) {
	case 0:
		return nil, ErrPlaceholderMissing
	case 1:
	default:
		return nil, ErrPlaceholderDuplicated
	}

	i := strings.Index(text, Placeholder)
	return &Template{
		before: text[:i],
		after:  text[i+len(Placeholder):],
	}, nil
}

// LoadTemplate reads and parses the template in file.
func LoadTemplate(file string) (*Template, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return ParseTemplate(string(b))
}

// Execute writes the template to w with the Placeholder replaced by lines
// joined with newlines.
func (t *Template) Execute(w io.Writer, lines []string) error {
	for _, s := range []string{t.before, strings.Join(lines, "\n"), t.after} {
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	}
	return nil
}

// String returns the template with the Placeholder in place.
func (t *Template) String() string {
	return t.before + Placeholder + t.after
}

// Assemble returns tmpl with its Placeholder replaced by lines joined with
// newlines.
func Assemble(tmpl string, lines []string) (string, error) {
	t, err := ParseTemplate(tmpl)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := t.Execute(&sb, lines); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Name returns the firmware filename for a logo filename.
func Name(logo string) string {
	base := filepath.Base(logo)
	return namePrefix + strings.TrimSuffix(base, filepath.Ext(base)) + nameSuffix
}

// PreviewName returns the preview image filename for a firmware filename.
func PreviewName(firmware string) string {
	return firmware + previewSuffix
}

// IsPreview reports whether name is a preview image filename.
func IsPreview(name string) bool {
	return strings.HasPrefix(name, namePrefix) && strings.HasSuffix(name, nameSuffix+previewSuffix)
}

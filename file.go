package logohex

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/logohex/bitmap"
	"github.com/bodgit/logohex/firmware"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

var extensions = map[string]struct{}{
	".gif":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
}

func isLogo(file string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(file))]
	return ok && !firmware.IsPreview(filepath.Base(file))
}

// Output is the result of converting a logo file.
type Output struct {
	*Result
	SHA1         string
	FirmwareFile string
	PreviewFile  string
}

func (c *Converter) packFile(file string) (string, int64, *bitmap.Buffer, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return "", 0, nil, errors.WithStack(err)
	}
	sha := fmt.Sprintf("%X", sha1.Sum(b))

	if c.history != nil {
		id, packed, err := c.history.FindLogo(sha, c.mode, c.rule)
		if err != nil {
			return "", 0, nil, err
		}
		if packed != nil {
			c.logger.Printf("Reusing packed logo for \"%s\", with SHA1 \"%s\"\n", file, sha)
			return sha, id, packed, nil
		}
	}

	m, err := imaging.Decode(bytes.NewReader(b))
	if err != nil {
		return "", 0, nil, errors.Wrapf(err, "decoding %s", file)
	}

	packed, err := c.pack(m)
	if err != nil {
		return "", 0, nil, errors.Wrapf(err, "packing %s", file)
	}

	var id int64
	if c.history != nil {
		if id, err = c.history.AddLogo(sha, c.mode, c.rule, packed); err != nil {
			return "", 0, nil, err
		}
	}

	return sha, id, packed, nil
}

// ConvertFile converts the logo image in file and writes the firmware and
// its preview into dir, named after the logo.
func (c *Converter) ConvertFile(file string, tmpl *firmware.Template, dir string) (*Output, error) {
	sha, id, packed, err := c.packFile(file)
	if err != nil {
		return nil, err
	}

	r, err := c.encode(packed, tmpl)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding %s", file)
	}

	name := firmware.Name(file)
	o := &Output{
		Result:       r,
		SHA1:         sha,
		FirmwareFile: filepath.Join(dir, name),
		PreviewFile:  filepath.Join(dir, firmware.PreviewName(name)),
	}

	if err := imaging.Save(r.Preview, o.PreviewFile); err != nil {
		return nil, errors.Wrapf(err, "saving preview %s", o.PreviewFile)
	}

	if err := ioutil.WriteFile(o.FirmwareFile, []byte(r.Firmware), 0644); err != nil {
		_ = os.Remove(o.PreviewFile)
		return nil, errors.WithStack(err)
	}

	if c.history != nil {
		if err := c.history.AddFirmware(id, name, c.base); err != nil {
			return nil, err
		}
	}

	c.logger.Printf("Generated firmware \"%s\" from \"%s\"\n", o.FirmwareFile, file)
	c.logger.Printf("  Preview: \"%s\"\n", o.PreviewFile)

	return o, nil
}

/*
Package logohex is a library for patching a custom boot logo into the
firmware of a display controller.

A 128 by 64 logo is packed into the controller's 1024 byte page format,
encoded as Intel HEX data records, substituted into a firmware template and
checked by rendering a preview from the same packed data.
*/
package logohex

import (
	"image"
	"io/ioutil"
	"log"
	"strings"

	"github.com/bodgit/logohex/bitmap"
	"github.com/bodgit/logohex/firmware"
	"github.com/bodgit/logohex/ihex"
	"github.com/bodgit/logohex/mono"
	"github.com/pkg/errors"
)

// ErrNoTemplate is returned when converting without a firmware template.
var ErrNoTemplate = errors.New("logohex: no firmware template")

// DefaultBase is the address of the logo in the stock firmware.
const DefaultBase uint16 = 0x7140

// Converter turns logo images into firmware.
type Converter struct {
	base    uint16
	on      bitmap.Binarizer
	rule    string
	mode    mono.Mode
	verify  bool
	history *HistoryDB
	logger  *log.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithBase sets the address the first logo record is loaded at.
func WithBase(base uint16) Option {
	return func(c *Converter) {
		c.base = base
	}
}

// DefaultRule names the bitmap.NotWhite binarizer.
const DefaultRule = "notwhite"

// WithBinarizer sets the rule deciding which pixels are lit. The name
// identifies the rule in the history so logos packed under one rule are
// never reused under another.
func WithBinarizer(name string, on bitmap.Binarizer) Option {
	return func(c *Converter) {
		c.rule = name
		c.on = on
	}
}

// WithMode sets how images are reduced to black and white before packing.
func WithMode(mode mono.Mode) Option {
	return func(c *Converter) {
		c.mode = mode
	}
}

// WithVerify enables decoding the records again with an independent Intel
// HEX parser before the firmware is assembled.
func WithVerify(verify bool) Option {
	return func(c *Converter) {
		c.verify = verify
	}
}

// WithHistory records every conversion in db and reuses previously packed
// logos.
func WithHistory(db *HistoryDB) Option {
	return func(c *Converter) {
		c.history = db
	}
}

// WithLogger sets the logger, by default nothing is logged.
func WithLogger(logger *log.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// New returns a Converter configured with options.
func New(options ...Option) *Converter {
	c := &Converter{
		base:   DefaultBase,
		on:     bitmap.NotWhite,
		rule:   DefaultRule,
		mode:   mono.None,
		logger: log.New(ioutil.Discard, "", 0),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Result is the outcome of converting a single logo.
type Result struct {
	Buffer   *bitmap.Buffer
	Records  []string
	Firmware string
	Preview  *image.Gray
}

func (c *Converter) pack(m image.Image) (*bitmap.Buffer, error) {
	if err := bitmap.Validate(m); err != nil {
		return nil, err
	}

	prepared, err := mono.Prepare(m, c.mode)
	if err != nil {
		return nil, err
	}

	return bitmap.Pack(prepared, c.on)
}

func (c *Converter) encode(b *bitmap.Buffer, tmpl *firmware.Template) (*Result, error) {
	if tmpl == nil {
		return nil, ErrNoTemplate
	}

	records, err := ihex.Encode(b, c.base)
	if err != nil {
		return nil, err
	}

	if c.verify {
		if err := ihex.Verify(records, c.base, b[:]); err != nil {
			return nil, err
		}
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, records); err != nil {
		return nil, err
	}

	return &Result{
		Buffer:   b,
		Records:  records,
		Firmware: sb.String(),
		Preview:  bitmap.Reconstruct(b),
	}, nil
}

// Convert packs m, which must be 128 by 64 pixels, and returns the firmware
// built from tmpl along with the preview.
func (c *Converter) Convert(m image.Image, tmpl *firmware.Template) (*Result, error) {
	b, err := c.pack(m)
	if err != nil {
		return nil, errors.Wrap(err, "packing logo")
	}

	r, err := c.encode(b, tmpl)
	if err != nil {
		return nil, errors.Wrap(err, "encoding logo")
	}

	return r, nil
}

// Copyright 2020 Aleksandr Demakin. All rights reserved.

package posit

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	// JSONMode defines the way all posits are marshaled into json, see JSONMode* constants.
	// This variable is not thread-safe, so this should be changed on program start.
	JSONMode = JSONModeHex
)

const (
	// JSONModeHex marshals posits as self-describing strings, like `"16.1x4000p"`.
	// Only this mode can be unmarshaled into a Posit without a format.
	JSONModeHex = iota
	// JSONModeFloat marshals posits as floats, like `1.5`. NaR is marshaled as `null`.
	JSONModeFloat
	// JSONModeString marshals posits as strings, like `"1.5"`. NaR is marshaled as `"NaR"`.
	JSONModeString
)

const (
	narString = "NaR"
	nilString = "<nil>"
	// maxDecimalScale is the largest binary scale printed in decimal, larger scales use the 0x.hhhp±d form.
	maxDecimalScale = 1 << 16
)

// GoString returns p as `<nbits>.<es>x<hex>p`, like `16.1x4000p`.
func (p Posit) GoString() string {
	var builder strings.Builder
	p.writeHex(&builder, false)
	return builder.String()
}

// String returns the shortest decimal representation of p, or "NaR".
func (p Posit) String() string {
	var builder strings.Builder
	formatPosit(p, 'v', -1, &builder)
	return builder.String()
}

// Format implements fmt.Formatter.
// Supported verbs are
//
//	%v, %s      shortest decimal representation
//	%#v         same as GoString
//	%e, %f, %g  float formatting with an optional precision
//	%x, %X      `<nbits>.<es>x<hex>p` form
//	%b          sign, regime, exponent and fraction fields, like `0 10 1 0110`
func (p Posit) Format(fs fmt.State, c rune) {
	if c == 'v' && fs.Flag('#') {
		p.writeHex(fs, false)
		return
	}
	prec, ok := fs.Precision()
	if !ok {
		prec = -1
	}
	formatPosit(p, c, prec, fs)
}

func formatPosit(p Posit, verb rune, prec int, w io.Writer) {
	if p.cfg == nil {
		io.WriteString(w, nilString)
		return
	}
	switch verb {
	case 'x', 'X':
		p.writeHex(w, verb == 'X')
		return
	case 'b':
		io.WriteString(w, p.Decode().String())
		return
	}
	if p.IsNaR() {
		io.WriteString(w, narString)
		return
	}
	fmtVerb, bigPrec := byte('g'), 20
	switch verb {
	case 'e', 'E', 'f', 'F', 'g', 'G':
		fmtVerb, bigPrec = byte(verb), prec
	default:
		prec = -1
	}
	if f := p.Float64(); !isFloatOverflow(p, f) {
		io.WriteString(w, strconv.FormatFloat(f, fmtVerb, prec, 64))
		return
	}
	bf, _ := p.BigFloat()
	if scale := p.Decode().Scale(); scale > maxDecimalScale || scale < -maxDecimalScale {
		io.WriteString(w, bf.Text('p', 0))
		return
	}
	io.WriteString(w, bf.Text(fmtVerb, bigPrec))
}

// isFloatOverflow checks if a nonzero posit became 0 or inf in float64.
func isFloatOverflow(p Posit, f float64) bool {
	return !p.IsZero() && (f == 0 || math.IsInf(f, 0))
}

func (p Posit) writeHex(w io.Writer, upper bool) {
	if p.cfg == nil {
		io.WriteString(w, nilString)
		return
	}
	digits := (p.cfg.nbits + 3) / 4
	hex := strconv.FormatUint(p.bits, 16)
	if upper {
		hex = strings.ToUpper(hex)
	}
	fmt.Fprintf(w, "%d.%dx%s%sp", p.cfg.nbits, p.cfg.es, strings.Repeat("0", digits-len(hex)), hex)
}

// Parse parses the `<nbits>.<es>x<hex>p` form into a posit of a new format.
func Parse(s string, opts ...Option) (Posit, error) {
	prepared, offset, neg := prepareString(s)
	if neg {
		return Posit{}, errors.New("parsing failed: unexpected sign")
	}
	nbits, es, bits, err := parseHex(prepared)
	if err != nil {
		return Posit{}, errors.Wrap(addPosErrorOffset(err, offset+1), "parsing failed")
	}
	c, err := NewConfig(nbits, es, opts...)
	if err != nil {
		return Posit{}, err
	}
	return c.fromParsedBits(bits)
}

// Parse parses the `<nbits>.<es>x<hex>p` form. The format must match c.
func (c *Config) Parse(s string) (Posit, error) {
	prepared, offset, neg := prepareString(s)
	if neg {
		return Posit{}, errors.New("parsing failed: unexpected sign")
	}
	nbits, es, bits, err := parseHex(prepared)
	if err != nil {
		return Posit{}, errors.Wrap(addPosErrorOffset(err, offset+1), "parsing failed")
	}
	if nbits != c.nbits || es != c.es {
		return Posit{}, errors.Errorf("parsing failed: posit<%d,%d> does not match posit<%d,%d>", nbits, es, c.nbits, c.es)
	}
	return c.fromParsedBits(bits)
}

func (c *Config) fromParsedBits(bits uint64) (Posit, error) {
	if bits&^c.mask != 0 {
		return Posit{}, errors.Wrapf(ErrRange, "parsing failed: %#x does not fit %d bits", bits, c.nbits)
	}
	return c.FromBits(bits), nil
}

// FromString parses a string into a posit.
// It accepts decimal numbers, like `-1.25e3`, the `<nbits>.<es>x<hex>p` form, and `NaR`.
// Decimal numbers are rounded exactly, without an intermediate float64.
func (c *Config) FromString(s string) (Posit, error) {
	prepared, offset, neg := prepareString(s)
	switch {
	case len(prepared) == 0:
		return Posit{}, errors.New("empty input")
	case strings.EqualFold(prepared, narString):
		return c.NaR(), nil
	case isHexForm(prepared):
		if neg {
			return Posit{}, errors.New("parsing failed: unexpected sign")
		}
		return c.Parse(prepared)
	}
	if pos := strings.IndexFunc(prepared, notDecimalRune); pos >= 0 {
		r, _ := utf8.DecodeRuneInString(prepared[pos:])
		err := newPosError(fmt.Sprintf("unexpected symbol %q", r), pos)
		return Posit{}, errors.Wrap(addPosErrorOffset(err, offset+1), "parsing failed")
	}
	d, err := decimal.NewFromString(prepared)
	if err != nil {
		return Posit{}, errors.Wrap(err, "parsing failed")
	}
	if neg {
		d = d.Neg()
	}
	return c.FromDecimal(d), nil
}

// MustFromString is like FromString, but panics on error.
func (c *Config) MustFromString(s string) Posit {
	p, err := c.FromString(s)
	if err != nil {
		panic(err)
	}
	return p
}

// MarshalJSON marshals a posit according to current JSONMode.
// See JSONMode and JSONMode* constants.
func (p Posit) MarshalJSON() ([]byte, error) {
	if p.cfg == nil {
		return nil, errors.New("marshaling a posit without a format")
	}
	return p.toJSON(JSONMode), nil
}

func (p Posit) toJSON(mode int) []byte {
	switch mode {
	case JSONModeFloat:
		if p.IsNaR() {
			return []byte("null")
		}
		return []byte(p.String())
	case JSONModeString:
		return []byte(`"` + p.String() + `"`)
	default:
		return []byte(`"` + p.GoString() + `"`)
	}
}

// UnmarshalJSON unmarshals a string or a number into a posit.
// If p has no format, only the `"<nbits>.<es>x<hex>p"` form is accepted.
func (p *Posit) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return errors.New("empty json")
	}
	s := string(data)
	if p.cfg == nil {
		parsed, err := Parse(s)
		if err != nil {
			return errors.Wrap(err, "unknown posit format")
		}
		*p = parsed
		return nil
	}
	if s == "null" {
		*p = p.cfg.NaR()
		return nil
	}
	parsed, err := p.cfg.FromString(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// prepareString cleans the string from ",-,+ symbols, and spaces.
func prepareString(s string) (prepared string, offset int, neg bool) {
	if len(s) == 0 {
		return "", 0, false
	}
	if s[0] == '"' {
		s = s[1:]
		offset++
	}
	if len(s) == 0 {
		return "", 0, false
	}
	if s[len(s)-1] == '"' {
		s = s[:len(s)-1]
	}
	if trimmed := strings.TrimLeftFunc(s, unicode.IsSpace); len(trimmed) != len(s) {
		offset += len(s) - len(trimmed)
		s = trimmed
	}
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	if len(s) == 0 {
		return "", 0, false
	}
	if s[0] == '-' {
		neg = true
		offset++
		s = s[1:]
	} else if s[0] == '+' {
		offset++
		s = s[1:]
	}
	return s, offset, neg
}

func isHexForm(s string) bool {
	return len(s) > 0 && s[len(s)-1] == 'p' && strings.IndexByte(s, 'x') > 0
}

func notDecimalRune(r rune) bool {
	return !('0' <= r && r <= '9' || r == '.' || r == 'e' || r == 'E' || r == '-' || r == '+')
}

// parseHex parses `<nbits>.<es>x<hex>p`.
func parseHex(s string) (nbits, es int, bits uint64, err error) {
	dot := strings.IndexByte(s, '.')
	if dot <= 0 {
		return 0, 0, 0, newPosError("expected <nbits>.", 0)
	}
	if nbits, err = strconv.Atoi(s[:dot]); err != nil {
		return 0, 0, 0, newPosError("bad nbits", 0)
	}
	x := strings.IndexByte(s, 'x')
	if x <= dot+1 {
		return 0, 0, 0, newPosError("expected <es>x", dot+1)
	}
	if es, err = strconv.Atoi(s[dot+1 : x]); err != nil {
		return 0, 0, 0, newPosError("bad es", dot+1)
	}
	if s[len(s)-1] != 'p' {
		return 0, 0, 0, newPosError("expected 'p'", len(s)-1)
	}
	hex := s[x+1 : len(s)-1]
	if len(hex) == 0 {
		return 0, 0, 0, newPosError("expected hex digits", x+1)
	}
	if bits, err = strconv.ParseUint(hex, 16, 64); err != nil {
		return 0, 0, 0, newPosError("bad hex digits", x+1)
	}
	return nbits, es, bits, nil
}

var (
	_ fmt.Formatter  = Posit{}
	_ fmt.GoStringer = Posit{}
	_ fmt.Stringer   = Posit{}
)

package rational

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// String returns r as "num/den". Integers keep the denominator: 5 is "5/1".
func (r Rational) String() string {
	return strconv.FormatInt(r.num, 10) + "/" + strconv.FormatInt(r.Den(), 10)
}

// Parse parses a single "N/D" token. Surrounding whitespace is ignored.
func Parse(s string) (Rational, error) {
	ns, ds, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return Rational{}, fmt.Errorf("%w: %q has no '/' separator", ErrSyntax, s)
	}
	num, err := strconv.ParseInt(strings.TrimSpace(ns), 10, 64)
	if err != nil {
		return Rational{}, fmt.Errorf("%w: numerator: %v", ErrSyntax, err)
	}
	den, err := strconv.ParseInt(strings.TrimSpace(ds), 10, 64)
	if err != nil {
		return Rational{}, fmt.Errorf("%w: denominator: %v", ErrSyntax, err)
	}
	return normalize(num, den)
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Rational {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Scan implements fmt.Scanner. It reads an integer, a separator and another
// integer, skipping whitespace before each. r is only assigned when the
// separator is '/' and the denominator is not zero.
func (r *Rational) Scan(state fmt.ScanState, verb rune) error {
	switch verb {
	case 'v', 's', 'd':
	default:
		return fmt.Errorf("%w: bad verb %%%c", ErrSyntax, verb)
	}
	num, err := scanInt(state)
	if err != nil {
		return err
	}
	state.SkipSpace()
	sep, _, err := state.ReadRune()
	if err != nil {
		return err
	}
	if sep != '/' {
		return fmt.Errorf("%w: separator %q", ErrSyntax, sep)
	}
	den, err := scanInt(state)
	if err != nil {
		return err
	}
	v, err := normalize(num, den)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

func scanInt(state fmt.ScanState) (int64, error) {
	state.SkipSpace()
	tok, err := state.Token(false, isIntRune)
	if err != nil {
		return 0, err
	}
	if len(tok) == 0 {
		return 0, fmt.Errorf("%w: expected integer", ErrSyntax)
	}
	v, err := strconv.ParseInt(string(tok), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return v, nil
}

func isIntRune(c rune) bool {
	return c >= '0' && c <= '9' || c == '-' || c == '+'
}

// Reader reads successive rationals from a text stream.
// After the first failed read the Reader is failed: every subsequent Read
// returns the same error without consuming input.
type Reader struct {
	r   runeReader
	err error
}

type runeReader interface {
	io.Reader
	io.RuneScanner
}

// NewReader returns a Reader reading from r. r is buffered unless it already
// implements io.RuneScanner.
func NewReader(r io.Reader) *Reader {
	rs, ok := r.(runeReader)
	if !ok {
		rs = bufio.NewReader(r)
	}
	return &Reader{r: rs}
}

// Read stores the next rational of the stream in dst. dst is left
// untouched on error. io.EOF is returned when the stream is exhausted.
func (rd *Reader) Read(dst *Rational) error {
	if rd.err != nil {
		return rd.err
	}
	// fmt reports a Scanner hitting end of input as io.ErrUnexpectedEOF,
	// so a clean end of stream is detected here.
	if err := skipSpace(rd.r); err != nil {
		rd.err = err
		return err
	}
	var v Rational
	_, err := fmt.Fscan(rd.r, &v)
	if err != nil {
		rd.err = err
		return err
	}
	*dst = v
	return nil
}

func skipSpace(rs io.RuneScanner) error {
	for {
		c, _, err := rs.ReadRune()
		if err != nil {
			return err
		}
		if !unicode.IsSpace(c) {
			return rs.UnreadRune()
		}
	}
}

// Err returns the error that failed the Reader, or nil.
// io.EOF is reported as nil.
func (rd *Reader) Err() error {
	if rd.err == io.EOF {
		return nil
	}
	return rd.err
}

// MarshalText implements encoding.TextMarshaler.
func (r Rational) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rational) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/soypat/rational"
	"github.com/soypat/rational/exif"
	"github.com/urfave/cli/v2"
)

const (
	engineNative  = "native"
	engineGoexif  = "goexif"
	engineDsoprea = "dsoprea"
)

// printer formats results according to the resolved configuration.
type printer struct {
	w         io.Writer
	format    string
	precision int32
	label     func(a ...interface{}) string
	value     func(a ...interface{}) string
}

func newPrinter(c *cli.Context) (*printer, config, error) {
	conf := loadConfig(c.String("config"))
	if f := c.String("format"); f != "" {
		conf.Format = f
	}
	if conf.Format != formatFraction && conf.Format != formatDecimal {
		return nil, conf, fmt.Errorf("unknown format %q", conf.Format)
	}
	if c.Bool("no-color") {
		conf.NoColor = true
	}
	label := color.New(color.FgCyan)
	value := color.New(color.FgGreen, color.Bold)
	if conf.NoColor {
		label.DisableColor()
		value.DisableColor()
	}
	return &printer{
		w:         c.App.Writer,
		format:    conf.Format,
		precision: conf.Precision,
		label:     label.SprintFunc(),
		value:     value.SprintFunc(),
	}, conf, nil
}

func (p *printer) str(r rational.Rational) string {
	if p.format == formatDecimal {
		return r.DecimalPrec(p.precision).String()
	}
	return r.String()
}

func (p *printer) result(expr string, r rational.Rational) {
	fmt.Fprintf(p.w, "%s = %s\n", p.label(expr), p.value(p.str(r)))
}

func demoCmd(c *cli.Context) error {
	p, _, err := newPrinter(c)
	if err != nil {
		return err
	}
	r2, r3, r5 := rational.MustNew(2, 11), rational.MustNew(1, -3), rational.MustNew(18, 6)

	prod, err := r2.Mul(r3)
	if err != nil {
		return err
	}
	res1, err := rational.IntAdd(3, prod)
	if err != nil {
		return err
	}
	p.result(fmt.Sprintf("3 + %v * %v", r2, r3), res1)

	sum, err := rational.IntAdd(3, r2)
	if err != nil {
		return err
	}
	res2, err := sum.Mul(r3)
	if err != nil {
		return err
	}
	p.result(fmt.Sprintf("(3 + %v) * %v", r2, r3), res2)

	shifted, err := rational.AddInt(r2, 2)
	if err != nil {
		return err
	}
	num, err := r3.Mul(shifted)
	if err != nil {
		return err
	}
	den, err := r5.Sub(r3)
	if err != nil {
		return err
	}
	quo, err := num.Div(den)
	if err != nil {
		return err
	}
	res3, err := rational.IntAdd(3, quo)
	if err != nil {
		return err
	}
	p.result(fmt.Sprintf("3 + %v * (%v + 2)/(%v - %v)", r3, r2, r5, r3), res3)
	return nil
}

// operand is a command line value. Plain integers keep their integer form so
// that they go through the mixed integer operations.
type operand struct {
	r     rational.Rational
	i     int64
	isInt bool
}

func parseOperand(s string) (operand, error) {
	if !strings.Contains(s, "/") {
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return operand{}, fmt.Errorf("%w: %q", rational.ErrSyntax, s)
		}
		r, err := rational.Promote(i)
		return operand{r: r, i: i, isInt: true}, err
	}
	r, err := rational.Parse(s)
	return operand{r: r}, err
}

type operation struct {
	rat      func(x, y rational.Rational) (rational.Rational, error)
	intLeft  func(i int64, r rational.Rational) (rational.Rational, error)
	intRight func(r rational.Rational, i int64) (rational.Rational, error)
}

var operations = map[string]operation{
	"+": {rational.Rational.Add, rational.IntAdd[int64], rational.AddInt[int64]},
	"-": {rational.Rational.Sub, rational.IntSub[int64], rational.SubInt[int64]},
	"*": {rational.Rational.Mul, rational.IntMul[int64], rational.MulInt[int64]},
	"x": {rational.Rational.Mul, rational.IntMul[int64], rational.MulInt[int64]},
	"/": {rational.Rational.Div, rational.IntDiv[int64], rational.DivInt[int64]},
}

func eval(a operand, op string, b operand) (rational.Rational, error) {
	o, ok := operations[op]
	if !ok {
		return rational.Rational{}, fmt.Errorf("unknown operator %q", op)
	}
	switch {
	case a.isInt:
		return o.intLeft(a.i, b.r)
	case b.isInt:
		return o.intRight(a.r, b.i)
	}
	return o.rat(a.r, b.r)
}

func evalCmd(c *cli.Context) error {
	if c.NArg() != 3 {
		return errors.New("eval expects A OP B")
	}
	p, _, err := newPrinter(c)
	if err != nil {
		return err
	}
	a, err := parseOperand(c.Args().Get(0))
	if err != nil {
		return err
	}
	b, err := parseOperand(c.Args().Get(2))
	if err != nil {
		return err
	}
	op := c.Args().Get(1)
	res, err := eval(a, op, b)
	if err != nil {
		return err
	}
	p.result(strings.Join(c.Args().Slice(), " "), res)
	return nil
}

func cmpCmd(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("cmp expects A B")
	}
	p, _, err := newPrinter(c)
	if err != nil {
		return err
	}
	a, err := parseOperand(c.Args().Get(0))
	if err != nil {
		return err
	}
	b, err := parseOperand(c.Args().Get(1))
	if err != nil {
		return err
	}
	rel := "=="
	switch a.r.Cmp(b.r) {
	case -1:
		rel = "<"
	case 1:
		rel = ">"
	}
	fmt.Fprintf(p.w, "%s %s %s\n", p.value(p.str(a.r)), p.label(rel), p.value(p.str(b.r)))
	return nil
}

func exifCmd(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("exif expects FILE")
	}
	p, conf, err := newPrinter(c)
	if err != nil {
		return err
	}
	if e := c.String("engine"); e != "" {
		conf.Engine = e
	}
	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return err
	}
	var ifds []exif.IFD
	switch conf.Engine {
	case engineNative:
		r := bytes.NewReader(data)
		var d exif.Decoder
		if err = d.Decode(r); err != nil {
			return err
		}
		ifds, err = d.Tags(r, func(ifd, size int, id exif.ID) bool { return true })
	case engineGoexif:
		ifds, err = exif.FromTIFF(bytes.NewReader(data))
	case engineDsoprea:
		var tags []exif.Tag
		tags, err = exif.FromDsoprea(data)
		ifds = []exif.IFD{{Tags: tags}}
	default:
		return fmt.Errorf("unknown engine %q", conf.Engine)
	}
	// Print what was decoded before reporting a failure.
	for _, ifd := range ifds {
		for _, tag := range ifd.Tags {
			vals := make([]string, len(tag.Values))
			for i, v := range tag.Values {
				vals[i] = p.str(v)
			}
			name := tag.ID.String()
			if ifd.Group != exif.GroupNone {
				name = ifd.Group.String() + "." + name
			}
			fmt.Fprintf(p.w, "%s (%s): %s\n", p.label(name), tag.Type, p.value(strings.Join(vals, " ")))
		}
	}
	return err
}

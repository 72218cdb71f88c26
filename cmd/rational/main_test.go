package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/rational"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, conf string, args ...string) (string, error) {
	t.Helper()
	confPath := filepath.Join(t.TempDir(), "rational.toml")
	if conf != "" {
		require.NoError(t, os.WriteFile(confPath, []byte(conf), 0o644))
	}
	app := newApp()
	var buf bytes.Buffer
	app.Writer = &buf
	app.ErrWriter = &buf
	err := app.Run(append([]string{"rational", "--no-color", "--config", confPath}, args...))
	return buf.String(), err
}

func TestLoadConfig(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	c := loadConfig(filepath.Join(dir, "missing.toml"))
	assert.Equal(config{Format: formatFraction, Precision: defaultPrecision, Engine: engineNative}, c)

	path := filepath.Join(dir, "rational.toml")
	assert.NoError(os.WriteFile(path, []byte("format = \"decimal\"\nprecision = 4\nno_color = true\n"), 0o644))
	c = loadConfig(path)
	assert.Equal(config{Format: formatDecimal, Precision: 4, Engine: engineNative, NoColor: true}, c)

	assert.NoError(os.WriteFile(path, []byte("format = [unterminated"), 0o644))
	c = loadConfig(path)
	assert.Equal(formatFraction, c.Format)
}

func TestDemo(t *testing.T) {
	out, err := run(t, "", "demo")
	require.NoError(t, err)
	require.Equal(t, "3 + 2/11 * -1/3 = 97/33\n"+
		"(3 + 2/11) * -1/3 = -35/33\n"+
		"3 + -1/3 * (2/11 + 2)/(3/1 - -1/3) = 153/55\n", out)
}

func TestEval(t *testing.T) {
	testCases := []struct {
		desc     string
		conf     string
		args     []string
		expected string
		err      error
	}{
		{desc: "rational sum", args: []string{"1/2", "+", "1/3"}, expected: "1/2 + 1/3 = 5/6\n"},
		{desc: "integer left", args: []string{"3", "-", "1/4"}, expected: "3 - 1/4 = 11/4\n"},
		{desc: "integer right", args: []string{"2/11", "x", "-3"}, expected: "2/11 x -3 = -6/11\n"},
		{desc: "negative right operand", args: []string{"1", "/", "-1/3"}, expected: "1 / -1/3 = -3/1\n"},
		{desc: "decimal flag", args: []string{"--format", "decimal", "1", "/", "4"}, expected: "1 / 4 = 0.25\n"},
		{desc: "decimal config", conf: "format = \"decimal\"\nprecision = 4\n", args: []string{"2", "/", "3"}, expected: "2 / 3 = 0.6667\n"},
		{desc: "division by zero", args: []string{"1/2", "/", "0"}, err: rational.ErrDivisionByZero},
		{desc: "zero denominator", args: []string{"1/0", "+", "1"}, err: rational.ErrDivideByZero},
		{desc: "bad operand", args: []string{"1#2", "+", "1"}, err: rational.ErrSyntax},
		{desc: "overflow", args: []string{"9223372036854775807", "+", "1"}, err: rational.ErrOverflow},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			var args []string
			if tC.args[0] == "--format" {
				args = append(args, tC.args[:2]...)
				tC.args = tC.args[2:]
			}
			args = append(args, "eval")
			out, err := run(t, tC.conf, append(args, tC.args...)...)
			if tC.err != nil {
				require.ErrorIs(t, err, tC.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tC.expected, out)
		})
	}

	_, err := run(t, "", "eval", "1", "%", "2")
	assert.Error(t, err)
	_, err = run(t, "", "eval", "1", "+")
	assert.Error(t, err)
	_, err = run(t, "", "--format", "hex", "eval", "1", "+", "2")
	assert.Error(t, err)
}

func TestCmp(t *testing.T) {
	assert := assert.New(t)
	out, err := run(t, "", "cmp", "1/3", "2/7")
	assert.NoError(err)
	assert.Equal("1/3 > 2/7\n", out)

	// Operands after the first positional argument may be negative.
	out, err = run(t, "", "cmp", "4/8", "-1/-2")
	assert.NoError(err)
	assert.Equal("1/2 == 1/2\n", out)

	out, err = run(t, "", "cmp", "9223372036854775806/9223372036854775807", "1")
	assert.NoError(err)
	assert.Equal("9223372036854775806/9223372036854775807 < 1/1\n", out)
}

func TestExif(t *testing.T) {
	// Little endian TIFF with a single XResolution tag of 72/1.
	tiff, err := hex.DecodeString("49492a0008000000" + "0100" +
		"1a01050001000000" + "1a000000" + "00000000" + "4800000001000000")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "image.tiff")
	require.NoError(t, os.WriteFile(path, tiff, 0o644))

	for _, engine := range []string{engineNative, engineGoexif} {
		out, err := run(t, "", "exif", "--engine", engine, path)
		require.NoError(t, err, engine)
		require.Equal(t, "IFD0.XResolution (rational): 72/1\n", out, engine)
	}

	out, err := run(t, "format = \"decimal\"\nengine = \"goexif\"\n", "exif", path)
	require.NoError(t, err)
	require.Equal(t, "IFD0.XResolution (rational): 72\n", out)

	_, err = run(t, "", "exif", "--engine", "exiftool", path)
	require.Error(t, err)
	_, err = run(t, "", "exif", filepath.Join(t.TempDir(), "missing.tiff"))
	require.Error(t, err)
}

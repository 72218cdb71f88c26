package rational

import (
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDecodeSRational(t *testing.T) {
	testCases := []struct {
		desc     string
		data     []byte
		order    binary.ByteOrder
		expected string
		err      error
	}{
		{
			desc:     "little endian",
			data:     []byte{0xff, 0xff, 0xff, 0xff, 0x03, 0, 0, 0},
			order:    binary.LittleEndian,
			expected: "-1/3",
		},
		{
			desc:     "big endian unreduced",
			data:     []byte{0, 0x1e, 0x84, 0x80, 0, 0, 0x27, 0x10},
			order:    binary.BigEndian,
			expected: "200/1",
		},
		{
			desc:     "negative denominator",
			data:     []byte{0, 0, 0, 4, 0xff, 0xff, 0xff, 0xf8},
			order:    binary.BigEndian,
			expected: "-1/2",
		},
		{
			desc:  "zero denominator",
			data:  []byte{1, 0, 0, 0, 0, 0, 0, 0},
			order: binary.LittleEndian,
			err:   ErrDivideByZero,
		},
		{
			desc:  "short buffer",
			data:  []byte{1, 0, 0, 0},
			order: binary.LittleEndian,
			err:   errShortBuf,
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			v, err := DecodeSRational(tC.order, tC.data)
			if err != tC.err {
				t.Fatalf("got error %v, want %v", err, tC.err)
			}
			if err == nil && v.String() != tC.expected {
				t.Errorf("mismatch between %v and %v", v, tC.expected)
			}
		})
	}
}

func TestDecodeURational(t *testing.T) {
	assert := assert.New(t)

	// 0xffffffff is a numerator, not -1.
	v, err := DecodeURational(binary.LittleEndian, []byte{0xff, 0xff, 0xff, 0xff, 5, 0, 0, 0})
	assert.NoError(err)
	assert.Equal("858993459/1", v.String())

	_, err = DecodeURational(binary.LittleEndian, make([]byte, 8))
	assert.ErrorIs(err, ErrDivideByZero)
}

func TestAppendRational(t *testing.T) {
	assert := assert.New(t)

	b, err := MustNew(1, -3).AppendSRational(binary.LittleEndian, []byte{0xaa})
	assert.NoError(err)
	assert.Equal("aaffffffff03000000", hex.EncodeToString(b))
	v, err := DecodeSRational(binary.LittleEndian, b[1:])
	assert.NoError(err)
	assert.Equal(MustNew(-1, 3), v)

	b, err = MustNew(10, 4).AppendURational(binary.BigEndian, nil)
	assert.NoError(err)
	assert.Equal("0000000500000002", hex.EncodeToString(b))

	_, err = MustNew(-1, 3).AppendURational(binary.BigEndian, nil)
	assert.ErrorIs(err, ErrOverflow)
	_, err = FromInt(1 << 31).AppendSRational(binary.BigEndian, nil)
	assert.ErrorIs(err, ErrOverflow)
	_, err = FromInt(1 << 32).AppendURational(binary.BigEndian, nil)
	assert.ErrorIs(err, ErrOverflow)
}

func TestBinaryMarshaling(t *testing.T) {
	assert := assert.New(t)

	r := MustNew(-35, 33)
	b, err := r.MarshalBinary()
	assert.NoError(err)
	assert.Equal("ffffffffffffffdd0000000000000021", hex.EncodeToString(b))

	var back Rational
	assert.NoError(back.UnmarshalBinary(b))
	assert.Equal(r, back)

	// Foreign encoders may send unreduced pairs.
	raw, _ := hex.DecodeString("00000000000000060000000000000004")
	assert.NoError(back.UnmarshalBinary(raw))
	assert.Equal("3/2", back.String())

	raw, _ = hex.DecodeString("00000000000000060000000000000000")
	assert.ErrorIs(back.UnmarshalBinary(raw), ErrDivideByZero)
	assert.Equal("3/2", back.String())
	assert.ErrorIs(back.UnmarshalBinary(raw[:8]), errShortBuf)
}

func TestMsgpack(t *testing.T) {
	assert := assert.New(t)

	r := MustNew(1, 2)
	p, err := MsgpackMarshal(r)
	assert.Nil(err)
	assert.Equal("d80100000000000000010000000000000002", hex.EncodeToString(p))

	var back Rational
	err = MsgpackUnmarshal(p, &back)
	assert.Nil(err)
	assert.Equal(r, back)

	type ledger struct {
		Name    string
		Balance Rational
		Splits  []Rational
	}
	l := ledger{Name: "rent", Balance: MustNew(-97, 33), Splits: []Rational{MustNew(1, 3), MustNew(2, 3)}}
	p, err = MsgpackMarshal(l)
	assert.Nil(err)
	var lb ledger
	err = MsgpackUnmarshal(p, &lb)
	assert.Nil(err)
	assert.Equal(l, lb)

	var v interface{}
	err = MsgpackUnmarshal(p[:len(p)-1], &v)
	assert.Error(err)
}

func TestDecimal(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("0.25", MustNew(1, 4).Decimal().String())
	assert.Equal("-1.0606060606060606", MustNew(-35, 33).Decimal().String())
	assert.Equal("0.6666666666666667", MustNew(2, 3).Decimal().String())
	assert.Equal("12", FromInt(12).Decimal().String())
	// Terminating expansions longer than DivisionPrecision stay exact.
	assert.Equal("0.0000000000009094947017729282379150390625", MustNew(1, 1<<40).Decimal().String())
	assert.Equal("-0.0000000000000524288", MustNew(-1, 19073486328125).Decimal().String())

	assert.Equal("0.6667", MustNew(2, 3).DecimalPrec(4).String())
	assert.Equal("-0.13", MustNew(-1, 8).DecimalPrec(2).String())
	assert.Equal("0.125", MustNew(1, 8).DecimalPrec(6).String())

	testCases := []struct {
		input    string
		expected string
	}{
		{input: "0.25", expected: "1/4"},
		{input: "-1.25", expected: "-5/4"},
		{input: "1200", expected: "1200/1"},
		{input: "0.00000192", expected: "3/1562500"},
		{input: "0", expected: "0/1"},
	}
	for _, tC := range testCases {
		d, err := decimal.NewFromString(tC.input)
		if !assert.NoError(err) {
			continue
		}
		r, err := FromDecimal(d)
		if assert.NoError(err, tC.input) {
			assert.Equal(tC.expected, r.String(), tC.input)
		}
	}

	_, err := FromDecimal(decimal.New(1, 30))
	assert.ErrorIs(err, ErrOverflow)
	_, err = FromDecimal(decimal.New(1, -30))
	assert.ErrorIs(err, ErrOverflow)
}

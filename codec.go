package rational

import (
	"encoding/binary"
	"math"
)

// DecodeSRational decodes the 8 byte signed rational layout used by TIFF and
// EXIF: an int32 numerator followed by an int32 denominator.
func DecodeSRational(order binary.ByteOrder, b []byte) (Rational, error) {
	if len(b) < 8 {
		return Rational{}, errShortBuf
	}
	numerator := int32(order.Uint32(b))
	denominator := int32(order.Uint32(b[4:]))
	return normalize(int64(numerator), int64(denominator))
}

// DecodeURational decodes the 8 byte unsigned rational layout: a uint32
// numerator followed by a uint32 denominator.
func DecodeURational(order binary.ByteOrder, b []byte) (Rational, error) {
	if len(b) < 8 {
		return Rational{}, errShortBuf
	}
	numerator := order.Uint32(b)
	denominator := order.Uint32(b[4:])
	return normalize(int64(numerator), int64(denominator))
}

// AppendSRational appends r in the signed rational layout to dst.
// It returns ErrOverflow if a field of r does not fit in an int32.
func (r Rational) AppendSRational(order binary.ByteOrder, dst []byte) ([]byte, error) {
	num, den := r.Fraction()
	if num < math.MinInt32 || num > math.MaxInt32 || den > math.MaxInt32 {
		return dst, ErrOverflow
	}
	var buf [8]byte
	order.PutUint32(buf[:], uint32(int32(num)))
	order.PutUint32(buf[4:], uint32(den))
	return append(dst, buf[:]...), nil
}

// AppendURational appends r in the unsigned rational layout to dst.
// It returns ErrOverflow if r is negative or a field does not fit in a uint32.
func (r Rational) AppendURational(order binary.ByteOrder, dst []byte) ([]byte, error) {
	num, den := r.Fraction()
	if num < 0 || num > math.MaxUint32 || den > math.MaxUint32 {
		return dst, ErrOverflow
	}
	var buf [8]byte
	order.PutUint32(buf[:], uint32(num))
	order.PutUint32(buf[4:], uint32(den))
	return append(dst, buf[:]...), nil
}

// MarshalBinary implements encoding.BinaryMarshaler. The encoding is the
// big endian numerator followed by the big endian denominator, 16 bytes.
func (r Rational) MarshalBinary() ([]byte, error) {
	b := make([]byte, 16)
	binary.BigEndian.PutUint64(b, uint64(r.num))
	binary.BigEndian.PutUint64(b[8:], uint64(r.Den()))
	return b, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Non-canonical
// input is reduced.
func (r *Rational) UnmarshalBinary(b []byte) error {
	if len(b) < 16 {
		return errShortBuf
	}
	v, err := normalize(int64(binary.BigEndian.Uint64(b)), int64(binary.BigEndian.Uint64(b[8:])))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

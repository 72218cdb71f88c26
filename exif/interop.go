package exif

import (
	"errors"
	"fmt"
	"io"

	dsoprea "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	"github.com/rwcarlsen/goexif/tiff"
	"github.com/soypat/rational"
)

// FromSignedRational converts a go-exif SRATIONAL value.
func FromSignedRational(v exifcommon.SignedRational) (rational.Rational, error) {
	return rational.New(int64(v.Numerator), int64(v.Denominator))
}

// FromUnsignedRational converts a go-exif RATIONAL value.
func FromUnsignedRational(v exifcommon.Rational) (rational.Rational, error) {
	return rational.New(int64(v.Numerator), int64(v.Denominator))
}

// ToSignedRational converts r to a go-exif SRATIONAL. Fails with
// rational.ErrOverflow if either term does not fit in an int32.
func ToSignedRational(r rational.Rational) (exifcommon.SignedRational, error) {
	n, d := r.Fraction()
	if int64(int32(n)) != n || int64(int32(d)) != d {
		return exifcommon.SignedRational{}, rational.ErrOverflow
	}
	return exifcommon.SignedRational{Numerator: int32(n), Denominator: int32(d)}, nil
}

// ToUnsignedRational converts r to a go-exif RATIONAL. Fails with
// rational.ErrOverflow for negative values or terms wider than 32 bits.
func ToUnsignedRational(r rational.Rational) (exifcommon.Rational, error) {
	n, d := r.Fraction()
	if n < 0 || n > 1<<32-1 || d > 1<<32-1 {
		return exifcommon.Rational{}, rational.ErrOverflow
	}
	return exifcommon.Rational{Numerator: uint32(n), Denominator: uint32(d)}, nil
}

// FromValue converts the result of a go-exif tag value read, which is a
// slice of Rational or SignedRational for rational tags.
func FromValue(v interface{}) ([]rational.Rational, error) {
	var out []rational.Rational
	switch vals := v.(type) {
	case []exifcommon.Rational:
		out = make([]rational.Rational, len(vals))
		for i := range vals {
			r, err := FromUnsignedRational(vals[i])
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
	case []exifcommon.SignedRational:
		out = make([]rational.Rational, len(vals))
		for i := range vals {
			r, err := FromSignedRational(vals[i])
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
	default:
		return nil, fmt.Errorf("exif: %T is not a rational value", v)
	}
	return out, nil
}

// Primitive returns the go-exif tag type equivalent to tp.
func (tp Type) Primitive() exifcommon.TagTypePrimitive {
	return exifcommon.TagTypePrimitive(tp)
}

// FromDsoprea collects the rational tags of raw EXIF or image data
// using the go-exif parser. Tags are returned in visiting order.
func FromDsoprea(data []byte) ([]Tag, error) {
	rawExif, err := dsoprea.SearchAndExtractExif(data)
	if err != nil {
		return nil, err
	}
	mapping, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		return nil, err
	}
	ti := dsoprea.NewTagIndex()
	_, index, err := dsoprea.Collect(mapping, ti, rawExif)
	if err != nil {
		return nil, err
	}
	var tags []Tag
	err = index.RootIfd.EnumerateTagsRecursively(func(_ *dsoprea.Ifd, ite *dsoprea.IfdTagEntry) error {
		tp := Type(ite.TagType())
		if !tp.IsRational() {
			return nil
		}
		v, err := ite.Value()
		if err != nil {
			return err
		}
		vals, err := FromValue(v)
		if err != nil {
			return fmt.Errorf("exif: tag %s: %w", ID(ite.TagId()), err)
		}
		tags = append(tags, Tag{ID: ID(ite.TagId()), Type: tp, Values: vals})
		return nil
	})
	return tags, err
}

// FromTIFFTag converts a rational tag decoded by goexif.
func FromTIFFTag(t *tiff.Tag) (Tag, error) {
	if t == nil {
		return Tag{}, errors.New("exif: nil tiff tag")
	}
	if t.Format() != tiff.RatVal {
		return Tag{}, fmt.Errorf("exif: tag %s is not rational", ID(t.Id))
	}
	tag := Tag{ID: ID(t.Id), Type: Type(t.Type), Values: make([]rational.Rational, t.Count)}
	for i := range tag.Values {
		n, d, err := t.Rat2(i)
		if err != nil {
			return Tag{}, err
		}
		tag.Values[i], err = rational.New(n, d)
		if err != nil {
			return Tag{}, fmt.Errorf("exif: tag %s value %d: %w", tag.ID, i, err)
		}
	}
	return tag, nil
}

// FromTIFF decodes a TIFF stream with goexif and returns its rational tags
// grouped by directory. goexif does not follow the Exif sub-IFD pointer,
// only the top level IFD chain is visited.
func FromTIFF(r io.Reader) ([]IFD, error) {
	tf, err := tiff.Decode(r)
	if err != nil {
		return nil, err
	}
	ifds := make([]IFD, len(tf.Dirs))
	for i, dir := range tf.Dirs {
		ifds[i].Group = GroupIFD1
		if i == 0 {
			ifds[i].Group = GroupIFD0
		}
		for _, t := range dir.Tags {
			if t.Format() != tiff.RatVal {
				continue
			}
			tag, err := FromTIFFTag(t)
			if err != nil {
				return ifds[:i+1], err
			}
			ifds[i].Tags = append(ifds[i].Tags, tag)
		}
	}
	return ifds, nil
}

// Package exif reads rational-valued entries from TIFF and EXIF image file
// directories as exact rational.Rational values.
package exif

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"

	"github.com/soypat/rational"
)

// IFD or Image File Directory
type IFD struct {
	Tags  []Tag
	Group Group
}

// Tag is a rational-valued EXIF field. Most tags hold a single value,
// GPS coordinates and lens specifications hold several.
type Tag struct {
	ID     ID
	Type   Type
	Values []rational.Rational
}

// String returns a human readable representation of the tag and its value.
func (t Tag) String() string {
	var v interface{} = t.Values
	if len(t.Values) == 1 {
		v = t.Values[0]
	}
	return fmt.Sprintf("%s (%s): %v", t.ID.String(), t.Type.String(), v)
}

// Rational returns the first value of the tag.
func (t Tag) Rational() (rational.Rational, error) {
	if len(t.Values) == 0 {
		return rational.Rational{}, errors.New("exif: tag " + t.ID.String() + " has no values")
	}
	return t.Values[0], nil
}

// Type is the TIFF field type code of an entry.
type Type uint16

// Field types the package works with. Other TIFF codes are sized but not named.
const (
	TypeUint16      Type = 3
	TypeUint32      Type = 4
	TypeURational64 Type = 5  // Unsigned rational.
	TypeRational64  Type = 10 // Signed rational.
)

// typeSizes holds the value size in bytes of TIFF field types 1 through 12.
var typeSizes = [...]uint8{1: 1, 2: 1, 3: 2, 4: 4, 5: 8, 6: 1, 7: 1, 8: 2, 9: 4, 10: 8, 11: 4, 12: 8}

// Size returns the size in bytes of the type. Can be 1, 2, 4, or 8 for valid types. 0 otherwise.
func (tp Type) Size() uint8 {
	if int(tp) >= len(typeSizes) {
		return 0
	}
	return typeSizes[tp]
}

// String returns a Go-like representation of the type.
func (tp Type) String() (s string) {
	switch tp {
	case TypeUint16:
		s = "uint16"
	case TypeUint32:
		s = "uint32"
	case TypeRational64:
		s = "srational"
	case TypeURational64:
		s = "rational"
	default:
		if tp.Size() == 0 {
			return "unknown"
		}
		s = "type" + strconv.Itoa(int(tp))
	}
	return s
}

// IsRational returns true if tp is of unsigned or signed rational type.
func (tp Type) IsRational() bool {
	return tp == TypeRational64 || tp == TypeURational64
}

// Group represents the IFD group.
type Group uint8

const (
	GroupNone Group = iota
	// IFD of the main image. Usually contains ExifOffset tag which points to the ExifIFD.
	GroupIFD0
	// IFD of the thumbnail.
	GroupIFD1
	// IFD containing digicam's information such as shutter speed, focal length etc.
	GroupExifIFD
)

// String returns a human readable representation of the IFD group. i.e: IFD0, IFD1, ExifIFD.
func (g Group) String() (s string) {
	switch g {
	case GroupIFD0:
		s = "IFD0"
	case GroupIFD1:
		s = "IFD1"
	case GroupExifIFD:
		s = "ExifIFD"
	default:
		s = "<unknown IFD group>"
	}
	return s
}

// ID identifies an EXIF field.
type ID uint16

// Rational-valued tags of IFD0 and the Exif IFD, plus ExifOffset which links them.
const (
	XResolution       ID = 0x011a
	YResolution       ID = 0x011b
	WhitePoint        ID = 0x013e
	ExposureTime      ID = 0x829a
	FNumber           ID = 0x829d
	ExifOffset        ID = 0x8769
	ShutterSpeedValue ID = 0x9201
	ApertureValue     ID = 0x9202
	BrightnessValue   ID = 0x9203
	ExposureBiasValue ID = 0x9204
	MaxApertureValue  ID = 0x9205
	FocalLength       ID = 0x920a
	DigitalZoomRatio  ID = 0xa404
	LensSpecification ID = 0xa432
)

var idNames = map[ID]string{
	XResolution:       "XResolution",
	YResolution:       "YResolution",
	WhitePoint:        "WhitePoint",
	ExposureTime:      "ExposureTime",
	FNumber:           "FNumber",
	ExifOffset:        "ExifOffset",
	ShutterSpeedValue: "ShutterSpeedValue",
	ApertureValue:     "ApertureValue",
	BrightnessValue:   "BrightnessValue",
	ExposureBiasValue: "ExposureBiasValue",
	MaxApertureValue:  "MaxApertureValue",
	FocalLength:       "FocalLength",
	DigitalZoomRatio:  "DigitalZoomRatio",
	LensSpecification: "LensSpecification",
}

// String returns a camel case human readable representation of the ID.
// Unnamed IDs are printed in hexadecimal.
func (id ID) String() string {
	name, ok := idNames[id]
	if !ok {
		return "0x" + strconv.FormatUint(uint64(id), 16)
	}
	return name
}

// DecodeRationals interprets raw EXIF value bytes of a rational type as a
// sequence of 8 byte rationals in the given byte order.
func DecodeRationals(tp Type, order binary.ByteOrder, data []byte) ([]rational.Rational, error) {
	if !tp.IsRational() {
		return nil, errors.New("exif: " + tp.String() + " is not a rational type")
	}
	sz := int(tp.Size())
	if len(data) == 0 || len(data)%sz != 0 {
		return nil, errors.New("exif: bad byte buffer size for type")
	}
	vals := make([]rational.Rational, len(data)/sz)
	for i := range vals {
		var err error
		chunk := data[i*sz:]
		if tp == TypeRational64 {
			vals[i], err = rational.DecodeSRational(order, chunk)
		} else {
			vals[i], err = rational.DecodeURational(order, chunk)
		}
		if err != nil {
			return nil, fmt.Errorf("exif: value %d: %w", i, err)
		}
	}
	return vals, nil
}

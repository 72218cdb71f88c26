package exif

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Decoder indexes the image file directories of TIFF or JPEG/EXIF data.
// Tag values are only read when requested through Tags or GetTag.
type Decoder struct {
	dirs       []lazydir
	order      binary.ByteOrder
	baseOffset int64
}

// Tags reads the rational-valued tags collected by a previous call to Decode.
// The callback receives the IFD level, size in bytes and ID of each
// rational tag and decides whether it is read (true) or skipped (false).
func (d *Decoder) Tags(r io.ReaderAt, fn func(ifd, size int, id ID) bool) ([]IFD, error) {
	if fn == nil {
		return nil, errors.New("exif: nil callback")
	}
	if r == nil {
		return nil, errors.New("exif: nil reader")
	}
	r = newOffsetReaderAt(r, d.baseOffset, nil)
	var ifds []IFD
	for ifd, dir := range d.dirs {
		tags := make([]Tag, 0, len(dir.Tags))
		for _, lztag := range dir.Tags {
			if !lztag.Type.IsRational() || !fn(ifd, lztag.size(), lztag.ID) {
				continue
			}
			tag, err := d.getTag(r, lztag)
			if err != nil {
				// Return correctly decoded tags up to the point of failure.
				return append(ifds, IFD{Tags: tags, Group: dir.Group}), err
			}
			tags = append(tags, tag)
		}
		ifds = append(ifds, IFD{Tags: tags, Group: dir.Group})
	}
	return ifds, nil
}

// GetTag reads a single rational tag from the IFD at ifdLevel.
func (d *Decoder) GetTag(r io.ReaderAt, ifdLevel int, id ID) (_ Tag, err error) {
	switch {
	case len(d.dirs) == 0:
		err = errors.New("exif: decoder empty: did decoding succeed?")
	case ifdLevel < 0 || ifdLevel >= len(d.dirs):
		err = errors.New("exif: IFD level exceeds available levels")
	case r == nil:
		err = errors.New("exif: nil reader")
	}
	if err != nil {
		return Tag{}, err
	}
	for _, lztag := range d.dirs[ifdLevel].Tags {
		if lztag.ID != id {
			continue
		}
		if !lztag.Type.IsRational() {
			return Tag{}, fmt.Errorf("exif: tag %s is of type %s", id, lztag.Type)
		}
		return d.getTag(newOffsetReaderAt(r, d.baseOffset, nil), lztag)
	}
	return Tag{}, errors.New("exif: tag " + id.String() + " not found in IFD")
}

// Groups returns the group of each decoded IFD, indexed by IFD level.
func (d *Decoder) Groups() []Group {
	groups := make([]Group, len(d.dirs))
	for i := range d.dirs {
		groups[i] = d.dirs[i].Group
	}
	return groups
}

// ByteOrder returns the byte order of the decoded data.
func (d *Decoder) ByteOrder() binary.ByteOrder { return d.order }

func (d *Decoder) getTag(r io.ReaderAt, lztag lazytag) (Tag, error) {
	// Rationals are 8 bytes wide so they never fit in the value field.
	data := make([]byte, lztag.length)
	n, err := r.ReadAt(data, int64(lztag.offset))
	if err != nil {
		return Tag{}, fmt.Errorf("exif: reading %d/%d bytes of %s at %#x: %w", n, lztag.length, lztag.ID, lztag.offset, err)
	}
	vals, err := DecodeRationals(lztag.Type, d.order, data)
	if err != nil {
		return Tag{}, fmt.Errorf("exif: tag %s: %w", lztag.ID, err)
	}
	return Tag{ID: lztag.ID, Type: lztag.Type, Values: vals}, nil
}

// Decode indexes the EXIF data in r. r may hold a bare TIFF header or a JPEG
// whose first segment is the APP1 EXIF segment.
func (d *Decoder) Decode(r io.ReaderAt) (err error) {
	*d = Decoder{}
	var buf [8]byte
	n, err := r.ReadAt(buf[:], 0)
	if n != len(buf) {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("exif: reading header, got %d bytes: %w", n, err)
	}
	if string(buf[:2]) == "\xff\xd8" {
		// Start of image followed by APP1 marker, length and "Exif\x00\x00".
		const tiffStart = 12
		n, err = r.ReadAt(buf[:], tiffStart)
		if n != len(buf) {
			return fmt.Errorf("exif: reading TIFF header in JPEG: %w", err)
		}
		d.baseOffset = tiffStart
		r = newOffsetReaderAt(r, tiffStart, nil)
	}
	switch string(buf[:2]) {
	case "II":
		d.order = binary.LittleEndian
	case "MM":
		d.order = binary.BigEndian
	default:
		return errors.New("exif: failed reading byte order")
	}
	if d.order.Uint16(buf[2:]) != 42 {
		return errors.New("exif: failed to find special marker")
	}
	// read offset to first IFD and load them.
	offset := int64(d.order.Uint32(buf[4:]))
	if offset == 0 {
		return errors.New("exif: zero IFD0 offset")
	}
	group := GroupIFD0
	if err = d.decodeChain(r, offset, func() Group {
		g := group
		if group < GroupIFD1 {
			group++
		}
		return g
	}); err != nil {
		return err
	}

	var subIFDOffset uint32
	for _, tag := range d.dirs[0].Tags {
		if tag.ID == ExifOffset && tag.length == 0 {
			subIFDOffset = d.order.Uint32(tag.inline[:])
		}
	}
	if subIFDOffset == 0 {
		return nil
	}
	return d.decodeChain(r, int64(subIFDOffset), func() Group { return GroupExifIFD })
}

func (d *Decoder) decodeChain(r io.ReaderAt, offset int64, group func() Group) error {
	seen := make(map[int64]bool)
	for offset != 0 {
		if seen[offset] {
			return errors.New("exif: recursive dir")
		}
		seen[offset] = true
		dir, next, err := decodeDir(r, offset, d.order)
		if err != nil {
			return err
		}
		dir.Group = group()
		d.dirs = append(d.dirs, dir)
		offset = next
	}
	return nil
}

type lazydir struct {
	Tags  []lazytag
	Group Group
}

func decodeDir(r io.ReaderAt, offset int64, order binary.ByteOrder) (d lazydir, nextOffset int64, err error) {
	var buf [4]byte
	n, err := r.ReadAt(buf[:2], offset)
	if n != 2 {
		return d, 0, fmt.Errorf("exif: reading IFD entry count at %d: %w", offset, err)
	}
	nTags := order.Uint16(buf[:2])
	d.Tags = make([]lazytag, 0, nTags)
	totalOffset := offset + 2
	for i := 0; i < int(nTags); i++ {
		t, err := decodeTag(r, totalOffset, order)
		if err != nil {
			return d, 0, err
		}
		totalOffset += 12 // size of tag field.
		if t.Type.Size() == 0 {
			continue // Unknown type, value cannot be sized.
		}
		d.Tags = append(d.Tags, t)
	}
	n, err = r.ReadAt(buf[:4], totalOffset)
	if n != 4 {
		return d, 0, fmt.Errorf("exif: reading next IFD offset: %w", err)
	}
	nextOffset = int64(order.Uint32(buf[:4]))
	return d, nextOffset, nil
}

// maxValueLength is the largest tag value in bytes the decoder accepts.
const maxValueLength = 1 << 20

type lazytag struct {
	ID   ID
	Type Type
	// Offset of value if it does not fit in 4 bytes.
	offset uint32
	// Size in bytes of value if stored at offset, else 0.
	length int
	inline [4]byte
}

func (lt *lazytag) size() int {
	if lt.length == 0 {
		return int(lt.Type.Size())
	}
	return lt.length
}

func decodeTag(r io.ReaderAt, offset int64, order binary.ByteOrder) (lztag lazytag, err error) {
	var buf [12]byte
	n, err := r.ReadAt(buf[:], offset)
	if n != len(buf) {
		return lztag, fmt.Errorf("exif: reading tag got short read (%d): %w", n, err)
	}
	lztag.ID = ID(order.Uint16(buf[0:]))
	lztag.Type = Type(order.Uint16(buf[2:]))
	count := order.Uint32(buf[4:])
	if count == 1<<32-1 {
		return lztag, errors.New("exif: invalid count in tag " + strconv.Itoa(int(lztag.ID)))
	}
	length := uint64(count) * uint64(lztag.Type.Size())
	if length > maxValueLength {
		return lztag, fmt.Errorf("exif: tag %s value of %d bytes exceeds limit", lztag.ID, length)
	}
	if length > 4 {
		lztag.offset = order.Uint32(buf[8:])
		lztag.length = int(length)
	} else {
		copy(lztag.inline[:], buf[8:12])
	}
	return lztag, nil
}

// offsetReaderAt shifts reads by offset and serves small reads from a cached window.
type offsetReaderAt struct {
	r         io.ReaderAt
	offset    int64
	buf       []byte
	bufOffset int64
}

func newOffsetReaderAt(r io.ReaderAt, baseOffset int64, buf []byte) *offsetReaderAt {
	const bufSize = 64
	if buf == nil {
		buf = make([]byte, bufSize)
	}
	return &offsetReaderAt{
		r:         r,
		buf:       buf[:0],
		bufOffset: -1,
		offset:    baseOffset,
	}
}

func (or *offsetReaderAt) ReadAt(p []byte, off int64) (n int, err error) {
	off += or.offset // Work in underlying reader coordinates from here on out.
	if len(p) > cap(or.buf) {
		return or.r.ReadAt(p, off)
	}
	end := off + int64(len(p))
	if or.bufOffset >= 0 && off >= or.bufOffset && end <= or.bufOffset+int64(len(or.buf)) {
		start := off - or.bufOffset
		return copy(p, or.buf[start:]), nil
	}
	// Cache miss: reload window starting at off.
	nn, err := or.r.ReadAt(or.buf[:cap(or.buf)], off)
	or.buf = or.buf[:nn]
	or.bufOffset = off
	if nn < len(p) {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return copy(p, or.buf), err
	}
	return copy(p, or.buf), nil
}

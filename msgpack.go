package rational

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v4"
)

// MsgpackExtID is the msgpack extension type Rational values are encoded as.
const MsgpackExtID int8 = 1

func init() {
	msgpack.RegisterExt(MsgpackExtID, (*Rational)(nil))
}

func (r Rational) MarshalMsgpack() ([]byte, error) {
	return r.MarshalBinary()
}

func (r *Rational) UnmarshalMsgpack(data []byte) error {
	return r.UnmarshalBinary(data)
}

// MsgpackMarshal encodes val with compact integers and sorted map keys so the
// output is deterministic.
func MsgpackMarshal(val interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf).UseCompactEncoding(true).SortMapKeys(true)
	if err := enc.Encode(val); err != nil {
		return nil, fmt.Errorf("rational: msgpack marshal %#v: %w", val, err)
	}
	return buf.Bytes(), nil
}

func MsgpackUnmarshal(data []byte, val interface{}) error {
	if err := msgpack.Unmarshal(data, val); err != nil {
		return fmt.Errorf("rational: msgpack unmarshal: %w", err)
	}
	return nil
}

package anvil

import (
	"bytes"
	"encoding/binary"
)

// NBT tag type IDs used by chunk data.
const (
	tagEnd       byte = 0
	tagByte      byte = 1
	tagInt       byte = 3
	tagLong      byte = 4
	tagByteArray byte = 7
	tagList      byte = 9
	tagCompound  byte = 10
	tagIntArray  byte = 11
)

// nbtEncoder writes big-endian NBT into an in-memory buffer. Writes to a
// bytes.Buffer cannot fail, so there is no error to carry.
type nbtEncoder struct {
	buf bytes.Buffer
}

func (e *nbtEncoder) Bytes() []byte { return e.buf.Bytes() }

func (e *nbtEncoder) header(tag byte, name string) {
	e.buf.WriteByte(tag)
	e.buf.Write(binary.BigEndian.AppendUint16(nil, uint16(len(name))))
	e.buf.WriteString(name)
}

func (e *nbtEncoder) putInt32(v int32) {
	e.buf.Write(binary.BigEndian.AppendUint32(nil, uint32(v)))
}

// beginCompound opens a named compound. Compounds inside a list carry no
// header: write their fields directly and close them with end.
func (e *nbtEncoder) beginCompound(name string) { e.header(tagCompound, name) }

func (e *nbtEncoder) end() { e.buf.WriteByte(tagEnd) }

func (e *nbtEncoder) byteTag(name string, v byte) {
	e.header(tagByte, name)
	e.buf.WriteByte(v)
}

func (e *nbtEncoder) intTag(name string, v int32) {
	e.header(tagInt, name)
	e.putInt32(v)
}

func (e *nbtEncoder) longTag(name string, v int64) {
	e.header(tagLong, name)
	e.buf.Write(binary.BigEndian.AppendUint64(nil, uint64(v)))
}

func (e *nbtEncoder) byteArray(name string, v []byte) {
	e.header(tagByteArray, name)
	e.putInt32(int32(len(v)))
	e.buf.Write(v)
}

func (e *nbtEncoder) intArray(name string, v []int32) {
	e.header(tagIntArray, name)
	e.putInt32(int32(len(v)))
	for _, x := range v {
		e.putInt32(x)
	}
}

func (e *nbtEncoder) beginList(name string, elem byte, n int) {
	e.header(tagList, name)
	e.buf.WriteByte(elem)
	e.putInt32(int32(n))
}

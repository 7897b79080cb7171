package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"tabDB/internal/dberr"
	"tabDB/internal/sql"
)

// Table image layout:
//
//	[header][record slot]*
//
// Header (little endian int32 fields, 24 bytes):
//
//	file_size, record_size, num_records, record_offset, flags, reserved
//
// Record slot (record_size bytes, zero padded to a multiple of 4):
//
//	per column: length byte (0 = NULL) + column length payload bytes
//	INT payload:  int32 little endian
//	CHAR payload: string bytes, zero padded
const HeaderSize = 24

// Header is the fixed prefix of a table image.
type Header struct {
	FileSize     int32
	RecordSize   int32
	NumRecords   int32
	RecordOffset int32
	Flags        int32
	Reserved     int32
}

func newHeader(t *sql.Table, n int) Header {
	rs := RecordSize(t.Columns)
	return Header{
		FileSize:     int32(HeaderSize + n*rs),
		RecordSize:   int32(rs),
		NumRecords:   int32(n),
		RecordOffset: HeaderSize,
	}
}

// RecordSize is the slot size for cols: the sum of 1 + length per column,
// rounded up to a multiple of 4.
func RecordSize(cols []sql.Column) int {
	n := 0
	for _, c := range cols {
		n += 1 + c.Length
	}
	return (n + 3) &^ 3
}

// EncodeRecord packs row into one zero-initialised record slot.
func EncodeRecord(cols []sql.Column, row sql.Row) ([]byte, error) {
	if len(row) != len(cols) {
		return nil, fmt.Errorf("storage: row has %d values, table has %d columns", len(row), len(cols))
	}

	buf := make([]byte, RecordSize(cols))
	off := 0
	for i, c := range cols {
		v := row[i]
		field := buf[off+1 : off+1+c.Length]
		switch {
		case v.Null:
			// length byte and payload stay zero
		case c.Type == sql.TypeInt:
			if v.Type != sql.TypeInt {
				return nil, fmt.Errorf("storage: column %s: expected INT, got %v", c.Name, v.Type)
			}
			buf[off] = byte(c.Length)
			binary.LittleEndian.PutUint32(field, uint32(int32(v.I64)))
		default:
			if v.Type != sql.TypeString {
				return nil, fmt.Errorf("storage: column %s: expected CHAR, got %v", c.Name, v.Type)
			}
			if len(v.S) == 0 || len(v.S) > c.Length {
				return nil, fmt.Errorf("storage: column %s: string length %d out of range 1..%d", c.Name, len(v.S), c.Length)
			}
			buf[off] = byte(len(v.S))
			copy(field, v.S)
		}
		off += 1 + c.Length
	}
	return buf, nil
}

// DecodeRecord unpacks one record slot.
func DecodeRecord(cols []sql.Column, b []byte) (sql.Row, error) {
	if len(b) < RecordSize(cols) {
		return nil, fmt.Errorf("storage: record is %d bytes, want %d", len(b), RecordSize(cols))
	}

	row := make(sql.Row, len(cols))
	off := 0
	for i, c := range cols {
		n := int(b[off])
		field := b[off+1 : off+1+c.Length]
		switch {
		case n == 0:
			row[i] = sql.NullValue(c.Type)
		case c.Type == sql.TypeInt:
			if n != sql.IntColumnLength {
				return nil, fmt.Errorf("storage: column %s: INT length byte %d", c.Name, n)
			}
			row[i] = sql.IntValue(int64(int32(binary.LittleEndian.Uint32(field))))
		default:
			if n > c.Length {
				return nil, fmt.Errorf("storage: column %s: length byte %d exceeds CHAR(%d)", c.Name, n, c.Length)
			}
			row[i] = sql.StringValue(string(field[:n]))
		}
		off += 1 + c.Length
	}
	return row, nil
}

// Encode serializes the whole table image.
func (tf *TableFile) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(int(tf.Header.FileSize))
	if err := binary.Write(&buf, binary.LittleEndian, tf.Header); err != nil {
		return nil, err
	}
	for i, r := range tf.Rows {
		rec, err := EncodeRecord(tf.Table.Columns, r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		buf.Write(rec)
	}
	return buf.Bytes(), nil
}

// Decode parses and validates a table image for t. Any disagreement
// between the header and the bytes is TabFileCorruption.
func Decode(t *sql.Table, data []byte) (*TableFile, error) {
	corrupt := func(format string, args ...any) error {
		return dberr.Newf(dberr.TabFileCorruption, "%s: "+format, append([]any{t.Name}, args...)...)
	}

	if len(data) < HeaderSize {
		return nil, corrupt("file is %d bytes, shorter than the header", len(data))
	}
	var h Header
	if err := binary.Read(bytes.NewReader(data[:HeaderSize]), binary.LittleEndian, &h); err != nil {
		return nil, corrupt("read header: %v", err)
	}

	rs := RecordSize(t.Columns)
	switch {
	case int(h.FileSize) != len(data):
		return nil, corrupt("size field %d does not match file length %d", h.FileSize, len(data))
	case int(h.RecordSize) != rs:
		return nil, corrupt("record size %d, columns need %d", h.RecordSize, rs)
	case h.RecordOffset != HeaderSize:
		return nil, corrupt("record offset %d", h.RecordOffset)
	case h.NumRecords < 0 || HeaderSize+int(h.NumRecords)*rs != len(data):
		return nil, corrupt("%d records do not fill %d bytes", h.NumRecords, len(data))
	}

	tf := &TableFile{Table: t, Header: h, Rows: make([]sql.Row, 0, h.NumRecords)}
	for i := 0; i < int(h.NumRecords); i++ {
		start := HeaderSize + i*rs
		row, err := DecodeRecord(t.Columns, data[start:start+rs])
		if err != nil {
			return nil, corrupt("record %d: %v", i, err)
		}
		tf.Rows = append(tf.Rows, row)
	}
	return tf, nil
}

func checkRowLimit(tf *TableFile) error {
	if int(tf.Header.NumRecords) >= sql.MaxRows {
		return dberr.Newf(dberr.MaxRowExceeded, "table %s already holds %d rows", tf.Table.Name, tf.Header.NumRecords)
	}
	return nil
}

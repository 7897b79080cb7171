package catalog

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"tabDB/internal/sql"
)

// On-disk layout, all integers int32 little endian:
//
//	header:     list_size, num_tables, db_flags                  (12 bytes)
//	per table:  tpd_size, table_name[20], num_columns,
//	            cd_offset, tpd_flags                             (36 bytes)
//	per column: col_name[20], col_id, col_type, col_len, not_null (36 bytes)
//
// An empty catalog keeps one zeroed table block as a placeholder, so its
// file is 48 bytes. The first real table takes the placeholder's place.
const (
	headerSize     = 12
	descriptorSize = 36
	columnSize     = 36
	nameFieldSize  = 20
	emptyFileSize  = headerSize + descriptorSize

	colTypeInt  = 10
	colTypeChar = 11
)

type diskHeader struct {
	ListSize  int32
	NumTables int32
	DBFlags   int32
}

type diskTable struct {
	Size       int32
	Name       [nameFieldSize]byte
	NumColumns int32
	CDOffset   int32
	Flags      int32
}

type diskColumn struct {
	Name    [nameFieldSize]byte
	ID      int32
	Type    int32
	Length  int32
	NotNull int32
}

// DescriptorSize is the number of bytes a table occupies in the catalog.
func DescriptorSize(t *sql.Table) int {
	return descriptorSize + columnSize*len(t.Columns)
}

// TypeCode is the col_type value stored for a column type.
func TypeCode(t sql.DataType) int32 {
	if t == sql.TypeInt {
		return colTypeInt
	}
	return colTypeChar
}

// CDOffset is the offset of the first column block inside a table
// descriptor.
const CDOffset = descriptorSize

func fileSize(tables []*sql.Table) int {
	if len(tables) == 0 {
		return emptyFileSize
	}
	n := headerSize
	for _, t := range tables {
		n += DescriptorSize(t)
	}
	return n
}

func putName(dst *[nameFieldSize]byte, name string) {
	copy(dst[:nameFieldSize-1], name)
}

func getName(src [nameFieldSize]byte) string {
	if i := bytes.IndexByte(src[:], 0); i >= 0 {
		return string(src[:i])
	}
	return string(src[:])
}

// encode serializes the catalog image.
func encode(flags int32, tables []*sql.Table) []byte {
	var buf bytes.Buffer
	buf.Grow(fileSize(tables))

	hdr := diskHeader{ListSize: int32(fileSize(tables)), NumTables: int32(len(tables)), DBFlags: flags}
	_ = binary.Write(&buf, binary.LittleEndian, hdr)

	if len(tables) == 0 {
		_ = binary.Write(&buf, binary.LittleEndian, diskTable{})
		return buf.Bytes()
	}

	for _, t := range tables {
		dt := diskTable{
			Size:       int32(DescriptorSize(t)),
			NumColumns: int32(len(t.Columns)),
			CDOffset:   descriptorSize,
			Flags:      t.Flags,
		}
		putName(&dt.Name, t.Name)
		_ = binary.Write(&buf, binary.LittleEndian, dt)

		for _, c := range t.Columns {
			dc := diskColumn{ID: int32(c.ID), Type: TypeCode(c.Type), Length: int32(c.Length)}
			putName(&dc.Name, c.Name)
			if c.NotNull {
				dc.NotNull = 1
			}
			_ = binary.Write(&buf, binary.LittleEndian, dc)
		}
	}
	return buf.Bytes()
}

// decode parses a catalog image. Any inconsistency between the size and
// count fields and the actual bytes is reported as an error.
func decode(data []byte) (int32, []*sql.Table, error) {
	if len(data) < headerSize {
		return 0, nil, fmt.Errorf("file is %d bytes, shorter than the header", len(data))
	}
	r := bytes.NewReader(data)

	var hdr diskHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return 0, nil, err
	}
	if int(hdr.ListSize) != len(data) {
		return 0, nil, fmt.Errorf("size field %d does not match file length %d", hdr.ListSize, len(data))
	}
	if hdr.NumTables < 0 {
		return 0, nil, fmt.Errorf("negative table count %d", hdr.NumTables)
	}
	if hdr.NumTables == 0 {
		if len(data) != emptyFileSize {
			return 0, nil, fmt.Errorf("empty catalog is %d bytes, want %d", len(data), emptyFileSize)
		}
		return hdr.DBFlags, nil, nil
	}

	tables := make([]*sql.Table, 0, hdr.NumTables)
	for i := 0; i < int(hdr.NumTables); i++ {
		var dt diskTable
		if err := binary.Read(r, binary.LittleEndian, &dt); err != nil {
			return 0, nil, fmt.Errorf("table %d: %w", i, err)
		}
		if dt.NumColumns < 1 || dt.NumColumns > sql.MaxColumns {
			return 0, nil, fmt.Errorf("table %d: bad column count %d", i, dt.NumColumns)
		}
		if dt.CDOffset != descriptorSize || int(dt.Size) != descriptorSize+columnSize*int(dt.NumColumns) {
			return 0, nil, fmt.Errorf("table %d: bad descriptor size %d", i, dt.Size)
		}

		t := &sql.Table{Name: getName(dt.Name), Flags: dt.Flags}
		for j := 0; j < int(dt.NumColumns); j++ {
			var dc diskColumn
			if err := binary.Read(r, binary.LittleEndian, &dc); err != nil {
				return 0, nil, fmt.Errorf("table %s column %d: %w", t.Name, j, err)
			}
			col := sql.Column{
				ID:      int(dc.ID),
				Name:    getName(dc.Name),
				Length:  int(dc.Length),
				NotNull: dc.NotNull != 0,
			}
			switch dc.Type {
			case colTypeInt:
				col.Type = sql.TypeInt
			case colTypeChar:
				col.Type = sql.TypeString
			default:
				return 0, nil, fmt.Errorf("table %s column %s: unknown type %d", t.Name, col.Name, dc.Type)
			}
			if col.Length < 1 || col.Length > sql.MaxStringLen {
				return 0, nil, fmt.Errorf("table %s column %s: bad length %d", t.Name, col.Name, col.Length)
			}
			t.Columns = append(t.Columns, col)
		}
		tables = append(tables, t)
	}

	if r.Len() != 0 {
		return 0, nil, fmt.Errorf("%d trailing bytes after last table", r.Len())
	}
	return hdr.DBFlags, tables, nil
}

package flatgeobuf

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
	json "github.com/goccy/go-json"

	geojson "github.com/tingold/typed-geojson"
)

// schema is the column layout inferred from encoded properties objects.
type schema struct {
	names []string
	types []flattypes.ColumnType
	index map[string]int
}

// inferSchema derives columns from the encoded properties of every feature.
// Columns appear in first-seen order, with keys of one object taken in sorted
// order. Properties that did not encode to an object contribute nothing.
// Column indexes are stored as uint16, which caps the column count.
func inferSchema(objects []map[string]any) (*schema, error) {
	s := &schema{index: make(map[string]int)}
	seen := make(map[string]bool)

	for _, obj := range objects {
		for _, name := range slices.Sorted(maps.Keys(obj)) {
			t, typed := columnType(obj[name])

			i, ok := s.index[name]
			if !ok {
				i = len(s.names)
				if i > math.MaxUint16 {
					return nil, fmt.Errorf("%w: more than %d columns", ErrTooManyColumns, math.MaxUint16+1)
				}
				s.index[name] = i
				s.names = append(s.names, name)
				s.types = append(s.types, flattypes.ColumnTypeString)
			}
			if !typed {
				continue
			}
			if !seen[name] {
				seen[name] = true
				s.types[i] = t
			} else {
				s.types[i] = promoteColumnType(s.types[i], t)
			}
		}
	}

	return s, nil
}

// columns builds the header columns for the schema.
func (s *schema) columns(builder *flatbuffers.Builder) []*writer.Column {
	cols := make([]*writer.Column, 0, len(s.names))
	for i, name := range s.names {
		col := writer.NewColumn(builder)
		col.SetName(name)
		col.SetTitle(name)
		col.SetType(s.types[i])
		col.SetNullable(true)
		cols = append(cols, col)
	}
	return cols
}

// columnType maps a JSON tree value to a column type. typed is false for
// null, which fits any column.
func columnType(v any) (t flattypes.ColumnType, typed bool) {
	switch val := v.(type) {
	case nil:
		return 0, false
	case bool:
		return flattypes.ColumnTypeBool, true
	case string:
		return flattypes.ColumnTypeString, true
	case map[string]any, []any:
		return flattypes.ColumnTypeJson, true
	default:
		f, ok := geojson.Number(val)
		if !ok {
			return flattypes.ColumnTypeJson, true
		}
		if isInteger(f) {
			return flattypes.ColumnTypeLong, true
		}
		return flattypes.ColumnTypeDouble, true
	}
}

// promoteColumnType widens two observed types to one that holds both.
func promoteColumnType(a, b flattypes.ColumnType) flattypes.ColumnType {
	switch {
	case a == b:
		return a
	case a == flattypes.ColumnTypeLong && b == flattypes.ColumnTypeDouble,
		a == flattypes.ColumnTypeDouble && b == flattypes.ColumnTypeLong:
		return flattypes.ColumnTypeDouble
	default:
		return flattypes.ColumnTypeJson
	}
}

// encodeProperties writes obj as [uint16 column index][value] pairs. Null
// members and members outside the schema are not written.
func (s *schema) encodeProperties(obj map[string]any) []byte {
	if len(obj) == 0 || len(s.names) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, name := range slices.Sorted(maps.Keys(obj)) {
		value := obj[name]
		i, ok := s.index[name]
		if !ok || value == nil {
			continue
		}
		buf.Write(binary.LittleEndian.AppendUint16(nil, uint16(i)))
		writeValue(&buf, value, s.types[i])
	}
	return buf.Bytes()
}

// writeValue writes one value in the layout of its column type.
func writeValue(buf *bytes.Buffer, value any, t flattypes.ColumnType) {
	switch t {
	case flattypes.ColumnTypeBool:
		if value == true {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}

	case flattypes.ColumnTypeLong:
		f, _ := geojson.Number(value)
		buf.Write(binary.LittleEndian.AppendUint64(nil, uint64(int64(f))))

	case flattypes.ColumnTypeDouble:
		f, _ := geojson.Number(value)
		buf.Write(binary.LittleEndian.AppendUint64(nil, math.Float64bits(f)))

	case flattypes.ColumnTypeString:
		s, _ := value.(string)
		writeBytes(buf, []byte(s))

	default:
		data, err := json.Marshal(value)
		if err != nil {
			data = []byte("null")
		}
		writeBytes(buf, data)
	}
}

// writeBytes writes a uint32 length prefix followed by data.
func writeBytes(buf *bytes.Buffer, data []byte) {
	buf.Write(binary.LittleEndian.AppendUint32(nil, uint32(len(data))))
	buf.Write(data)
}

// decodeProperties reads a property buffer into a properties object holding
// JSON tree values.
func decodeProperties(data []byte, header *flattypes.Header) (geojson.Properties, error) {
	props := make(geojson.Properties)
	offset := 0

	for offset < len(data) {
		if offset+2 > len(data) {
			return nil, fmt.Errorf("%w: truncated column index at byte %d", ErrInvalidData, offset)
		}
		i := int(binary.LittleEndian.Uint16(data[offset:]))
		offset += 2

		var col flattypes.Column
		if i >= header.ColumnsLength() || !header.Columns(&col, i) {
			return nil, fmt.Errorf("%w: column %d", ErrInvalidColumn, i)
		}

		value, n, err := readValue(data[offset:], col.Type())
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name(), err)
		}
		offset += n
		props[string(col.Name())] = value
	}

	return props, nil
}

// readValue reads one value of the given column type and reports how many
// bytes it used. Numbers come back as float64 to match decoded JSON.
func readValue(data []byte, t flattypes.ColumnType) (any, int, error) {
	need := func(n int) error {
		if len(data) < n {
			return fmt.Errorf("%w: need %d bytes, have %d", ErrInvalidData, n, len(data))
		}
		return nil
	}

	switch t {
	case flattypes.ColumnTypeBool:
		if err := need(1); err != nil {
			return nil, 0, err
		}
		return data[0] != 0, 1, nil

	case flattypes.ColumnTypeByte:
		if err := need(1); err != nil {
			return nil, 0, err
		}
		return float64(int8(data[0])), 1, nil

	case flattypes.ColumnTypeUByte:
		if err := need(1); err != nil {
			return nil, 0, err
		}
		return float64(data[0]), 1, nil

	case flattypes.ColumnTypeShort:
		if err := need(2); err != nil {
			return nil, 0, err
		}
		return float64(int16(binary.LittleEndian.Uint16(data))), 2, nil

	case flattypes.ColumnTypeUShort:
		if err := need(2); err != nil {
			return nil, 0, err
		}
		return float64(binary.LittleEndian.Uint16(data)), 2, nil

	case flattypes.ColumnTypeInt:
		if err := need(4); err != nil {
			return nil, 0, err
		}
		return float64(int32(binary.LittleEndian.Uint32(data))), 4, nil

	case flattypes.ColumnTypeUInt:
		if err := need(4); err != nil {
			return nil, 0, err
		}
		return float64(binary.LittleEndian.Uint32(data)), 4, nil

	case flattypes.ColumnTypeLong:
		if err := need(8); err != nil {
			return nil, 0, err
		}
		return float64(int64(binary.LittleEndian.Uint64(data))), 8, nil

	case flattypes.ColumnTypeULong:
		if err := need(8); err != nil {
			return nil, 0, err
		}
		return float64(binary.LittleEndian.Uint64(data)), 8, nil

	case flattypes.ColumnTypeFloat:
		if err := need(4); err != nil {
			return nil, 0, err
		}
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(data))), 4, nil

	case flattypes.ColumnTypeDouble:
		if err := need(8); err != nil {
			return nil, 0, err
		}
		return math.Float64frombits(binary.LittleEndian.Uint64(data)), 8, nil

	case flattypes.ColumnTypeString, flattypes.ColumnTypeDateTime,
		flattypes.ColumnTypeJson, flattypes.ColumnTypeBinary:
		if err := need(4); err != nil {
			return nil, 0, err
		}
		n := int(binary.LittleEndian.Uint32(data))
		if err := need(4 + n); err != nil {
			return nil, 0, err
		}
		raw := data[4 : 4+n]

		switch t {
		case flattypes.ColumnTypeJson:
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, 0, fmt.Errorf("%w: %v", ErrPropertyMismatch, err)
			}
			return v, 4 + n, nil
		case flattypes.ColumnTypeBinary:
			return base64.StdEncoding.EncodeToString(raw), 4 + n, nil
		default:
			return string(raw), 4 + n, nil
		}

	default:
		return nil, 0, fmt.Errorf("%w: %d", ErrInvalidColumn, t)
	}
}

// isInteger reports whether f survives a round trip through int64.
func isInteger(f float64) bool {
	return f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64
}

package core

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
)

// XRefEntryType says where an object lives.
type XRefEntryType int

const (
	XRefEntryFree XRefEntryType = iota
	XRefEntryInUse
	XRefEntryCompressed // stored inside an object stream
)

// XRefEntry locates one object. For in-use entries Offset is the byte
// offset of "n g obj"; compressed entries name their object stream and
// the index within it.
type XRefEntry struct {
	Type       XRefEntryType
	Offset     int64
	Generation int
	StreamNum  int
	Index      int
}

// XRefTable maps object numbers to entries, with the newest trailer.
type XRefTable struct {
	Entries map[int]*XRefEntry
	Trailer Dict
}

// NewXRefTable creates a new empty XRef table
func NewXRefTable() *XRefTable {
	return &XRefTable{Entries: make(map[int]*XRefEntry), Trailer: Dict{}}
}

// Get retrieves an XRef entry by object number
func (x *XRefTable) Get(objNum int) (*XRefEntry, bool) {
	e, ok := x.Entries[objNum]
	return e, ok
}

// Size returns the number of entries in the table
func (x *XRefTable) Size() int { return len(x.Entries) }

// mergeOlder adds entries from an older section without overriding newer ones.
func (x *XRefTable) mergeOlder(old *XRefTable) {
	for n, e := range old.Entries {
		if _, ok := x.Entries[n]; !ok {
			x.Entries[n] = e
		}
	}
	for k, v := range old.Trailer {
		if _, ok := x.Trailer[k]; !ok && k != "Prev" && k != "XRefStm" {
			x.Trailer[k] = v
		}
	}
}

// FindStartXRef returns the offset recorded after the last "startxref".
func FindStartXRef(data []byte) (int64, error) {
	tail := data
	if len(tail) > 2048 {
		tail = tail[len(tail)-2048:]
	}
	idx := bytes.LastIndex(tail, []byte("startxref"))
	if idx < 0 {
		return 0, fmt.Errorf("startxref not found")
	}
	s := NewScanner(tail[idx+len("startxref"):])
	s.skipSpace()
	off, ok := s.unsigned()
	if !ok {
		return 0, fmt.Errorf("invalid startxref offset")
	}
	return int64(off), nil
}

// LoadXRef reads the cross-reference chain starting at startxref. If the
// chain is unusable the table is rebuilt by scanning the file.
func LoadXRef(data []byte) (*XRefTable, error) {
	table, err := loadXRefChain(data)
	if err == nil {
		if _, ok := table.Trailer["Root"]; ok {
			return table, nil
		}
		err = fmt.Errorf("trailer has no /Root")
	}
	rebuilt, rerr := RebuildXRef(data)
	if rerr != nil {
		return nil, fmt.Errorf("%v; rebuild failed: %w", err, rerr)
	}
	return rebuilt, nil
}

func loadXRefChain(data []byte) (*XRefTable, error) {
	off, err := FindStartXRef(data)
	if err != nil {
		return nil, err
	}

	var table *XRefTable
	seen := make(map[int64]bool)
	for next := off; ; {
		if seen[next] {
			break
		}
		seen[next] = true

		section, err := ParseXRefSection(data, next)
		if err != nil {
			if table == nil {
				return nil, err
			}
			break
		}

		// Hybrid files keep the compressed entries in a separate stream.
		if stm, ok := section.Trailer.GetInt("XRefStm"); ok && !seen[int64(stm)] {
			seen[int64(stm)] = true
			if extra, err := ParseXRefSection(data, int64(stm)); err == nil {
				section.mergeOlder(extra)
			}
		}

		if table == nil {
			table = section
		} else {
			table.mergeOlder(section)
		}

		prev, ok := section.Trailer.GetInt("Prev")
		if !ok {
			break
		}
		next = int64(prev)
	}
	delete(table.Trailer, "Prev")
	return table, nil
}

// ParseXRefSection parses a classic xref table or an xref stream at offset.
func ParseXRefSection(data []byte, offset int64) (*XRefTable, error) {
	if offset < 0 || offset >= int64(len(data)) {
		return nil, fmt.Errorf("xref offset %d outside file", offset)
	}
	s := NewScanner(data)
	s.Seek(int(offset))
	s.skipSpace()
	if s.keyword("xref") {
		return parseXRefTable(s)
	}
	return parseXRefStream(s)
}

func parseXRefTable(s *Scanner) (*XRefTable, error) {
	table := NewXRefTable()
	for {
		s.skipSpace()
		if s.keyword("trailer") {
			obj, err := s.ParseObject()
			if err != nil {
				return nil, fmt.Errorf("trailer: %w", err)
			}
			trailer, ok := obj.(Dict)
			if !ok {
				return nil, fmt.Errorf("trailer is %T, not a dictionary", obj)
			}
			table.Trailer = trailer
			return table, nil
		}

		first, ok1 := s.unsigned()
		s.skipSpace()
		count, ok2 := s.unsigned()
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("invalid xref subsection header at offset %d", s.Pos())
		}
		for i := 0; i < count; i++ {
			s.skipSpace()
			off, ok1 := s.unsigned()
			s.skipSpace()
			gen, ok2 := s.unsigned()
			s.skipSpace()
			flag := s.word()
			if !ok1 || !ok2 || (flag != "n" && flag != "f") {
				return nil, fmt.Errorf("invalid xref entry %d in subsection %d", i, first)
			}
			e := &XRefEntry{Type: XRefEntryFree, Offset: int64(off), Generation: gen}
			if flag == "n" {
				e.Type = XRefEntryInUse
			}
			if _, dup := table.Entries[first+i]; !dup {
				table.Entries[first+i] = e
			}
		}
	}
}

func parseXRefStream(s *Scanner) (*XRefTable, error) {
	ind, err := s.ParseIndirectObject()
	if err != nil {
		return nil, fmt.Errorf("xref stream: %w", err)
	}
	stream, ok := ind.Object.(*Stream)
	if !ok {
		return nil, fmt.Errorf("object %d is not an xref stream", ind.Ref.Number)
	}
	if t, _ := stream.Dict.GetName("Type"); t != "XRef" {
		return nil, fmt.Errorf("object %d has /Type %q, want XRef", ind.Ref.Number, t)
	}

	w, ok := stream.Dict.GetArray("W")
	if !ok || len(w) < 3 {
		return nil, fmt.Errorf("xref stream missing /W")
	}
	var widths [3]int
	for i := 0; i < 3; i++ {
		n, _ := w[i].(Int)
		widths[i] = int(n)
	}
	rowLen := widths[0] + widths[1] + widths[2]
	if rowLen == 0 {
		return nil, fmt.Errorf("xref stream has zero-width rows")
	}

	size, _ := stream.Dict.GetInt("Size")
	index := Array{Int(0), size}
	if idx, ok := stream.Dict.GetArray("Index"); ok {
		index = idx
	}

	raw, err := stream.Decode()
	if err != nil {
		return nil, fmt.Errorf("xref stream: %w", err)
	}

	table := NewXRefTable()
	table.Trailer = stream.Dict
	pos := 0
	for i := 0; i+1 < len(index); i += 2 {
		first, _ := index[i].(Int)
		count, _ := index[i+1].(Int)
		for j := 0; j < int(count); j++ {
			if pos+rowLen > len(raw) {
				return table, nil
			}
			row := raw[pos : pos+rowLen]
			pos += rowLen

			kind := int64(1)
			if widths[0] > 0 {
				kind = field(row[:widths[0]])
			}
			f2 := field(row[widths[0] : widths[0]+widths[1]])
			f3 := field(row[widths[0]+widths[1]:])

			e := &XRefEntry{}
			switch kind {
			case 0:
				e.Type = XRefEntryFree
			case 1:
				e.Type, e.Offset, e.Generation = XRefEntryInUse, f2, int(f3)
			case 2:
				e.Type, e.StreamNum, e.Index = XRefEntryCompressed, int(f2), int(f3)
			default:
				continue
			}
			table.Entries[int(first)+j] = e
		}
	}
	return table, nil
}

func field(b []byte) int64 {
	var v int64
	for _, c := range b {
		v = v<<8 | int64(c)
	}
	return v
}

var objHeader = regexp.MustCompile(`(?m)(?:^|[\r\n\s])(\d+)\s+(\d+)\s+obj\b`)

// RebuildXRef recovers a cross-reference table from a file whose xref data
// is missing or wrong by locating every "n g obj" header. The trailer comes
// from the last trailer dictionary or xref stream; failing both, the first
// /Catalog object found becomes /Root.
func RebuildXRef(data []byte) (*XRefTable, error) {
	table := NewXRefTable()
	for _, m := range objHeader.FindAllSubmatchIndex(data, -1) {
		num, err1 := strconv.Atoi(string(data[m[2]:m[3]]))
		gen, err2 := strconv.Atoi(string(data[m[4]:m[5]]))
		if err1 != nil || err2 != nil {
			continue
		}
		// Later definitions win, as with incremental updates.
		table.Entries[num] = &XRefEntry{Type: XRefEntryInUse, Offset: int64(m[2]), Generation: gen}
	}
	if len(table.Entries) == 0 {
		return nil, fmt.Errorf("no objects found")
	}

	if idx := bytes.LastIndex(data, []byte("trailer")); idx >= 0 {
		s := NewScanner(data)
		s.Seek(idx + len("trailer"))
		if obj, err := s.ParseObject(); err == nil {
			if d, ok := obj.(Dict); ok {
				table.Trailer = d
			}
		}
	}

	s := NewScanner(data)
	for num, e := range table.Entries {
		s.Seek(int(e.Offset))
		ind, err := s.ParseIndirectObject()
		if err != nil {
			continue
		}
		switch v := ind.Object.(type) {
		case *Stream:
			t, _ := v.Dict.GetName("Type")
			if t == "XRef" && table.Trailer["Root"] == nil {
				for _, k := range []string{"Root", "Info", "Encrypt", "ID"} {
					if val, ok := v.Dict[k]; ok {
						table.Trailer[k] = val
					}
				}
			}
			if t == "ObjStm" {
				addCompressed(table, num, v)
			}
		case Dict:
			if t, _ := v.GetName("Type"); t == "Catalog" && table.Trailer["Root"] == nil {
				table.Trailer["Root"] = IndirectRef{Number: num, Generation: e.Generation}
			}
		}
	}

	if table.Trailer["Root"] == nil {
		return nil, fmt.Errorf("no document catalog found")
	}
	return table, nil
}

func addCompressed(table *XRefTable, streamNum int, stream *Stream) {
	os, err := NewObjectStream(stream)
	if err != nil {
		return
	}
	for i, num := range os.Numbers() {
		if _, ok := table.Entries[num]; ok {
			continue
		}
		table.Entries[num] = &XRefEntry{Type: XRefEntryCompressed, StreamNum: streamNum, Index: i}
		if obj, err := os.Object(num); err == nil {
			if d, ok := obj.(Dict); ok && table.Trailer["Root"] == nil {
				if t, _ := d.GetName("Type"); t == "Catalog" {
					table.Trailer["Root"] = IndirectRef{Number: num}
				}
			}
		}
	}
}

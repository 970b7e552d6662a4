package core

import "fmt"

// ObjectStream gives access to the objects packed in a /Type /ObjStm stream.
type ObjectStream struct {
	data    []byte
	first   int
	nums    []int
	offsets []int
	cache   map[int]Object
}

// NewObjectStream decodes an object stream and reads its header of
// "number offset" pairs.
func NewObjectStream(stream *Stream) (*ObjectStream, error) {
	if stream == nil {
		return nil, fmt.Errorf("nil object stream")
	}
	if t, _ := stream.Dict.GetName("Type"); t != "ObjStm" {
		return nil, fmt.Errorf("stream has /Type %q, want ObjStm", t)
	}
	n, ok1 := stream.Dict.GetInt("N")
	first, ok2 := stream.Dict.GetInt("First")
	if !ok1 || !ok2 || n < 0 || first < 0 {
		return nil, fmt.Errorf("object stream needs non-negative /N and /First")
	}

	data, err := stream.Decode()
	if err != nil {
		return nil, fmt.Errorf("object stream: %w", err)
	}
	if int(first) > len(data) {
		return nil, fmt.Errorf("/First %d beyond %d decoded bytes", first, len(data))
	}

	os := &ObjectStream{data: data, first: int(first), cache: make(map[int]Object)}
	s := NewScanner(data[:first])
	for i := 0; i < int(n); i++ {
		s.skipSpace()
		num, ok1 := s.unsigned()
		s.skipSpace()
		off, ok2 := s.unsigned()
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("object stream header entry %d is malformed", i)
		}
		os.nums = append(os.nums, num)
		os.offsets = append(os.offsets, off)
	}
	return os, nil
}

// Numbers returns the object numbers in header order.
func (os *ObjectStream) Numbers() []int { return os.nums }

// Object parses the object with the given number.
func (os *ObjectStream) Object(num int) (Object, error) {
	for i, n := range os.nums {
		if n == num {
			return os.ObjectAt(i)
		}
	}
	return nil, fmt.Errorf("object %d not in object stream", num)
}

// ObjectAt parses the object at header index i.
func (os *ObjectStream) ObjectAt(i int) (Object, error) {
	if i < 0 || i >= len(os.nums) {
		return nil, fmt.Errorf("index %d out of range [0, %d)", i, len(os.nums))
	}
	if obj, ok := os.cache[i]; ok {
		return obj, nil
	}
	start := os.first + os.offsets[i]
	if start >= len(os.data) {
		return nil, fmt.Errorf("object %d offset beyond stream data", os.nums[i])
	}
	obj, err := NewScanner(os.data[start:]).ParseObject()
	if err != nil {
		return nil, fmt.Errorf("object %d: %w", os.nums[i], err)
	}
	os.cache[i] = obj
	return obj, nil
}

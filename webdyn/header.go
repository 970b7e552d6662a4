package webdyn

// Header keys, in the order the definition file expects them.
const (
	KeyProtocol     = "protocol"
	KeyCategory     = "category"
	KeyManufacturer = "manufacturer"
	KeyModel        = "model"
	KeyWriteCode    = "write_code"
)

// Field is one key/value pair of the header line.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Header is the ordered metadata written as the first line of the file.
// The zero value is an empty header.
type Header struct {
	fields []Field
}

// DefaultHeader returns the five standard keys with their default values.
func DefaultHeader() Header {
	return NewHeader(
		Field{KeyProtocol, "modbusRTU"},
		Field{KeyCategory, "Inverter"},
		Field{KeyManufacturer, "HUAWEI"},
		Field{KeyModel, "SUN2000-10K-LC0"},
		Field{KeyWriteCode, "0"},
	)
}

// NewHeader builds a header from fields in order. A repeated key keeps its
// first position and its last value.
func NewHeader(fields ...Field) Header {
	var h Header
	for _, f := range fields {
		h = h.Set(f.Key, f.Value)
	}
	return h
}

// Set returns a copy of h with key set to value. A new key is appended.
func (h Header) Set(key, value string) Header {
	fields := make([]Field, len(h.fields), len(h.fields)+1)
	copy(fields, h.fields)
	for i := range fields {
		if fields[i].Key == key {
			fields[i].Value = value
			return Header{fields: fields}
		}
	}
	return Header{fields: append(fields, Field{key, value})}
}

// Get returns the value for key.
func (h Header) Get(key string) (string, bool) {
	for _, f := range h.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Fields returns a copy of the fields in order.
func (h Header) Fields() []Field {
	out := make([]Field, len(h.fields))
	copy(out, h.fields)
	return out
}

// Values returns the values in order.
func (h Header) Values() []string {
	out := make([]string, len(h.fields))
	for i, f := range h.fields {
		out[i] = f.Value
	}
	return out
}

// Len returns the number of fields.
func (h Header) Len() int { return len(h.fields) }

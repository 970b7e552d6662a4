// Package config loads the header metadata of a definition file from YAML
// or JSON.
//
//	protocol: modbusTCP
//	model: SUN2000-5KTL-M1
//	write_code: 0
//	extra:
//	  - key: firmware
//	    value: V100R001
//
// Keys that are left out keep their defaults.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"k8s.io/klog/v2"
	kyaml "sigs.k8s.io/yaml"

	"github.com/tsawler/regmap/webdyn"
)

// Value is a header value. YAML scalars such as 0 or true are kept as
// written rather than rejected for not being strings.
type Value string

// UnmarshalJSON accepts a JSON string, number or boolean.
func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Value(s)
		return nil
	}
	data = bytes.TrimSpace(data)
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*v = Value(n)
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = Value(fmt.Sprint(b))
		return nil
	}
	return fmt.Errorf("header value %s is not a scalar", data)
}

func (v *Value) ptr() *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

// ExtraField is a header key beyond the standard five.
type ExtraField struct {
	Key   string `json:"key"`
	Value Value  `json:"value"`
}

// HeaderFile is the on-disk form of the header.
type HeaderFile struct {
	Protocol     *Value       `json:"protocol,omitempty"`
	Category     *Value       `json:"category,omitempty"`
	Manufacturer *Value       `json:"manufacturer,omitempty"`
	Model        *Value       `json:"model,omitempty"`
	WriteCode    *Value       `json:"write_code,omitempty"`
	Extra        []ExtraField `json:"extra,omitempty"`
}

// Apply sets the fields present in f on h. Extra keys are appended in
// file order.
func (f *HeaderFile) Apply(h webdyn.Header) (webdyn.Header, error) {
	for _, kv := range []struct {
		key string
		val *Value
	}{
		{webdyn.KeyProtocol, f.Protocol},
		{webdyn.KeyCategory, f.Category},
		{webdyn.KeyManufacturer, f.Manufacturer},
		{webdyn.KeyModel, f.Model},
		{webdyn.KeyWriteCode, f.WriteCode},
	} {
		if s := kv.val.ptr(); s != nil {
			h = h.Set(kv.key, *s)
		}
	}
	for i, e := range f.Extra {
		if e.Key == "" {
			return h, fmt.Errorf("extra field %d has no key", i)
		}
		h = h.Set(e.Key, string(e.Value))
	}
	return h, nil
}

// ParseHeader reads a header document and applies it to the default
// header. Unknown top-level keys are an error.
func ParseHeader(data []byte) (webdyn.Header, error) {
	var f HeaderFile
	if err := kyaml.UnmarshalStrict(data, &f); err != nil {
		return webdyn.Header{}, fmt.Errorf("invalid header: %w", err)
	}
	return f.Apply(webdyn.DefaultHeader())
}

// LoadHeader reads a header file.
func LoadHeader(path string) (webdyn.Header, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		klog.Errorf("read header file %s error %v", path, err)
		return webdyn.Header{}, err
	}
	h, err := ParseHeader(data)
	if err != nil {
		return webdyn.Header{}, fmt.Errorf("%s: %w", path, err)
	}
	klog.V(2).Infof("loaded header from %s: %v", path, h.Values())
	return h, nil
}

// MarshalHeader writes h in the file form LoadHeader reads.
func MarshalHeader(h webdyn.Header) ([]byte, error) {
	var f HeaderFile
	for _, field := range h.Fields() {
		v := Value(field.Value)
		switch field.Key {
		case webdyn.KeyProtocol:
			f.Protocol = &v
		case webdyn.KeyCategory:
			f.Category = &v
		case webdyn.KeyManufacturer:
			f.Manufacturer = &v
		case webdyn.KeyModel:
			f.Model = &v
		case webdyn.KeyWriteCode:
			f.WriteCode = &v
		default:
			f.Extra = append(f.Extra, ExtraField{Key: field.Key, Value: v})
		}
	}
	return kyaml.Marshal(f)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/tsawler/regmap/webdyn"
)

func TestParseHeaderYAML(t *testing.T) {
	h, err := ParseHeader([]byte(`
protocol: modbusTCP
model: SUN2000-5KTL-M1
write_code: 16
extra:
  - key: firmware
    value: V100R001
  - key: enabled
    value: true
`))
	assert.NilError(t, err)
	assert.DeepEqual(t, h.Values(), []string{"modbusTCP", "Inverter", "HUAWEI", "SUN2000-5KTL-M1", "16", "V100R001", "true"})
}

func TestParseHeaderJSON(t *testing.T) {
	h, err := ParseHeader([]byte(`{"manufacturer": "SMA", "category": "Meter"}`))
	assert.NilError(t, err)
	v, _ := h.Get(webdyn.KeyManufacturer)
	assert.Equal(t, v, "SMA")
	v, _ = h.Get(webdyn.KeyCategory)
	assert.Equal(t, v, "Meter")
	assert.Equal(t, h.Len(), 5)
}

func TestParseHeaderErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown key", "modle: X\n", "invalid header"},
		{"not a scalar", "model: [a, b]\n", "not a scalar"},
		{"extra without key", "extra:\n  - value: x\n", "has no key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader([]byte(tt.doc))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "header.yaml")
	assert.NilError(t, os.WriteFile(path, []byte("model: SUN2000-8KTL\n"), 0644))

	h, err := LoadHeader(path)
	assert.NilError(t, err)
	assert.Equal(t, webdyn.FileName(h), "webdyn_def_SUN2000-8KTL.csv")

	_, err = LoadHeader(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Assert(t, os.IsNotExist(err))
}

func TestMarshalHeaderRoundTrip(t *testing.T) {
	h := webdyn.DefaultHeader().Set("firmware", "V100")
	data, err := MarshalHeader(h)
	assert.NilError(t, err)
	assert.Assert(t, is.Contains(string(data), "write_code: \"0\""))

	back, err := ParseHeader(data)
	assert.NilError(t, err)
	assert.DeepEqual(t, back.Values(), h.Values())
}

package filters

// Params holds the /DecodeParms entries of a stream, with PDF integers as
// int, reals as float64, booleans as bool and names as string.
type Params map[string]interface{}

// Int returns the integer parameter key, or def when it is missing or not
// a number.
func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// Bool returns the boolean parameter key, or def.
func (p Params) Bool(key string, def bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}

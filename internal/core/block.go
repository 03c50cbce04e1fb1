package core

import (
	"fmt"
	"maps"
	"math"
	"strconv"
)

const (
	NavbarType = "navbar"
	FooterType = "footer"
)

// Config holds the scalar configuration of one block instance. Values are
// string, bool, int64 or float64 once normalised.
type Config map[string]any

type BlockInstance struct {
	ID     string `json:"id,omitempty"`
	TypeID string `json:"type"`
	Config Config `json:"config,omitempty"`
}

func (c Config) GetString(key, fallback string) string {
	v, ok := c[key]
	if !ok {
		return fallback
	}
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	}
	return fallback
}

func (c Config) GetBool(key string, fallback bool) bool {
	switch val := c[key].(type) {
	case bool:
		return val
	case string:
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func (c Config) GetInt(key string, fallback int64) int64 {
	switch val := c[key].(type) {
	case int64:
		return val
	case int:
		return int64(val)
	case float64:
		return int64(val)
	case string:
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func (c Config) Clone() Config {
	if c == nil {
		return nil
	}
	return maps.Clone(c)
}

func CloneInstances(instances []BlockInstance) []BlockInstance {
	if instances == nil {
		return nil
	}
	out := make([]BlockInstance, len(instances))
	for i, inst := range instances {
		out[i] = BlockInstance{
			ID:     inst.ID,
			TypeID: inst.TypeID,
			Config: inst.Config.Clone(),
		}
	}
	return out
}

// NormalizeValue maps a Go scalar onto the value space of Config.
func NormalizeValue(v any) (any, error) {
	switch val := v.(type) {
	case string, bool, int64:
		return val, nil
	case int:
		return int64(val), nil
	case int8:
		return int64(val), nil
	case int16:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case uint:
		return normalizeUnsigned(uint64(val))
	case uint8:
		return int64(val), nil
	case uint16:
		return int64(val), nil
	case uint32:
		return int64(val), nil
	case uint64:
		return normalizeUnsigned(val)
	case float32:
		return normalizeFloat(float64(val))
	case float64:
		return normalizeFloat(val)
	case nil:
		return nil, NewUnrepresentableValueError("nil value")
	}
	return nil, NewUnrepresentableValueError(fmt.Sprintf("unsupported value type %T", v))
}

func normalizeUnsigned(u uint64) (any, error) {
	if u > math.MaxInt64 {
		return nil, NewUnrepresentableValueError(fmt.Sprintf("unsigned value %d overflows int64", u))
	}
	return int64(u), nil
}

func normalizeFloat(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, NewUnrepresentableValueError(fmt.Sprintf("non-finite number %v", f))
	}
	return f, nil
}

// EqualInstances reports structural equality: same ordered type ids and the
// same config key/value sets. IDs are ignored and nil configs equal empty ones.
func EqualInstances(a, b []BlockInstance) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].TypeID != b[i].TypeID || !equalConfig(a[i].Config, b[i].Config) {
			return false
		}
	}
	return true
}

func equalConfig(a, b Config) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok {
			return false
		}
		na, errA := NormalizeValue(av)
		nb, errB := NormalizeValue(bv)
		if errA != nil || errB != nil || na != nb {
			return false
		}
	}
	return true
}

package writer

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/skylarkdata/orcio/pkg/orcerrors"
)

// Value coercion for WriteBatch input. Unlike lossy record pipelines, a file
// writer rejects values it cannot represent instead of substituting zeros.

func coerceBool(v interface{}, ordinal int) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, coercionError(v, "bool", ordinal)
}

func coerceInt64(v interface{}, ordinal int) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case time.Time:
		// date columns accept time values as days since the epoch
		return n.Unix() / 86400, nil
	}
	return 0, coercionError(v, "int64", ordinal)
}

func coerceFloat64(v interface{}, ordinal int) (float64, error) {
	switch f := v.(type) {
	case float32:
		return float64(f), nil
	case float64:
		return f, nil
	case int:
		return float64(f), nil
	case int64:
		return float64(f), nil
	}
	return 0, coercionError(v, "float64", ordinal)
}

func coerceTime(v interface{}, ordinal int) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case int64:
		return time.UnixMilli(t), nil
	}
	return time.Time{}, coercionError(v, "time.Time", ordinal)
}

func coerceBytes(v interface{}, ordinal int) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	}
	return nil, coercionError(v, "[]byte", ordinal)
}

func coerceString(v interface{}, ordinal int) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	}
	return "", coercionError(v, "string", ordinal)
}

func coerceDecimal(v interface{}, ordinal int) (decimal.Decimal, error) {
	switch d := v.(type) {
	case decimal.Decimal:
		return d, nil
	case string:
		parsed, err := decimal.NewFromString(d)
		if err != nil {
			return decimal.Zero, orcerrors.Wrap(err, orcerrors.ErrorTypeData, "invalid decimal literal").
				WithDetail("column", ordinal).
				WithDetail("value", d)
		}
		return parsed, nil
	case int64:
		return decimal.NewFromInt(d), nil
	case float64:
		return decimal.NewFromFloat(d), nil
	}
	return decimal.Zero, coercionError(v, "decimal", ordinal)
}

func coercionError(v interface{}, want string, ordinal int) error {
	return orcerrors.Newf(orcerrors.ErrorTypeData, "value of type %T is not writable as %s", v, want).
		WithDetail("column", ordinal)
}

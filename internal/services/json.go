package services

import (
	"github.com/buger/jsonparser"
)

// Accessors over raw Spotify responses. Every lookup tolerates a missing key, a null, or a value of the wrong
// type by falling back to the zero value (or nil for the optional variants).

func str(data []byte, keys ...string) string {
	v, err := jsonparser.GetString(data, keys...)
	if err != nil {
		return ""
	}
	return v
}

func optStr(data []byte, keys ...string) *string {
	v, err := jsonparser.GetString(data, keys...)
	if err != nil {
		return nil
	}
	return &v
}

func num(data []byte, keys ...string) int {
	return numOr(data, 0, keys...)
}

// numOr returns fallback unless keys lead to a JSON number.
func numOr(data []byte, fallback int, keys ...string) int {
	v, err := jsonparser.GetFloat(data, keys...)
	if err != nil {
		return fallback
	}
	return int(v)
}

func boolean(data []byte, keys ...string) bool {
	v, err := jsonparser.GetBoolean(data, keys...)
	if err != nil {
		return false
	}
	return v
}

func optBool(data []byte, keys ...string) *bool {
	v, err := jsonparser.GetBoolean(data, keys...)
	if err != nil {
		return nil
	}
	return &v
}

// objects calls fn for each object element of the array at keys. Anything that is not an array yields no calls;
// non-object elements (including null) are skipped.
func objects(data []byte, fn func(item []byte), keys ...string) {
	_, _ = jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
		if err != nil || dataType != jsonparser.Object {
			return
		}
		fn(value)
	}, keys...)
}

// Package infostring parses Quake `\key\value` info strings and decodes them
// into typed client and server settings.
package infostring

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

const separator = `\`

// Parse splits an info string into its key/value pairs. A trailing key
// without a value maps to the empty string and later keys override earlier
// ones.
func Parse(s string) map[string]string {
	out := make(map[string]string)
	parts := strings.Split(strings.TrimPrefix(s, separator), separator)
	for i := 0; i < len(parts); i += 2 {
		key := parts[i]
		if key == "" {
			continue
		}
		if i+1 < len(parts) {
			out[key] = parts[i+1]
		} else {
			out[key] = ""
		}
	}
	return out
}

// Decode parses s and stores it in out, which must be a pointer to a struct
// whose fields carry `info` tags. Numeric fields accept the server's string
// values; unparsable numbers decode as zero.
func Decode(s string, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       lenientNumber(),
		Result:           out,
		TagName:          "info",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(Parse(s))
}

func lenientNumber() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, d any) (any, error) {
		if f.Kind() != reflect.String {
			return d, nil
		}
		v := strings.TrimSpace(d.(string))
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				return "0", nil
			}
			return v, nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if _, err := strconv.ParseUint(v, 10, 64); err != nil {
				return "0", nil
			}
			return v, nil
		case reflect.Float32, reflect.Float64:
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				return "0", nil
			}
			return v, nil
		}
		return d, nil
	}
}

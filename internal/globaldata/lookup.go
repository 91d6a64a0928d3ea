package globaldata

import "os"

// LookupFunc returns the raw value stored under key and whether it is set.
// os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// EnvLookup reads the process environment.
var EnvLookup LookupFunc = os.LookupEnv

// MapLookup serves values from a fixed map. The map is copied.
func MapLookup(values map[string]string) LookupFunc {
	snapshot := make(map[string]string, len(values))
	for k, v := range values {
		snapshot[k] = v
	}
	return func(key string) (string, bool) {
		v, ok := snapshot[key]
		return v, ok
	}
}

// ChainLookup consults sources in order and returns the first non-empty value.
// Nil sources are skipped.
func ChainLookup(sources ...LookupFunc) LookupFunc {
	return func(key string) (string, bool) {
		for _, source := range sources {
			if source == nil {
				continue
			}
			if v, ok := source(key); ok && v != "" {
				return v, true
			}
		}
		return "", false
	}
}

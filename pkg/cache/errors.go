package cache

import "errors"

// errCacheMiss is reported to observers so miss rates can be derived from
// the same event stream as hits. It never crosses the Store boundary.
var errCacheMiss = errors.New("cache: miss")

// IsMiss checks whether an observed operation error denotes a cache miss.
func IsMiss(err error) bool {
	return errors.Is(err, errCacheMiss)
}

package media

import "errors"

var ErrNotFound = errors.New("media item not found")

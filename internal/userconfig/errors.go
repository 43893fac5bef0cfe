package userconfig

import "errors"

var ErrInvalidStyle = errors.New("unsupported box style")

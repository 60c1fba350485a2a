package location

import "errors"

var (
	ErrOfficeLocationNotFound = errors.New("office location has not been configured")
)

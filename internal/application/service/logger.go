package service

import "errors"

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ErrPackage is returned when vouchers were built but could not be packaged
var ErrPackage = errors.New("failed to package journals")

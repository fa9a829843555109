// Package errors provides the errors returned by the loading side of the library. The settings themselves never
// fail, these are only returned while reading configuration and definition files.
package errors

import "errors"

type ErrUnknownExtruder string

func (err ErrUnknownExtruder) Error() string {
	return string(err)
}

type ErrUnknownMesh string

func (err ErrUnknownMesh) Error() string {
	return string(err)
}

type ErrUnknownScope string

func (err ErrUnknownScope) Error() string {
	return string(err)
}

type ErrInvalidDefinition string

func (err ErrInvalidDefinition) Error() string {
	return string(err)
}

type ErrInvalidConfig string

func (err ErrInvalidConfig) Error() string {
	return string(err)
}

var ErrNotBuilt = errors.New("configuration has not been built")

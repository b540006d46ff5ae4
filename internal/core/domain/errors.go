package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a registration did not complete
type ErrorKind string

const (
	KindEmptyName       ErrorKind = "empty_name"
	KindNoImages        ErrorKind = "no_images"
	KindTooManyImages   ErrorKind = "too_many_images"
	KindDuplicateName   ErrorKind = "duplicate_name"
	KindIOFailure       ErrorKind = "io_failure"
	KindRegistryCorrupt ErrorKind = "registry_corrupt"
)

// Sentinels for errors.Is checks against a *RegistrationError
var (
	ErrEmptyName       = &RegistrationError{Kind: KindEmptyName}
	ErrNoImages        = &RegistrationError{Kind: KindNoImages}
	ErrTooManyImages   = &RegistrationError{Kind: KindTooManyImages}
	ErrDuplicateName   = &RegistrationError{Kind: KindDuplicateName}
	ErrIOFailure       = &RegistrationError{Kind: KindIOFailure}
	ErrRegistryCorrupt = &RegistrationError{Kind: KindRegistryCorrupt}
)

// RegistrationError carries the kind of failure plus context for the status line
type RegistrationError struct {
	Kind   ErrorKind
	Name   string // trimmed designer name, if known
	Detail string // underlying error text or offending value
	Err    error
}

func newError(kind ErrorKind, name, detail string, err error) *RegistrationError {
	if detail == "" && err != nil {
		detail = err.Error()
	}
	return &RegistrationError{Kind: kind, Name: name, Detail: detail, Err: err}
}

// NewIOFailure wraps a filesystem error raised while storing a dataset
func NewIOFailure(name string, err error) *RegistrationError {
	return newError(KindIOFailure, name, "", err)
}

// NewRegistryCorrupt wraps a registry parse error
func NewRegistryCorrupt(path string, err error) *RegistrationError {
	return newError(KindRegistryCorrupt, "", fmt.Sprintf("%s: %v", path, err), err)
}

// NewDuplicateName reports that name is already taken
func NewDuplicateName(name string) *RegistrationError {
	return newError(KindDuplicateName, name, "", nil)
}

func (e *RegistrationError) Error() string {
	switch e.Kind {
	case KindEmptyName:
		return "designer name is empty"
	case KindNoImages:
		return "no images uploaded"
	case KindTooManyImages:
		return fmt.Sprintf("too many images: %s (max %d)", e.Detail, MaxImages)
	case KindDuplicateName:
		return fmt.Sprintf("designer name %q already exists", e.Name)
	case KindIOFailure:
		return "upload failed: " + e.Detail
	case KindRegistryCorrupt:
		return "registry is corrupt: " + e.Detail
	default:
		return string(e.Kind)
	}
}

// Is matches any *RegistrationError of the same kind
func (e *RegistrationError) Is(target error) bool {
	t, ok := target.(*RegistrationError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// KindOf extracts the error kind, or "" when err is not a registration error
func KindOf(err error) ErrorKind {
	var re *RegistrationError
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

// StatusMessage converts an error into the line shown to the operator
func StatusMessage(err error) string {
	if err == nil {
		return ""
	}
	var re *RegistrationError
	if !errors.As(err, &re) {
		return "Upload failed: " + err.Error()
	}
	switch re.Kind {
	case KindEmptyName:
		return "Please enter a designer name."
	case KindNoImages:
		return "Please upload at least one image."
	case KindTooManyImages:
		return fmt.Sprintf("You can upload at most %d images.", MaxImages)
	case KindDuplicateName:
		return fmt.Sprintf("Designer name '%s' already exists. Please use a different name.", re.Name)
	case KindRegistryCorrupt:
		return "Designer registry could not be read: " + re.Detail
	default:
		return "Upload failed: " + re.Detail
	}
}

// SuccessMessage is the status line for a completed registration
func SuccessMessage(name, hash string, count int) string {
	return fmt.Sprintf("Upload complete!\nDesigner: %s\nHash: %s\nImages uploaded: %d", name, hash, count)
}

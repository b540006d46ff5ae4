package mocks

import (
	"bytes"
	"fmt"
	"io"
)

// MockImage is an in-memory ports.ImageSource
type MockImage struct {
	Filename string
	Data     []byte
	OpenErr  error
}

// NewMockImage returns an image with the given name and content
func NewMockImage(name string, data string) *MockImage {
	return &MockImage{Filename: name, Data: []byte(data)}
}

// NewUnreadableImage returns an image whose Open always fails
func NewUnreadableImage(name string) *MockImage {
	return &MockImage{Filename: name, OpenErr: fmt.Errorf("open %s: permission denied", name)}
}

func (m *MockImage) Name() string {
	return m.Filename
}

func (m *MockImage) Open() (io.ReadCloser, error) {
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	return io.NopCloser(bytes.NewReader(m.Data)), nil
}

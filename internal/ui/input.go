package ui

import (
	"bufio"
	"io"
	"strings"
	"sync"
)

// LineInput lee lineas de un reader y guarda la ultima como valor del input.
type LineInput struct {
	mu     sync.Mutex
	reader *bufio.Reader
	value  string
}

func NewLineInput(r io.Reader) *LineInput {
	return &LineInput{reader: bufio.NewReader(r)}
}

// ReadLine bloquea hasta la proxima linea. Devuelve io.EOF al cerrarse el reader.
func (in *LineInput) ReadLine() (string, error) {
	line, err := in.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	in.mu.Lock()
	in.value = line
	in.mu.Unlock()
	return line, nil
}

func (in *LineInput) Value() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.value
}

func (in *LineInput) Clear() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.value = ""
}

package util

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
)

// ErrTruncated is returned by the Read* helpers when a buffer ends before a
// requested field could be fully decoded. Store deserializers surface this
// as a "fail open" error rather than continuing on partially read data.
var ErrTruncated = errors.New("util: truncated buffer")

func NewBufferReader(data []byte) BufferReader {
	return BufferReader{reader: bytes.NewReader(data)}
}

type BufferReader struct {
	reader *bytes.Reader
}

func (self *BufferReader) Len() int {
	return self.reader.Len()
}

// Read decodes a single fixed-size little-endian value. Callers that need to
// distinguish "ran out of bytes" from "malformed" should check reader.Len()
// before calling; Read itself reports truncation via the returned error.
func Read[T any](reader *BufferReader, value *T) error {
	if err := binary.Read(reader.reader, binary.LittleEndian, value); err != nil {
		return ErrTruncated
	}
	return nil
}

func ReadArray[T any](reader *BufferReader, length int) (Array[T], error) {
	value := NewArray[T](length)
	if err := binary.Read(reader.reader, binary.LittleEndian, value); err != nil {
		return nil, ErrTruncated
	}
	return value, nil
}

func ReadBytes(reader *BufferReader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := reader.reader.Read(buf); err != nil {
		return nil, ErrTruncated
	}
	return buf, nil
}

func NewBufferWriter() BufferWriter {
	return BufferWriter{buffer: &bytes.Buffer{}}
}

type BufferWriter struct {
	buffer *bytes.Buffer
}

func (self *BufferWriter) Bytes() []byte {
	return self.buffer.Bytes()
}

func Write[T any](writer *BufferWriter, value T) {
	binary.Write(writer.buffer, binary.LittleEndian, value)
}

func WriteArray[T any](writer *BufferWriter, value Array[T]) {
	binary.Write(writer.buffer, binary.LittleEndian, value)
}

func WriteBytes(writer *BufferWriter, value []byte) {
	writer.buffer.Write(value)
}

func WriteToFile(data []byte, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(data)
	return err
}

func ReadFromFile(file string) ([]byte, error) {
	if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return os.ReadFile(file)
}

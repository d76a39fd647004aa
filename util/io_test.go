package util

import (
	"testing"
)

func TestBufferRoundTrip(t *testing.T) {
	writer := NewBufferWriter()
	Write(&writer, int32(42))
	WriteArray(&writer, Array[uint32]{1, 2, 3})

	reader := NewBufferReader(writer.Bytes())
	var got int32
	if err := Read(&reader, &got); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != 42 {
		t.Errorf("got = %v; want 42", got)
	}

	arr, err := ReadArray[uint32](&reader, 3)
	if err != nil {
		t.Fatalf("ReadArray failed: %v", err)
	}
	if arr[0] != 1 || arr[1] != 2 || arr[2] != 3 {
		t.Errorf("arr = %v; want [1 2 3]", arr)
	}
}

func TestBufferTruncated(t *testing.T) {
	reader := NewBufferReader([]byte{1, 2})
	var got int64
	if err := Read(&reader, &got); err != ErrTruncated {
		t.Errorf("err = %v; want ErrTruncated", err)
	}
}

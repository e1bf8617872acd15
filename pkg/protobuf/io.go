// Package protobuf reads and writes protobuf messages in the encoding implied
// by a filename: ".json" is protojson, ".pbtext" is prototext and anything
// else is the binary wire format.
package protobuf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
)

// Format is a message encoding.
type Format int

const (
	FormatBinary Format = iota
	FormatJSON
	FormatText
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatText:
		return "pbtext"
	default:
		return "binary"
	}
}

// FormatForFilename selects the encoding by file extension.
func FormatForFilename(filename string) Format {
	switch filepath.Ext(filename) {
	case ".json":
		return FormatJSON
	case ".pbtext":
		return FormatText
	default:
		return FormatBinary
	}
}

// Marshal encodes message.  JSON and text output is multi-line.
func Marshal(format Format, message proto.Message) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(message)
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatText:
		return prototext.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(message)
	default:
		return proto.MarshalOptions{Deterministic: true}.Marshal(message)
	}
}

// Unmarshal decodes data into message.
func Unmarshal(format Format, data []byte, message proto.Message) error {
	switch format {
	case FormatJSON:
		return protojson.Unmarshal(data, message)
	case FormatText:
		return prototext.Unmarshal(data, message)
	default:
		return proto.Unmarshal(data, message)
	}
}

// ReadFile decodes the named file into message.
func ReadFile(filename string, message proto.Message) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read %q: %w", filename, err)
	}
	if err := Unmarshal(FormatForFilename(filename), data, message); err != nil {
		return fmt.Errorf("unmarshal %q: %w", filename, err)
	}
	return nil
}

// WriteFile encodes message into the named file, creating parent
// directories as needed.
func WriteFile(filename string, message proto.Message) error {
	data, err := Marshal(FormatForFilename(filename), message)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("mkdir %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("write %q: %w", filename, err)
	}
	return nil
}

// ReadFrom decodes in using the encoding implied by filename.
func ReadFrom(filename string, message proto.Message, in io.Reader) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read %q: %w", filename, err)
	}
	if err := Unmarshal(FormatForFilename(filename), data, message); err != nil {
		return fmt.Errorf("unmarshal %q: %w", filename, err)
	}
	return nil
}

// WriteTo encodes message to out using the encoding implied by filename.
func WriteTo(filename string, message proto.Message, out io.Writer) error {
	data, err := Marshal(FormatForFilename(filename), message)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

package codec

import (
	"fmt"
	"io"
	"os"
)

// Decode sniffs the container from the stream's magic bytes and decodes it.
func Decode(r io.ReadSeeker) (*Source, error) {
	return decode(r, FormatUnknown)
}

// DecodeFile decodes the recording at path. The file extension is consulted
// only when the magic bytes are not recognised.
func DecodeFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("codec: failed to open %s: %w", path, err)
	}
	defer f.Close()

	src, err := decode(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

func decode(r io.ReadSeeker, fallback Format) (*Source, error) {
	start, err := skipID3v2(r)
	if err != nil {
		return nil, err
	}

	header := make([]byte, 4)
	n, err := io.ReadFull(r, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("codec: failed to read header: %w", err)
	}
	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return nil, fmt.Errorf("codec: failed to rewind: %w", err)
	}

	format := Sniff(header[:n])
	if start > 0 {
		// Only FLAC streams carry a leading ID3v2 tag.
		if format != FormatFLAC {
			return nil, fmt.Errorf("%w: ID3v2 tag ahead of a non-FLAC stream", ErrUnsupportedFormat)
		}
		return DecodeFLAC(r)
	}
	if format == FormatUnknown {
		format = fallback
	}

	switch format {
	case FormatWAV:
		return DecodeWAV(r)
	case FormatFLAC:
		return DecodeFLAC(r)
	default:
		return nil, fmt.Errorf("%w: unrecognised container", ErrUnsupportedFormat)
	}
}

// id3v2HeaderSize is the size of an ID3v2 header and of its optional footer.
const id3v2HeaderSize = 10

// skipID3v2 positions r after a leading ID3v2 tag and returns that offset.
// Without a tag r is rewound and the offset is 0.
func skipID3v2(r io.ReadSeeker) (int64, error) {
	var h [id3v2HeaderSize]byte
	n, err := io.ReadFull(r, h[:])
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return 0, fmt.Errorf("codec: failed to read header: %w", err)
	}

	var offset int64
	if n == id3v2HeaderSize && string(h[:3]) == "ID3" {
		// The tag size is a 28-bit syncsafe integer that excludes the header.
		size := int64(h[6]&0x7f)<<21 | int64(h[7]&0x7f)<<14 | int64(h[8]&0x7f)<<7 | int64(h[9]&0x7f)
		offset = id3v2HeaderSize + size
		if h[5]&0x10 != 0 {
			offset += id3v2HeaderSize
		}
	}
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return 0, fmt.Errorf("codec: failed to skip ID3v2 tag: %w", err)
	}
	return offset, nil
}

package indexpager

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

var _encoder = base64.RawURLEncoding

// EndCursor is the reserved cursor meaning the range is exhausted. Passing
// it back to Paginate idempotently yields an empty page with IsDone=true.
const EndCursor = "_end_"

// EncodeCursor serializes an index key into an opaque cursor string. The
// encoding is a compact JSON array wrapped in URL-safe base64 and preserves
// the key's sort position exactly on round-trip. An empty key encodes to the
// empty string, which denotes the start of the range.
func EncodeCursor(key IndexKey) string {
	if len(key) == 0 {
		return ""
	}

	jKey, err := json.Marshal(key)
	if err != nil {
		panic(fmt.Errorf("cannot marshal cursor key: %w", err))
	}

	var buf bytes.Buffer
	if err = json.Compact(&buf, jKey); err != nil {
		panic(fmt.Errorf("cannot compact cursor key: %w", err))
	}

	return _encoder.EncodeToString(buf.Bytes())
}

// DecodeCursor attempts to parse an encoded (base64) string back into an
// IndexKey. The empty string decodes to a nil key. The EndCursor sentinel is
// not a key and is rejected; callers must special-case it first.
func DecodeCursor(b64String string) (IndexKey, error) {
	if len(b64String) == 0 {
		return nil, nil
	}
	if b64String == EndCursor {
		return nil, fmt.Errorf("end-of-range cursor does not decode to a key")
	}

	jsonData, err := _encoder.DecodeString(b64String)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 encoded cursor: %w", err)
	}

	var key IndexKey
	if err = json.Unmarshal(jsonData, &key); err != nil {
		return nil, fmt.Errorf("failed to unmarshal json encoded cursor: %w", err)
	}

	return key, nil
}

package publish

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// BytesPerWord is the number of bytes packed into one full ByteArray word.
// 31 bytes (248 bits) is the largest whole-byte value that fits in a felt252.
const BytesPerWord = 31

var ErrMalformedByteArray = errors.New("malformed ByteArray calldata")

type (
	// ByteArray is the Cairo ByteArray layout of a byte string:
	// [num_full_words, ...full_words, pending_word, pending_word_len].
	ByteArray struct {
		Data           [][]byte
		PendingWord    []byte
		PendingWordLen int
	}

	Calldata []string
)

// EncodingError reports text that cannot be represented as UTF-8.
type EncodingError struct {
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode ByteArray: invalid UTF-8 at byte %d", e.Offset)
}

func NewByteArray(s string) (ByteArray, error) {
	if err := checkUTF8(s); err != nil {
		return ByteArray{}, err
	}

	b := []byte(s)
	full := len(b) / BytesPerWord
	ba := ByteArray{Data: make([][]byte, 0, full)}
	i := 0
	for ; i+BytesPerWord <= len(b); i += BytesPerWord {
		ba.Data = append(ba.Data, b[i:i+BytesPerWord])
	}
	ba.PendingWord = b[i:]
	ba.PendingWordLen = len(b) - i
	return ba, nil
}

// EncodeByteArray returns the constructor calldata tokens for s.
func EncodeByteArray(s string) (Calldata, error) {
	ba, err := NewByteArray(s)
	if err != nil {
		return nil, err
	}
	return ba.Calldata(), nil
}

func (ba ByteArray) Calldata() Calldata {
	out := make(Calldata, 0, len(ba.Data)+3)
	out = append(out, strconv.Itoa(len(ba.Data)))
	for _, word := range ba.Data {
		out = append(out, wordHex(word))
	}
	out = append(out, wordHex(ba.PendingWord))
	out = append(out, strconv.Itoa(ba.PendingWordLen))
	return out
}

func (ba ByteArray) Bytes() []byte {
	out := make([]byte, 0, len(ba.Data)*BytesPerWord+ba.PendingWordLen)
	for _, word := range ba.Data {
		out = append(out, word...)
	}
	return append(out, ba.PendingWord...)
}

func (ba ByteArray) String() string {
	return string(ba.Bytes())
}

// DecodeByteArray reads one ByteArray from the front of tokens and reports how
// many tokens it consumed.
func DecodeByteArray(tokens []string) (ByteArray, int, error) {
	if len(tokens) < 3 {
		return ByteArray{}, 0, fmt.Errorf("%w: need at least 3 tokens, got %d", ErrMalformedByteArray, len(tokens))
	}

	full, err := strconv.Atoi(tokens[0])
	if err != nil || full < 0 {
		return ByteArray{}, 0, fmt.Errorf("%w: invalid word count %q", ErrMalformedByteArray, tokens[0])
	}
	if full > len(tokens)-3 {
		return ByteArray{}, 0, fmt.Errorf("%w: word count %d exceeds %d remaining tokens", ErrMalformedByteArray, full, len(tokens)-1)
	}

	ba := ByteArray{Data: make([][]byte, full)}
	for i := 0; i < full; i++ {
		word, err := wordBytes(tokens[1+i], BytesPerWord)
		if err != nil {
			return ByteArray{}, 0, fmt.Errorf("%w: word[%d]: %v", ErrMalformedByteArray, i, err)
		}
		ba.Data[i] = word
	}

	pendingLen, err := strconv.Atoi(tokens[full+2])
	if err != nil || pendingLen < 0 || pendingLen >= BytesPerWord {
		return ByteArray{}, 0, fmt.Errorf("%w: invalid pending word length %q", ErrMalformedByteArray, tokens[full+2])
	}
	pending, err := wordBytes(tokens[full+1], pendingLen)
	if err != nil {
		return ByteArray{}, 0, fmt.Errorf("%w: pending word: %v", ErrMalformedByteArray, err)
	}
	ba.PendingWord = pending
	ba.PendingWordLen = pendingLen

	return ba, full + 3, nil
}

func wordHex(word []byte) string {
	return hexutil.EncodeBig(new(big.Int).SetBytes(word))
}

func wordBytes(token string, size int) ([]byte, error) {
	n, err := hexutil.DecodeBig(token)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", token, err)
	}
	if n.BitLen() > size*8 {
		return nil, fmt.Errorf("%s does not fit in %d bytes", token, size)
	}
	return n.FillBytes(make([]byte, size)), nil
}

func checkUTF8(s string) error {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return &EncodingError{Offset: i}
		}
		i += size
	}
	return nil
}

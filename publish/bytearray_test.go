package publish

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeByteArray(t *testing.T) {
	a31 := "0x" + strings.Repeat("61", 31)

	testCases := []struct {
		name     string
		input    string
		expected Calldata
	}{
		{
			name:     "empty string",
			input:    "",
			expected: Calldata{"0", "0x0", "0"},
		},
		{
			name:     "short symbol",
			input:    "NMNFT",
			expected: Calldata{"0", "0x4e4d4e4654", "5"},
		},
		{
			name:     "base uri",
			input:    "https://nearmint.io/metadata/",
			expected: Calldata{"0", "0x68747470733a2f2f6e6561726d696e742e696f2f6d657461646174612f", "29"},
		},
		{
			name:     "exactly one word",
			input:    strings.Repeat("a", 31),
			expected: Calldata{"1", a31, "0x0", "0"},
		},
		{
			name:     "one word and one byte",
			input:    strings.Repeat("a", 32),
			expected: Calldata{"1", a31, "0x61", "1"},
		},
		{
			name:     "two words",
			input:    strings.Repeat("a", 62),
			expected: Calldata{"2", a31, a31, "0x0", "0"},
		},
		{
			name:     "multi-byte runes",
			input:    "héllo",
			expected: Calldata{"0", "0x68c3a96c6c6f", "6"},
		},
		{
			name:     "zero word",
			input:    strings.Repeat("\x00", 31) + "A",
			expected: Calldata{"1", "0x0", "0x41", "1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EncodeByteArray(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestEncodeByteArrayInvalidUTF8(t *testing.T) {
	_, err := EncodeByteArray("ok\xffno")
	require.Error(t, err)

	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, 2, encErr.Offset)
}

func TestByteArrayProperties(t *testing.T) {
	inputs := []string{
		"",
		"x",
		"NearMintNFT",
		strings.Repeat("b", 30),
		strings.Repeat("b", 31),
		strings.Repeat("b", 93),
		strings.Repeat("€", 11),
		strings.Repeat("日本語", 20),
		"\x00\x00leading zeros",
	}

	for _, s := range inputs {
		t.Run(strconv.Quote(s), func(t *testing.T) {
			tokens, err := EncodeByteArray(s)
			require.NoError(t, err)

			full, err := strconv.Atoi(tokens[0])
			require.NoError(t, err)
			assert.Equal(t, len(s)/BytesPerWord, full)
			assert.Len(t, tokens, full+3)

			pendingLen, err := strconv.Atoi(tokens[len(tokens)-1])
			require.NoError(t, err)
			assert.GreaterOrEqual(t, pendingLen, 0)
			assert.Less(t, pendingLen, BytesPerWord)
			assert.Equal(t, len(s)%BytesPerWord, pendingLen)

			again, err := EncodeByteArray(s)
			require.NoError(t, err)
			assert.Equal(t, tokens, again)

			ba, n, err := DecodeByteArray(tokens)
			require.NoError(t, err)
			assert.Equal(t, len(tokens), n)
			assert.Equal(t, []byte(s), ba.Bytes())
			assert.Equal(t, s, ba.String())
			for _, word := range ba.Data {
				assert.Len(t, word, BytesPerWord)
			}
		})
	}
}

func TestNewByteArray(t *testing.T) {
	ba, err := NewByteArray(strings.Repeat("z", 40))
	require.NoError(t, err)
	require.Len(t, ba.Data, 1)
	assert.Equal(t, []byte(strings.Repeat("z", 31)), ba.Data[0])
	assert.Equal(t, []byte(strings.Repeat("z", 9)), ba.PendingWord)
	assert.Equal(t, 9, ba.PendingWordLen)
}

func TestDecodeByteArrayConsumesPrefix(t *testing.T) {
	tokens := Calldata{"0", "0x4e4d4e4654", "5", "0", "0x41", "1"}

	first, n, err := DecodeByteArray(tokens)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "NMNFT", first.String())

	second, n, err := DecodeByteArray(tokens[n:])
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "A", second.String())
}

func TestDecodeByteArrayLeadingZeroBytes(t *testing.T) {
	// The hex value drops leading zero bytes; the length restores them.
	ba, _, err := DecodeByteArray([]string{"0", "0x41", "3"})
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 'A'}, ba.Bytes())
}

func TestDecodeByteArrayErrors(t *testing.T) {
	tooWide := "0x" + strings.Repeat("ff", 32)

	testCases := []struct {
		name   string
		tokens []string
	}{
		{name: "too few tokens", tokens: []string{"0", "0x0"}},
		{name: "bad count", tokens: []string{"x", "0x0", "0"}},
		{name: "negative count", tokens: []string{"-1", "0x0", "0"}},
		{name: "count past end", tokens: []string{"2", "0x61", "0x0", "0"}},
		{name: "full word not hex", tokens: []string{"1", "zz", "0x0", "0"}},
		{name: "full word too wide", tokens: []string{"1", tooWide, "0x0", "0"}},
		{name: "pending length too large", tokens: []string{"0", "0x0", "31"}},
		{name: "pending length negative", tokens: []string{"0", "0x0", "-1"}},
		{name: "pending word wider than length", tokens: []string{"0", "0x4142", "1"}},
		{name: "pending word missing prefix", tokens: []string{"0", "41", "1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := DecodeByteArray(tc.tokens)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedByteArray)
		})
	}
}

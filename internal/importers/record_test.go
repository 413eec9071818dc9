package importers

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/crazythursday/copywriting/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecords_Shapes(t *testing.T) {
	data := []byte(`[
		"foo",
		{"content": "bar", "status": "approved"},
		{"content": "baz"},
		{"content": "qux", "status": null},
		{"content": "quux", "status": ""}
	]`)

	records, err := DecodeRecords(data)
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, KindText, records[0].Kind)
	assert.Equal(t, "foo", records[0].Content)

	assert.Equal(t, KindObject, records[1].Kind)
	assert.Equal(t, entities.StatusApproved, records[1].Status)

	for _, r := range records[2:] {
		assert.Equal(t, KindObject, r.Kind)
		assert.Equal(t, entities.StatusPending, r.Status)
	}
}

func TestDecodeRecords_MalformedElementsStayInPlace(t *testing.T) {
	tests := []struct {
		name    string
		element string
	}{
		{"number", `42`},
		{"boolean", `true`},
		{"null", `null`},
		{"array", `["nested"]`},
		{"object without content", `{"text": "hi"}`},
		{"content not a string", `{"content": 7}`},
		{"status not a string", `{"content": "x", "status": 1}`},
		{"unknown status", `{"content": "x", "status": "archived"}`},
		{"empty string", `""`},
		{"blank content", `{"content": "   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := DecodeRecords([]byte(`["before", ` + tt.element + `, "after"]`))
			require.NoError(t, err)
			require.Len(t, records, 3)

			assert.False(t, records[0].Malformed())
			assert.True(t, records[1].Malformed())
			assert.ErrorIs(t, records[1].Err, ErrMalformedRecord)
			assert.False(t, records[2].Malformed())
			assert.Equal(t, 1, FirstMalformed(records))
		})
	}
}

func TestDecodeRecords_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ``},
		{"whitespace", "  \n"},
		{"not json", `content,status`},
		{"object", `{"content": "foo"}`},
		{"string", `"foo"`},
		{"truncated array", `["foo", "bar"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := DecodeRecords([]byte(tt.data))
			assert.Nil(t, records)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDecodeRecords_EmptyArray(t *testing.T) {
	records, err := DecodeRecords([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, -1, FirstMalformed(records))
}

func TestImportRecord_Normalize(t *testing.T) {
	t.Run("bare string defaults to pending", func(t *testing.T) {
		input, err := TextRecord("foo").Normalize()
		require.NoError(t, err)
		assert.Equal(t, entities.CopywritingInput{Content: "foo", Status: entities.StatusPending}, input)
	})

	t.Run("object with status is unchanged", func(t *testing.T) {
		input, err := ObjectRecord("foo", entities.StatusApproved).Normalize()
		require.NoError(t, err)
		assert.Equal(t, entities.CopywritingInput{Content: "foo", Status: entities.StatusApproved}, input)
	})

	t.Run("object without status defaults to pending", func(t *testing.T) {
		input, err := ObjectRecord("foo", "").Normalize()
		require.NoError(t, err)
		assert.Equal(t, entities.StatusPending, input.Status)
	})

	t.Run("malformed record fails", func(t *testing.T) {
		_, err := malformed("number").Normalize()
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})

	t.Run("zero record fails", func(t *testing.T) {
		_, err := ImportRecord{}.Normalize()
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})

	t.Run("empty content fails", func(t *testing.T) {
		_, err := TextRecord("").Normalize()
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})

	t.Run("unknown status fails", func(t *testing.T) {
		_, err := ObjectRecord("foo", "archived").Normalize()
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})
}

func TestRecordKind_String(t *testing.T) {
	assert.Equal(t, "text", KindText.String())
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "malformed", KindMalformed.String())
}

func TestDecodeRecords_UnsupportedElementKeepsValidUTF8(t *testing.T) {
	records, err := DecodeRecords([]byte(`[["疯狂星期四疯狂星期四疯狂星期四疯狂星期四"]]`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.True(t, records[0].Malformed())

	msg := records[0].Err.Error()
	assert.True(t, utf8.ValidString(msg), msg)
	assert.Contains(t, msg, `unsupported element ["疯狂星期四`)
	assert.True(t, strings.HasSuffix(msg, "..."))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 40))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
	// 4 bytes lands inside the second three-byte rune.
	assert.Equal(t, "疯...", truncate("疯狂星期四", 4))
	assert.Equal(t, "疯狂...", truncate("疯狂星期四", 6))
}

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/crazythursday/copywriting/internal/converter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertCommand(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Import.RawFile, []byte("第一条\n\n第二条\\n换行\n"), 0644))

	var out bytes.Buffer
	cmd := NewConvertCommand(cfg).WithOutput(&out)
	require.NoError(t, cmd.ParseFlags(nil))
	require.NoError(t, cmd.Run())

	assert.Contains(t, out.String(), "Converted 2 entries")

	data, err := os.ReadFile(cfg.Import.DataFile)
	require.NoError(t, err)
	var entries []string
	require.NoError(t, json.Unmarshal(data, &entries))
	assert.Equal(t, []string{"第一条", "第二条\n换行"}, entries)
}

func TestConvertCommand_MissingInput(t *testing.T) {
	cfg := testConfig(t)

	cmd := NewConvertCommand(cfg).WithOutput(&bytes.Buffer{})
	require.NoError(t, cmd.ParseFlags([]string{"-input", cfg.Import.RawFile + ".missing"}))

	assert.ErrorIs(t, cmd.Run(), converter.ErrInputNotFound)
	_, err := os.Stat(cfg.Import.DataFile)
	assert.True(t, os.IsNotExist(err))
}

package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/cm3d2save/pkg/config"
	"github.com/ssargent/cm3d2save/pkg/di"
	"github.com/ssargent/cm3d2save/pkg/save"
)

func testSave(t *testing.T, version int32) []byte {
	t.Helper()
	doc := &save.Document{Version: version}
	doc.Header.PlayerName = "master"
	doc.Header.GameDay = 12
	doc.ChrMgr.PlayerParam.ScheduleSlots = make([]save.ScheduleSlot, save.ScheduleSlotCount)
	doc.ChrMgr.PlayerParam.GenericFlag.Set("b_flag", 1)
	doc.ChrMgr.PlayerParam.GenericFlag.Set("a_flag", 2)
	data, err := save.Encode(doc)
	require.NoError(t, err)
	return data
}

func setupContainer(t *testing.T, keep int) *di.Container {
	t.Helper()
	c := di.NewContainer()
	cfg := config.DefaultConfig()
	cfg.Archive.Dir = filepath.Join(t.TempDir(), "archive")
	cfg.Archive.Keep = keep
	require.NoError(t, c.Configure(cfg, io.Discard))
	t.Cleanup(func() { c.Close() })
	return c
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestDecodeEncodeFile_RoundTrip(t *testing.T) {
	c := setupContainer(t, 5)
	dir := t.TempDir()
	original := testSave(t, 153)
	in := filepath.Join(dir, "SaveData001.save")
	writeFile(t, in, original)

	jsonPath, err := decodeFile(c, in, "", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "SaveData001.json"), jsonPath)

	text, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Less(t, strings.Index(string(text), "b_flag"), strings.Index(string(text), "a_flag"))

	out := filepath.Join(dir, "copy.save")
	savePath, err := encodeFile(c, jsonPath, out, "")
	require.NoError(t, err)
	assert.Equal(t, out, savePath)

	encoded, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, original, encoded)
}

func TestDecodeFile_YAML(t *testing.T) {
	c := setupContainer(t, 5)
	dir := t.TempDir()
	original := testSave(t, 110)
	in := filepath.Join(dir, "slot.save")
	writeFile(t, in, original)

	yamlPath, err := decodeFile(c, in, "", "yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "slot.yaml"), yamlPath)

	// encoding next to the original replaces it, archiving the old bytes
	savePath, err := encodeFile(c, yamlPath, "", "")
	require.NoError(t, err)
	assert.Equal(t, in, savePath)

	encoded, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Equal(t, original, encoded)

	store, err := c.GetArchive()
	require.NoError(t, err)
	entries, _, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int32(110), entries[0].Version)
	assert.Equal(t, len(original), entries[0].Size)
}

func TestDecodeFile_FormatFromOutputPath(t *testing.T) {
	c := setupContainer(t, 5)
	dir := t.TempDir()
	in := filepath.Join(dir, "slot.save")
	writeFile(t, in, testSave(t, 153))

	out := filepath.Join(dir, "edited", "slot.yml")
	require.NoError(t, os.MkdirAll(filepath.Dir(out), 0750))
	_, err := decodeFile(c, in, out, "")
	require.NoError(t, err)

	text, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(text), "version: 153\n"))
}

func TestDecodeFile_Errors(t *testing.T) {
	c := setupContainer(t, 5)
	dir := t.TempDir()

	t.Run("missing input", func(t *testing.T) {
		_, err := decodeFile(c, filepath.Join(dir, "nope.save"), "", "")
		assert.Error(t, err)
	})

	t.Run("corrupt input", func(t *testing.T) {
		in := filepath.Join(dir, "bad.save")
		writeFile(t, in, []byte{0x01, 0x02, 0x03})
		_, err := decodeFile(c, in, "", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, save.ErrFormatMismatch)
		assert.NoFileExists(t, filepath.Join(dir, "bad.json"))
	})

	t.Run("output is input", func(t *testing.T) {
		in := filepath.Join(dir, "same.json")
		writeFile(t, in, testSave(t, 153))
		_, err := decodeFile(c, in, "", "json")
		assert.ErrorContains(t, err, "overwrite the input")
	})

	t.Run("unknown format", func(t *testing.T) {
		in := filepath.Join(dir, "fmt.save")
		writeFile(t, in, testSave(t, 153))
		_, err := decodeFile(c, in, "", "xml")
		assert.Error(t, err)
	})
}

func TestEncodeFile_Errors(t *testing.T) {
	c := setupContainer(t, 5)
	dir := t.TempDir()

	t.Run("no extension", func(t *testing.T) {
		in := filepath.Join(dir, "document")
		writeFile(t, in, []byte(`{}`))
		_, err := encodeFile(c, in, "", "")
		assert.Error(t, err)
	})

	t.Run("invalid document", func(t *testing.T) {
		in := filepath.Join(dir, "doc.json")
		writeFile(t, in, []byte(`{"version": 153}`))
		_, err := encodeFile(c, in, "", "")
		assert.ErrorIs(t, err, save.ErrInvalidDocument)
		assert.NoFileExists(t, filepath.Join(dir, "doc.save"))
	})

	t.Run("unsupported version", func(t *testing.T) {
		in := filepath.Join(dir, "old.json")
		writeFile(t, in, []byte(`{"version": 100}`))
		_, err := encodeFile(c, in, "", "")
		assert.ErrorIs(t, err, save.ErrUnsupportedVersion)
	})
}

func TestWriteOutput_ArchivesAndPrunes(t *testing.T) {
	c := setupContainer(t, 2)
	path := filepath.Join(t.TempDir(), "slot.save")

	for i := 0; i < 4; i++ {
		require.NoError(t, writeOutput(c, path, []byte{byte(i)}))
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{3}, data)
	assert.NoFileExists(t, path+".tmp")

	store, err := c.GetArchive()
	require.NoError(t, err)
	entries, _, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// the two newest overwritten contents survive
	first, err := store.Read(entries[0].ID)
	require.NoError(t, err)
	second, err := store.Read(entries[1].ID)
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, first.Data)
	assert.Equal(t, []byte{2}, second.Data)
	assert.Zero(t, first.Version)
}

func TestWriteOutput_ArchiveDisabled(t *testing.T) {
	c := di.NewContainer()
	cfg := config.DefaultConfig()
	cfg.Archive.Enabled = false
	require.NoError(t, c.Configure(cfg, io.Discard))

	path := filepath.Join(t.TempDir(), "slot.save")
	require.NoError(t, writeOutput(c, path, []byte("one")))
	require.NoError(t, writeOutput(c, path, []byte("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

// runCommand executes the root command against a fresh container and a
// config file in a temporary directory
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Archive.Dir = filepath.Join(dir, "archive")
	cfg.Server.APIKey = "0123456789abcdef"
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, config.SaveConfig(cfg, configPath))

	c := di.NewContainer()
	SetContainer(c)
	t.Cleanup(func() {
		c.Close()
		SetContainer(nil)
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVerifyCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.save")
	writeFile(t, good, testSave(t, 153))

	out, err := runCommand(t, "verify", good)
	require.NoError(t, err)
	assert.Contains(t, out, "OK   "+good+": v1.53")

	bad := filepath.Join(dir, "bad.save")
	writeFile(t, bad, append(testSave(t, 153), 0xFF))

	out, err = runCommand(t, "verify", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")
	assert.Contains(t, out, "FAIL "+bad)
}

func TestInfoCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slot.save")
	writeFile(t, path, testSave(t, 146))

	out, err := runCommand(t, "info", path)
	require.NoError(t, err)
	assert.Contains(t, out, "versionString: \"1.46\"")
	assert.Contains(t, out, "playerName: master")
	assert.Contains(t, out, "gameDay: 12")
}

func TestConfigShowCommand(t *testing.T) {
	out, err := runCommand(t, "config", "show", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, out, "01234567...")
	assert.NotContains(t, out, "0123456789abcdef")
	assert.Contains(t, out, "level: debug")
}

func TestBackupCommands(t *testing.T) {
	out, err := runCommand(t, "backup", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No backups")

	_, err = runCommand(t, "backup", "restore", "not-an-id")
	assert.ErrorContains(t, err, "invalid backup ID")
}

func TestSameFile(t *testing.T) {
	assert.True(t, sameFile("a/b.json", "a/./b.json"))
	assert.True(t, sameFile("a/../b.json", "b.json"))
	assert.False(t, sameFile("a/b.json", "a/b.save"))
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "********", maskKey("short"))
	assert.Equal(t, "abcdefgh...", maskKey("abcdefghijklmnop"))
}

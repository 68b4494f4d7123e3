package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sub", "session.json")

	store, err := NewFileStore(path, zerolog.Nop())
	require.NoError(t, err)

	_, err = store.Get(ctx, "url")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "url", []byte(`"ref"`)))
	require.NoError(t, store.Set(ctx, "qaData", []byte(`[]`)))

	reopened, err := NewFileStore(path, zerolog.Nop())
	require.NoError(t, err)
	v, err := reopened.Get(ctx, "url")
	require.NoError(t, err)
	assert.JSONEq(t, `"ref"`, string(v))

	require.NoError(t, reopened.Delete(ctx, "url", "missing"))
	_, err = reopened.Get(ctx, "url")
	assert.ErrorIs(t, err, ErrNotFound)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_RejectsInvalidJSON(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "session.json"), zerolog.Nop())
	require.NoError(t, err)

	assert.Error(t, store.Set(context.Background(), "url", []byte(`not json`)))
}

func TestFileStore_CorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"resumes": [broken`), 0o600))

	var logs bytes.Buffer
	store, err := NewFileStore(path, zerolog.New(&logs))
	require.NoError(t, err)

	_, err = store.Get(ctx, "url")
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.Empty(t, logs.String())

	// writing moves the unreadable file aside and starts a new one
	require.NoError(t, store.Set(ctx, "url", []byte(`"fresh"`)))
	v, err := store.Get(ctx, "url")
	require.NoError(t, err)
	assert.JSONEq(t, `"fresh"`, string(v))

	backup, err := os.ReadFile(path + ".corrupt")
	require.NoError(t, err)
	assert.Equal(t, `{"resumes": [broken`, string(backup))
	assert.Contains(t, logs.String(), `"level":"warn"`)
	assert.Contains(t, logs.String(), path+".corrupt")
}

func TestFileStore_DeleteOnCorruptFileKeepsBackup(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o600))

	store, err := NewFileStore(path, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "url", "extractedText", "qaData"))
	assert.FileExists(t, path+".corrupt")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestOpen_FileSchemes(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "bare path", url: filepath.Join(dir, "a.json"), want: filepath.Join(dir, "a.json")},
		{name: "file url", url: "file://" + filepath.Join(dir, "b.json"), want: filepath.Join(dir, "b.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := Open(ctx, tt.url, zerolog.Nop())
			require.NoError(t, err)
			defer store.Close()

			fs, ok := store.(*FileStore)
			require.True(t, ok)
			assert.Equal(t, tt.want, fs.Path())
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, "", zerolog.Nop())
	assert.Error(t, err)

	_, err = Open(ctx, "s3://bucket/key", zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store scheme")
}

package indexnow_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Tito2912/prosperfactory.com/indexnow"

	"github.com/stretchr/testify/assert"
)

func TestLoadKey(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	keyFile := filepath.Join(dir, "key.txt")
	if err := os.WriteFile(keyFile, []byte("  filekey123\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	emptyFile := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(emptyFile, []byte(" \n\t"), 0o600); err != nil {
		t.Fatal(err)
	}

	type args struct {
		envKey  string
		keyFile string
	}
	tests := []struct {
		name    string
		args    args
		want    string
		wantErr error
	}{
		{
			name:    "env key wins and the file is never read",
			args:    args{envKey: "envkey", keyFile: filepath.Join(dir, "does-not-exist.txt")},
			want:    "envkey",
			wantErr: nil,
		},
		{
			name:    "env key is trimmed",
			args:    args{envKey: "  envkey \n", keyFile: keyFile},
			want:    "envkey",
			wantErr: nil,
		},
		{
			name:    "blank env key falls back to the file",
			args:    args{envKey: "   ", keyFile: keyFile},
			want:    "filekey123",
			wantErr: nil,
		},
		{
			name:    "missing key file",
			args:    args{envKey: "", keyFile: filepath.Join(dir, "does-not-exist.txt")},
			want:    "",
			wantErr: indexnow.ErrMissingKeyFile,
		},
		{
			name:    "empty key file",
			args:    args{envKey: "", keyFile: emptyFile},
			want:    "",
			wantErr: indexnow.ErrEmptyKeyFile,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := indexnow.LoadKey(tt.args.envKey, tt.args.keyFile)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), tt.args.keyFile)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

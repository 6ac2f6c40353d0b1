package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Fetch streams the payload into w.
type Fetch func(ctx context.Context, w io.Writer) error

// Save materializes a payload as dir/name. Bytes go to a temporary file in
// the same directory that is renamed into place only after the fetch and
// the flush both succeed. On failure the temporary file is removed.
func Save(ctx context.Context, dir, name string, fetch Fetch) (path string, err error) {
	if name == "" || filepath.Base(name) != name {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.part")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err = fetch(ctx, tmp); err != nil {
		return "", err
	}
	if err = ctx.Err(); err != nil {
		return "", err
	}
	if err = tmp.Sync(); err != nil {
		return "", err
	}
	if err = tmp.Close(); err != nil {
		return "", err
	}

	path = filepath.Join(dir, name)
	if err = os.Rename(tmpName, path); err != nil {
		return "", err
	}
	return path, nil
}

// Bytes adapts an in-memory payload to a Fetch.
func Bytes(data []byte) Fetch {
	return func(_ context.Context, w io.Writer) error {
		if len(data) == 0 {
			return errors.New("empty payload")
		}
		_, err := w.Write(data)
		return err
	}
}

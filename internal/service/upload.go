package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samandr77/docflow/internal/entity"
)

type Upload struct {
	screen

	documents Documents
	selected  string
}

func (s *Service) Upload() *Upload {
	u := &Upload{documents: s.documents}
	u.mount()

	return u
}

// Select keeps a file reference for Submit. An empty path clears it.
func (u *Upload) Select(path string) error {
	path = strings.TrimSpace(path)

	if path != "" {
		info, err := os.Stat(path)
		if err != nil {
			return entity.NewValidationError(fmt.Sprintf("Cannot open %s.", path))
		}

		if info.IsDir() {
			return entity.NewValidationError(fmt.Sprintf("%s is a directory.", path))
		}
	}

	return u.update(func() bool {
		changed := u.selected != path
		u.selected = path

		return changed
	})
}

func (u *Upload) Selected() string {
	var out string

	u.read(func() { out = u.selected })

	return out
}

// Submit sends the selected file as one multipart request. The selection
// survives a failure so the user can retry.
func (u *Upload) Submit(ctx context.Context) error {
	path := u.Selected()
	if path == "" {
		return entity.ErrNoFileSelected
	}

	f, err := os.Open(path)
	if err != nil {
		return fail(fmt.Errorf("open file: %w", err), MsgUploadFailed)
	}
	defer f.Close()

	if err := u.documents.UploadDocument(ctx, filepath.Base(path), f); err != nil {
		return fail(err, MsgUploadFailed)
	}

	return u.update(func() bool {
		u.selected = ""
		return true
	})
}

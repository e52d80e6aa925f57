package applications

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"careers-backend/internal/shared/storage/object"
)

// resumeNamespace groups uploaded resumes under one storage prefix.
const resumeNamespace = "resumes"

var allowedResumeExtensions = map[string]bool{
	".pdf": true,
}

// ResumeFile describes an uploaded file before storage.
type ResumeFile struct {
	FileName string
	Size     int64
	Reader   io.Reader
}

// ResumePolicy validates uploads against job policy and hands accepted files
// to the object store. Validation always precedes the write: a rejected file
// never touches storage.
type ResumePolicy struct {
	Store    object.ObjectStore
	MaxBytes int64
}

// Process enforces the gating matrix. required + no file fails; no file and
// not required yields no reference; otherwise the file is validated and
// stored, and its storage key returned.
func (p *ResumePolicy) Process(ctx context.Context, required bool, file *ResumeFile) (*string, error) {
	if file == nil {
		if required {
			return nil, ErrResumeRequired
		}
		return nil, nil
	}

	ext := strings.ToLower(filepath.Ext(file.FileName))
	if !allowedResumeExtensions[ext] {
		return nil, ErrInvalidFileType
	}
	if file.Size > p.MaxBytes {
		return nil, ErrFileTooLarge
	}

	key, _, _, err := p.Store.Save(ctx, resumeNamespace, file.FileName, file.Reader)
	if err != nil {
		return nil, err
	}
	return &key, nil
}

package applicationsrv

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/Abraxas-365/jobboard/pkg/config"
	"github.com/Abraxas-365/jobboard/pkg/fsx"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/recruitment/application"
	"github.com/google/uuid"
)

const pdfContentType = "application/pdf"

// ResumeInspector opens a PDF and counts its pages
type ResumeInspector interface {
	PageCount(data []byte) (int, error)
}

// StoredResume locates an uploaded resume in the media store
type StoredResume struct {
	Path string
	URL  kernel.BucketURL
}

// ResumeUploader validates resumes and stores them in the media store
type ResumeUploader struct {
	fileSystem fsx.FileSystem
	inspector  ResumeInspector
	cfg        config.UploadConfig
}

// NewResumeUploader creates a new resume uploader
func NewResumeUploader(fileSystem fsx.FileSystem, inspector ResumeInspector, cfg config.UploadConfig) *ResumeUploader {
	if cfg.ResumeFolder == "" {
		cfg.ResumeFolder = "resumes"
	}
	return &ResumeUploader{
		fileSystem: fileSystem,
		inspector:  inspector,
		cfg:        cfg,
	}
}

// Validate checks type, size and, for PDFs, that the document opens within the page limit
func (u *ResumeUploader) Validate(file *application.ResumeFile) (string, error) {
	contentType := normalizeContentType(file.ContentType)
	if !u.isAllowed(contentType) {
		return "", application.ErrInvalidFileType().
			WithDetail("content_type", file.ContentType).
			WithDetail("allowed", u.cfg.AllowedTypes)
	}

	if u.cfg.MaxResumeBytes > 0 && file.Size() > u.cfg.MaxResumeBytes {
		return "", application.ErrFileSizeTooLarge().
			WithDetail("size", file.Size()).
			WithDetail("max_size", u.cfg.MaxResumeBytes)
	}

	if contentType == pdfContentType && u.inspector != nil {
		pages, err := u.inspector.PageCount(file.Data)
		if err != nil {
			return "", application.ErrUnreadableResume().WithCause(err)
		}
		if u.cfg.MaxResumePages > 0 && pages > u.cfg.MaxResumePages {
			return "", application.ErrResumeTooLong().
				WithMessage(fmt.Sprintf("Resume has %d pages, the limit is %d", pages, u.cfg.MaxResumePages)).
				WithDetail("pages", pages).
				WithDetail("max_pages", u.cfg.MaxResumePages)
		}
	}

	return contentType, nil
}

// Upload validates the file and writes it under the resume folder
func (u *ResumeUploader) Upload(ctx context.Context, userID kernel.UserID, file *application.ResumeFile) (*StoredResume, error) {
	contentType, err := u.Validate(file)
	if err != nil {
		return nil, err
	}

	path := u.fileSystem.Join(u.cfg.ResumeFolder, userID.String(), uuid.NewString()+resumeExtension(file.Filename, contentType))

	if err := u.fileSystem.WriteFile(ctx, path, bytes.NewReader(file.Data), contentType); err != nil {
		logx.Errorf("Resume upload failed for user %s: %v", userID, err)
		return nil, application.ErrResumeUploadFailed().
			WithCause(err).
			WithDetail("path", path)
	}

	logx.Infof("Stored resume for user %s at %s (%d bytes)", userID, path, file.Size())
	return &StoredResume{Path: path, URL: kernel.BucketURL(u.fileSystem.URL(path))}, nil
}

// Discard removes a resume that nothing references. Failures are only logged.
func (u *ResumeUploader) Discard(ctx context.Context, stored *StoredResume) {
	if stored == nil {
		return
	}
	if err := u.fileSystem.DeleteFile(ctx, stored.Path); err != nil {
		logx.Warnf("Failed to remove orphaned resume %s: %v", stored.Path, err)
	}
}

func (u *ResumeUploader) isAllowed(contentType string) bool {
	for _, allowed := range u.cfg.AllowedTypes {
		if strings.EqualFold(allowed, contentType) {
			return true
		}
	}
	return false
}

func normalizeContentType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}

func resumeExtension(filename, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" && len(ext) <= 6 {
		return ext
	}
	switch contentType {
	case pdfContentType:
		return ".pdf"
	case "application/msword":
		return ".doc"
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return ".docx"
	}
	return ""
}

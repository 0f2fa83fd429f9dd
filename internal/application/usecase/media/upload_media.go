package media

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/minhtran/feedgram/internal/application/service"
	"github.com/minhtran/feedgram/pkg/apperror"
	"github.com/minhtran/feedgram/pkg/logger"
)

var allowedExt = map[string]struct{}{
	"png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "webp": {},
}

var mimeToExt = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

type UploadMediaUseCase struct {
	uploader service.Uploader
	logger   logger.Logger
}

func NewUploadMediaUseCase(uploader service.Uploader, log logger.Logger) *UploadMediaUseCase {
	return &UploadMediaUseCase{uploader: uploader, logger: log}
}

type UploadInput struct {
	File     io.Reader
	Filename string
	MIMEType string
}

// Execute validates the image type by extension first, MIME type second,
// and stores it under a random public id.
func (uc *UploadMediaUseCase) Execute(ctx context.Context, input UploadInput) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(input.Filename)), ".")
	if _, ok := allowedExt[ext]; !ok {
		ext = mimeToExt[strings.ToLower(input.MIMEType)]
	}
	if _, ok := allowedExt[ext]; !ok {
		return "", apperror.NewValidation("Unsupported file type.",
			apperror.FieldError{Field: "file", Reason: "invalid_type"})
	}

	url, err := uc.uploader.Upload(ctx, input.File, "feedgram", uuid.NewString())
	if err != nil {
		return "", apperror.NewInternal("failed to store upload", err)
	}
	return url, nil
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mediaUC "github.com/minhtran/feedgram/internal/application/usecase/media"
	"github.com/minhtran/feedgram/pkg/apperror"
)

type MediaHandler struct {
	uploadUseCase *mediaUC.UploadMediaUseCase
}

func NewMediaHandler(uc *mediaUC.UploadMediaUseCase) *MediaHandler {
	return &MediaHandler{uploadUseCase: uc}
}

func (h *MediaHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewValidation("A file is required.",
			apperror.FieldError{Field: "file", Reason: "required"}))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to read upload", err))
		return
	}
	defer file.Close()

	url, err := h.uploadUseCase.Execute(c.Request.Context(), mediaUC.UploadInput{
		File:     file,
		Filename: fileHeader.Filename,
		MIMEType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

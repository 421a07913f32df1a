package handler

import (
	"io"
	"path/filepath"
	"strings"

	"jobport/internal/delivery/http/middleware"
	ucapplication "jobport/internal/usecase/application"

	"github.com/gofiber/fiber/v3"
)

// Resumes are PDF only and capped at 5 MB, checked at the edge before any
// bytes reach the document store.
const maxResumeSize = 5 * 1024 * 1024

// resumeFileFromRequest reads the optional multipart "resume" file. A
// missing file yields (nil, nil); routes decide whether that is an error.
func resumeFileFromRequest(c fiber.Ctx) (*ucapplication.Upload, error) {
	fh, err := c.FormFile("resume")
	if err != nil || fh == nil {
		return nil, nil
	}

	if fh.Size > maxResumeSize {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Resume must be 5MB or smaller", nil, nil)
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Resume must be a pdf file", nil, nil)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Could not read resume file", nil, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxResumeSize+1))
	if err != nil {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Could not read resume file", nil, err)
	}
	if len(data) > maxResumeSize {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Resume must be 5MB or smaller", nil, nil)
	}

	return &ucapplication.Upload{
		Data:     data,
		MimeType: "application/pdf",
		Filename: fh.Filename,
	}, nil
}

// Profile photos take the common web image formats, same 5 MB cap.
var imageMimeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

const maxImageSize = 5 * 1024 * 1024

// imageFileFromRequest reads the optional multipart "image" file. A missing
// file yields (nil, nil).
func imageFileFromRequest(c fiber.Ctx) (*ucapplication.Upload, error) {
	fh, err := c.FormFile("image")
	if err != nil || fh == nil {
		return nil, nil
	}

	if fh.Size > maxImageSize {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Image must be 5MB or smaller", nil, nil)
	}
	mime, ok := imageMimeByExt[strings.ToLower(filepath.Ext(fh.Filename))]
	if !ok {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Only jpeg, jpg, png, gif and webp images are allowed", nil, nil)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Could not read image file", nil, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageSize+1))
	if err != nil {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Could not read image file", nil, err)
	}
	if len(data) > maxImageSize {
		return nil, middleware.NewAppError(fiber.StatusBadRequest, "Image must be 5MB or smaller", nil, nil)
	}

	return &ucapplication.Upload{
		Data:     data,
		MimeType: mime,
		Filename: fh.Filename,
	}, nil
}

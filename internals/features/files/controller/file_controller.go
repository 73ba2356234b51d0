package controller

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	helper "kantorku_backend/internals/helpers"
	helperAuth "kantorku_backend/internals/helpers/auth"
	helperOSS "kantorku_backend/internals/helpers/oss"
)

// Upload generik untuk lampiran bebas (mis. lampiran kegiatan atau
// laporan disposisi); hasilnya disimpan klien lalu dikirim balik
// sebagai payload lampiran pada entitas terkait.
type FileController struct {
	Blob helperOSS.BlobService
}

func NewFileController(blob helperOSS.BlobService) *FileController {
	return &FileController{Blob: blob}
}

var validateFile = validator.New()

var dirPattern = regexp.MustCompile(`^[a-z0-9_/-]{1,60}$`)

// POST /files  (multipart "file", opsional field "dir")
func (h *FileController) Upload(c *fiber.Ctx) error {
	if _, err := helperAuth.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Field file wajib diisi")
	}

	dir := strings.TrimSpace(c.FormValue("dir"))
	if dir == "" {
		dir = "umum"
	}
	if !dirPattern.MatchString(dir) || strings.Contains(dir, "..") {
		return helper.JsonError(c, fiber.StatusBadRequest, "dir tidak valid")
	}

	publicURL, objectKey, contentType, err := h.Blob.UploadDocument(c.UserContext(), dir, fh)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "File terunggah", fiber.Map{
		"url":          publicURL,
		"object_key":   objectKey,
		"nama":         fh.Filename,
		"ukuran":       fh.Size,
		"content_type": contentType,
	})
}

// DELETE /files  (json {url})
func (h *FileController) Delete(c *fiber.Ctx) error {
	if _, err := helperAuth.GetUserIDFromToken(c); err != nil {
		return helper.FromFiberError(c, err)
	}

	var req struct {
		URL string `json:"url" validate:"required,url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateFile.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	if err := h.Blob.DeleteByPublicURL(c.UserContext(), req.URL); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "File dihapus", fiber.Map{"url": req.URL})
}

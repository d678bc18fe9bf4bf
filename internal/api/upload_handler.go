package api

import (
	"os"
	"path"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Pawandasila/ai-image-editor/internal/s3"
)

type UploadHandler struct {
	presigner *s3.ImagePresigner
	validate  *validator.Validate
}

func NewUploadHandler(presigner *s3.ImagePresigner) *UploadHandler {
	return &UploadHandler{
		presigner: presigner,
		validate:  validator.New(),
	}
}

type PresignUploadRequest struct {
	FileName    string `json:"file_name" validate:"required"`
	ContentType string `json:"content_type" validate:"required,oneof=image/png image/jpeg image/webp"`
}

// PresignUpload hands the editor a short-lived PUT URL for an original or
// thumbnail image, plus the URL the object will live at once uploaded.
func (h *UploadHandler) PresignUpload(c *fiber.Ctx) error {
	user, err := GetCurrentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var req PresignUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input", "details": err.Error()})
	}

	objectKey := "project-images/" + user.ID.String() + "/" + uuid.New().String() + path.Ext(req.FileName)

	uploadURL, err := h.presigner.GeneratePresignedUploadURL(objectKey, req.ContentType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not generate upload URL"})
	}

	finalImageURL := os.Getenv("S3_ENDPOINT") + "/" + h.presigner.BucketName + "/" + objectKey

	return c.JSON(fiber.Map{
		"upload_url":      uploadURL,
		"final_image_url": finalImageURL,
	})
}

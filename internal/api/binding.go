package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"

	"github.com/pageza/recipebox/backend/internal/service"
)

const (
	imageField   = "recipeImg"
	maxImageSize = 10 << 20
)

var errBadBody = errors.New("invalid request body")

// bindRecipe fills dst from a JSON body or from multipart/form fields. Form
// uploads may carry a recipeImg file part, which is returned.
func bindRecipe(c *gin.Context, dst interface{}) (*service.Image, error) {
	if c.ContentType() != binding.MIMEMultipartPOSTForm && c.ContentType() != binding.MIMEPOSTForm {
		if err := c.ShouldBindJSON(dst); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadBody, err)
		}
		return nil, nil
	}

	if err := c.ShouldBind(dst); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadBody, err)
	}
	return readImage(c)
}

// readImage returns the uploaded recipe image, or nil when none was sent.
func readImage(c *gin.Context) (*service.Image, error) {
	header, err := c.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadBody, err)
	}
	if header.Size > maxImageSize {
		return nil, service.NewValidationError(imageField, "must be at most 10MB")
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadBody, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadBody, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) > maxImageSize {
		return nil, service.NewValidationError(imageField, "must be at most 10MB")
	}
	if mt := mimetype.Detect(data); !strings.HasPrefix(mt.String(), "image/") {
		return nil, service.NewValidationError(imageField, "must be an image")
	}
	return &service.Image{Data: data, Filename: header.Filename}, nil
}

// formList accepts a list sent as repeated form fields or as one JSON array.
func formList(values []string) []string {
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var decoded []string
		if err := json.Unmarshal([]byte(values[0]), &decoded); err == nil {
			return decoded
		}
	}
	return values
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	return id, err == nil
}

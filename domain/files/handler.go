package files

import (
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emergent-company/atlas/domain/catalog"
	"github.com/emergent-company/atlas/pkg/apperror"
	"github.com/emergent-company/atlas/pkg/paging"
)

// Handler handles HTTP requests for implementation files
type Handler struct {
	svc   *Service
	pager *paging.Parser
}

// NewHandler creates a new file handler
func NewHandler(svc *Service, pager *paging.Parser) *Handler {
	return &Handler{svc: svc, pager: pager}
}

func ids(c echo.Context) (string, string, error) {
	implementationID, err := catalog.ParamID(c, "id")
	if err != nil {
		return "", "", err
	}
	fileID, err := catalog.ParamID(c, "fileId")
	if err != nil {
		return "", "", err
	}
	return implementationID, fileID, nil
}

func (h *Handler) List(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	req, err := h.pager.Parse(c, catalog.FileSort)
	if err != nil {
		return err
	}
	page, err := h.svc.List(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page.WithLinks(c.Request().URL))
}

func (h *Handler) Get(c echo.Context) error {
	id, fileID, err := ids(c)
	if err != nil {
		return err
	}
	f, err := h.svc.Get(c.Request().Context(), id, fileID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

// Upload stores a file for an implementation
// @Summary      Upload implementation file
// @Description  Uploading a file name that already exists replaces its content and returns 200
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Implementation ID (UUID)"
// @Param        file formData file true "File content"
// @Success      201 {object} catalog.ImplementationFile
// @Success      200 {object} catalog.ImplementationFile "Existing file replaced"
// @Failure      400 {object} apperror.Error "Missing file"
// @Failure      404 {object} apperror.Error "Implementation not found"
// @Failure      503 {object} apperror.Error "Storage not configured"
// @Router       /api/v1/implementations/{id}/files [post]
func (h *Handler) Upload(c echo.Context) error {
	id, err := catalog.ParamID(c, "id")
	if err != nil {
		return err
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return apperror.NewValidation("file", "multipart field \"file\" is required").WithInternal(err)
	}
	src, err := fh.Open()
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("cannot read uploaded file").WithInternal(err)
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return apperror.ErrBadRequest.WithMessage("cannot read uploaded file").WithInternal(err)
	}

	mimeType := fh.Header.Get(echo.HeaderContentType)
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	f, created, err := h.svc.Upload(c.Request().Context(), id, Upload{
		Name:     fh.Filename,
		MimeType: mimeType,
		Data:     data,
	})
	if err != nil {
		return err
	}
	if !created {
		return c.JSON(http.StatusOK, f)
	}
	return c.JSON(http.StatusCreated, f)
}

// Content streams the stored file
// @Summary      Download implementation file content
// @Tags         files
// @Produce      octet-stream
// @Param        id path string true "Implementation ID (UUID)"
// @Param        fileId path string true "File ID (UUID)"
// @Success      200
// @Failure      404 {object} apperror.Error "File or content not found"
// @Failure      503 {object} apperror.Error "Storage not configured"
// @Router       /api/v1/implementations/{id}/files/{fileId}/content [get]
func (h *Handler) Content(c echo.Context) error {
	id, fileID, err := ids(c)
	if err != nil {
		return err
	}
	f, body, err := h.svc.Content(c.Request().Context(), id, fileID)
	if err != nil {
		return err
	}
	defer body.Close()

	contentType := f.MimeType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", f.Name))
	return c.Stream(http.StatusOK, contentType, body)
}

func (h *Handler) Delete(c echo.Context) error {
	id, fileID, err := ids(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id, fileID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/SextoAndar/sexto-andar-auth/internal/core/ports"
)

type ProfileHandler struct {
	accountService ports.AccountService
}

func NewProfileHandler(accountService ports.AccountService) *ProfileHandler {
	return &ProfileHandler{accountService: accountService}
}

// UploadPicture stores or replaces the caller's profile picture.
//
// @Summary      Upload a profile picture
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Image file (jpeg, png, webp; max 2 MiB)"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/profile/picture [post]
func (h *ProfileHandler) UploadPicture(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read file")
	}

	contentType := fileHeader.Header.Get(echo.HeaderContentType)
	if err := h.accountService.SetProfilePicture(c.Request().Context(), identity.ID, data, contentType); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Profile picture updated"})
}

// GetPicture serves an account's profile picture. Pictures are public.
//
// @Summary      Get a profile picture
// @Tags         profile
// @Produce      image/jpeg
// @Param        id   path  string  true  "Account id"
// @Success      200  {file}    binary
// @Failure      404  {object}  errorResponse
// @Router       /auth/profile/picture/{id} [get]
func (h *ProfileHandler) GetPicture(c echo.Context) error {
	data, contentType, err := h.accountService.GetProfilePicture(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, contentType, data)
}

// DeletePicture removes the caller's profile picture.
//
// @Summary      Delete the current profile picture
// @Tags         profile
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/profile/picture [delete]
func (h *ProfileHandler) DeletePicture(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.accountService.DeleteProfilePicture(c.Request().Context(), identity.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Profile picture removed"})
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/SextoAndar/sexto-andar-auth/internal/api/metrics"
	"github.com/SextoAndar/sexto-andar-auth/internal/core/domain"
	"github.com/SextoAndar/sexto-andar-auth/internal/core/ports"
)

type AdminHandler struct {
	adminService ports.AdminService
}

func NewAdminHandler(adminService ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// CreateAdmin creates a new ADMIN account on behalf of the calling admin.
//
// @Summary      Create an admin account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Admin details"
// @Success      201   {object}  accountResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/admin/create-admin [post]
func (h *AdminHandler) CreateAdmin(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.adminService.CreateAdmin(c.Request().Context(), identity, ports.RegisterInput{
		Username:    req.Username,
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		metrics.AdminMutationsTotal.WithLabelValues("create_admin", "denied").Inc()
		return err
	}

	metrics.AdminMutationsTotal.WithLabelValues("create_admin", "success").Inc()
	metrics.RegistrationsTotal.WithLabelValues(string(domain.RoleAdmin)).Inc()
	return c.JSON(http.StatusCreated, newAccountResponse(account))
}

// DeleteAdmin removes another admin account.
//
// @Summary      Delete an admin account
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Target admin id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/admin/delete-admin/{id} [delete]
func (h *AdminHandler) DeleteAdmin(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.adminService.DeleteAdmin(c.Request().Context(), identity, c.Param("id")); err != nil {
		metrics.AdminMutationsTotal.WithLabelValues("delete_admin", "denied").Inc()
		return err
	}

	metrics.AdminMutationsTotal.WithLabelValues("delete_admin", "success").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Admin account deleted"})
}

// DeleteUser removes a user or property-owner account.
//
// @Summary      Delete a user account
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Target account id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.adminService.DeleteUser(c.Request().Context(), identity, c.Param("id")); err != nil {
		metrics.AdminMutationsTotal.WithLabelValues("delete_user", "denied").Inc()
		return err
	}

	metrics.AdminMutationsTotal.WithLabelValues("delete_user", "success").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "User account deleted"})
}

// ListUsers returns a paginated list of non-admin accounts.
//
// @Summary      List user and property-owner accounts
// @Tags         admin
// @Produce      json
// @Param        page  query     int  false  "Page number"  default(1)
// @Param        size  query     int  false  "Page size"    default(10)
// @Success      200   {object}  accountListResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /auth/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	result, err := h.adminService.ListUsers(c.Request().Context(), page, size)
	if err != nil {
		return err
	}

	items := make([]accountResponse, 0, len(result.Accounts))
	for i := range result.Accounts {
		items = append(items, newAccountResponse(&result.Accounts[i]))
	}

	pages := int((result.Total + int64(result.Size) - 1) / int64(result.Size))
	return c.JSON(http.StatusOK, accountListResponse{
		Items: items,
		Total: result.Total,
		Page:  result.Page,
		Size:  result.Size,
		Pages: pages,
	})
}

// GetUser returns a single non-admin account.
//
// @Summary      Get a user account by id
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Account id"
// @Success      200  {object}  accountResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /auth/admin/users/{id} [get]
func (h *AdminHandler) GetUser(c echo.Context) error {
	account, err := h.adminService.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newAccountResponse(account))
}

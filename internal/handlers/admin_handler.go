package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/printfolio/printfolio/internal/storage"
	"github.com/printfolio/printfolio/internal/utils"
)

type AdminHandler struct {
	admin storage.AdminClient
}

func NewAdminHandler(admin storage.AdminClient) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// GetStorageStats returns bucket usage figures for the admin dashboard
func (h *AdminHandler) GetStorageStats(c echo.Context) error {
	usage, err := h.admin.DataUsageInfo(c.Request().Context())
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "failed to fetch storage usage: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"usedSpace":   utils.FormatBytes(usage.ObjectsTotalSize),
		"objectCount": usage.ObjectsTotalCount,
		"bucketCount": usage.BucketsCount,
	})
}

package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Santini10/IC/internal/service"
	"github.com/Santini10/IC/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportSemesters 导出学期汇总
// GET /api/v1/export/semesters?format=xlsx|csv&campus=...
func (h *ExportHandler) ExportSemesters(c *gin.Context) {
	file, err := h.exportSvc.ExportSemesters(c.Request.Context(), bindFilterQuery(c), c.Query("format"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(file.Filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, file.ContentType, file.Data.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportUnsupportedFormat):
		response.BadRequest(c, response.CodeExportBadFormat, "Formato de exportação não suportado (use xlsx ou csv)")
	case errors.Is(err, service.ErrDashboardNoRecords):
		response.NotFound(c, response.CodeDashboardNoData, "Nenhum dado disponível na planilha")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.Error(c, http.StatusInternalServerError, response.CodeExportGenerateKO, "Falha ao gerar o arquivo de exportação")
	default:
		response.InternalError(c)
	}
}

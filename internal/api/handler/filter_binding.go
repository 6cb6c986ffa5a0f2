package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Santini10/IC/internal/dto"
	"github.com/Santini10/IC/internal/model"
	"github.com/Santini10/IC/pkg/response"
)

// appliedParam 表单提交标记：存在时，查询串中缺失的维度表示不选任何值
const appliedParam = "aplicado"

// bindFilterQuery 从查询串读取筛选条件（每个维度可重复出现）
//
// 没有 aplicado 时只覆盖查询串中出现的维度，其余维度取默认；
// 查询串中不含任何筛选参数时返回 nil，即默认选择。
func bindFilterQuery(c *gin.Context) *dto.FilterRequest {
	query := c.Request.URL.Query()
	_, applied := query[appliedParam]

	var req *dto.FilterRequest
	for _, d := range model.Dimensions {
		values, present := query[string(d)]
		if !present && !applied {
			continue
		}
		if req == nil {
			req = &dto.FilterRequest{}
		}
		if values == nil {
			values = []string{}
		}
		req.SetField(d, values)
	}
	if req == nil && applied {
		req = &dto.FilterRequest{}
	}
	return req
}

// handleBindError 请求体超出限制返回 413，其余返回 400
func handleBindError(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "Corpo da requisição muito grande")
		return
	}
	response.BadRequest(c, response.CodeBadRequest, "Parâmetros inválidos")
}

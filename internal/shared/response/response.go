package response

import (
	"go-staffhub/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 20

type PaginationMeta struct {
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
}

func NewPaginationMeta(total int64, page, pageSize int) PaginationMeta {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return PaginationMeta{Total: total, TotalPages: totalPages, Page: page, PageSize: pageSize}
}

// Paginate slices an already loaded list. Out-of-range pages yield an empty
// slice with the meta still describing the whole list.
func Paginate[T any](items []T, page, pageSize int) ([]T, PaginationMeta) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	start := min((page-1)*pageSize, len(items))
	end := min(start+pageSize, len(items))
	return items[start:end], NewPaginationMeta(int64(len(items)), page, pageSize)
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Envelope is the {ok, data, meta, error} shape of every API response.
type Envelope struct {
	Ok    bool            `json:"ok"`
	Data  any             `json:"data,omitempty"`
	Meta  *PaginationMeta `json:"meta,omitempty"`
	Error *ErrorBody      `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data any, meta *PaginationMeta) {
	c.JSON(status, Envelope{Ok: true, Data: data, Meta: meta})
}

func Error(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, Envelope{Error: &ErrorBody{Code: code, Message: message, Details: details}})
}

// Fail writes err through the apperror taxonomy. Errors outside it become a
// generic internal error.
func Fail(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

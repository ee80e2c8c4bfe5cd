package utils

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// SuccessResponse: конверт успешного ответа API
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse: конверт ошибки. Code машинно-читаемый, Message для человека
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// PaginatedResponse: страница списка с общим количеством
type PaginatedResponse struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

func Success(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(SuccessResponse{Success: true, Data: data})
}

func Created(c *fiber.Ctx, data interface{}) error {
	return Success(c, fiber.StatusCreated, data)
}

func Paginate(c *fiber.Ctx, data interface{}, total int64, page, pageSize int) error {
	return c.JSON(PaginatedResponse{
		Success:  true,
		Data:     data,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Error отвечает статусом и текстом err
func Error(c *fiber.Ctx, status int, err error) error {
	return CodedError(c, status, "", err.Error())
}

// CodedError отвечает ошибкой с машинно-читаемым кодом
func CodedError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(ErrorResponse{
		Success: false,
		Error:   http.StatusText(status),
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *fiber.Ctx, text string) error {
	return CodedError(c, fiber.StatusBadRequest, "", text)
}

func Unauthorized(c *fiber.Ctx, text string) error {
	return CodedError(c, fiber.StatusUnauthorized, "", text)
}

func NotFound(c *fiber.Ctx, text string) error {
	return CodedError(c, fiber.StatusNotFound, "", text)
}

func InternalServerError(c *fiber.Ctx, text string) error {
	return CodedError(c, fiber.StatusInternalServerError, "", text)
}

// SendXLSX отдает книгу Excel как вложение
func SendXLSX(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, XLSXContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

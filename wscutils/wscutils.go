// Package wscutils implements the standard request and response envelope
// for web services, request validation, and the error-type registry that
// maps error codes to message IDs.
package wscutils

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Request represents the standard structure of a request to the web service.
type Request struct {
	Data any `json:"data" binding:"required"`
}

// Response represents the standard structure of a response of the web service.
type Response struct {
	Status   string         `json:"status"`
	Data     any            `json:"data"`
	Messages []ErrorMessage `json:"messages"`
}

// ErrorMessage defines the format of the error part of the standard
// response object.
type ErrorMessage struct {
	MsgID   int      `json:"msgid"`
	ErrCode string   `json:"errcode"`
	Field   *string  `json:"field,omitempty"`
	Vals    []string `json:"vals,omitempty"`
}

// errorTypes maps an error code to its message ID. It is loaded once at
// startup via LoadErrorTypes.
var errorTypes map[string]int

// LoadErrorTypes loads the predefined error types from a YAML document.
func LoadErrorTypes(r io.Reader) {
	byteValue, err := io.ReadAll(r)
	if err != nil {
		log.Fatalf("Failed to read error types: %v", err)
	}

	if err := yaml.Unmarshal(byteValue, &errorTypes); err != nil {
		log.Panic(err)
	}
}

// WscValidate validates data according to its struct tag rules and returns
// a slice of ErrorMessage for any violations. Request-specific vals are
// supplied by the caller through getVals because this function cannot know
// them.
func WscValidate[T any](data T, getVals func(err validator.FieldError) []string) []ErrorMessage {
	var validationErrors []ErrorMessage

	validate := validator.New()

	if err := validate.Struct(data); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, err := range validationErrs {
				vals := getVals(err)
				field := err.Field()
				vErr := BuildErrorMessage(err.Tag(), &field, vals...)
				validationErrors = append(validationErrors, vErr)
			}
		}
	}
	return validationErrors
}

// BuildErrorMessage builds an ErrorMessage from an error code, looking up
// the matching message ID in the registry. Unknown codes fall back to the
// "unknown" error type.
func BuildErrorMessage(errcode string, fieldName *string, vals ...string) ErrorMessage {
	msgid, exists := errorTypes[errcode]
	if !exists {
		log.Printf("Unrecognized errcode: %s", errcode)
		msgid = errorTypes[ErrcodeUnknown]
	}

	return ErrorMessage{
		MsgID:   msgid,
		ErrCode: errcode,
		Field:   fieldName,
		Vals:    vals,
	}
}

// NewResponse creates a new web service response with the given status,
// data and messages.
func NewResponse(status string, data any, messages []ErrorMessage) *Response {
	return &Response{
		Status:   status,
		Data:     data,
		Messages: messages,
	}
}

// NewErrorResponse creates a standard error response carrying a single
// error message.
func NewErrorResponse(errcode string) *Response {
	return NewResponse(ErrorStatus, nil, []ErrorMessage{BuildErrorMessage(errcode, nil)})
}

// NewSuccessResponse creates a standard success response.
func NewSuccessResponse(data any) *Response {
	return NewResponse(SuccessStatus, data, nil)
}

// BindJSON binds incoming JSON data to the given request data structure,
// sending a standard error response if the payload is malformed.
func BindJSON(c *gin.Context, data any) error {
	req := Request{Data: data}
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidJsonError := BuildErrorMessage(ErrcodeInvalidJson, nil)
		c.JSON(http.StatusBadRequest, NewResponse(ErrorStatus, nil, []ErrorMessage{invalidJsonError}))
		return err
	}
	return nil
}

// SendSuccessResponse sends a JSON response.
func SendSuccessResponse(c *gin.Context, response *Response) {
	c.JSON(http.StatusOK, response)
}

// SendErrorResponse sends a JSON error response.
func SendErrorResponse(c *gin.Context, response *Response) {
	c.JSON(http.StatusBadRequest, response)
}

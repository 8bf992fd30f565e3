package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ValidationMiddleware handles request validation
type ValidationMiddleware struct {
	validator *validator.Validate
}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware() *ValidationMiddleware {
	v := validator.New()
	v.SetTagName("binding")

	v.RegisterValidation("not_empty", validateNotEmpty)
	v.RegisterValidation("valid_uuid", validateUUID)

	return &ValidationMiddleware{
		validator: v,
	}
}

// ValidateRequest validates the request body against the provided struct
// and stores the validated model in the context under "validated_body".
func (m *ValidationMiddleware) ValidateRequest(model interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		modelType := reflect.TypeOf(model)
		if modelType.Kind() == reflect.Ptr {
			modelType = modelType.Elem()
		}
		modelValue := reflect.New(modelType).Interface()

		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		if err := json.Unmarshal(bodyBytes, modelValue); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			c.Abort()
			return
		}

		if err := m.validator.Struct(modelValue); err != nil {
			var details []string
			if verrs, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range verrs {
					details = append(details, strings.ToLower(fe.Field())+" failed "+fe.Tag())
				}
			}
			log.Error("Request validation failed",
				zap.String("path", c.Request.URL.Path),
				zap.Strings("details", details))
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": details})
			c.Abort()
			return
		}

		c.Set("validated_body", modelValue)
		c.Next()
	}
}

func validateNotEmpty(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateUUID(fl validator.FieldLevel) bool {
	_, err := uuid.Parse(fl.Field().String())
	return err == nil
}

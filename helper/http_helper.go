package helper

import (
	"errors"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"changelog-api/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
	en_translations "gopkg.in/go-playground/validator.v9/translations/en"
)

const (
	codeTypeSuccess  = `SUCCESS`
	codeTypeInternal = `INTERNAL`
	messageInternal  = `internal server error`
)

// ResponseHelper ...
type ResponseHelper struct {
	C        *gin.Context
	Message  string
	Data     interface{}
	Code     int
	CodeType string
}

// HTTPHelper ...
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

// NewHTTPHelper builds a helper with an english validation translator.
func NewHTTPHelper() *HTTPHelper {
	locale := en.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	_ = en_translations.RegisterDefaultTranslations(validate, trans)

	return &HTTPHelper{
		Validate:   validate,
		Translator: trans,
	}
}

// GetStatusCode ...
// Map a domain error kind to the HTTP status sent with it.
func (u *HTTPHelper) GetStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *models.Error
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError
	}

	switch domainErr.Kind {
	case models.KindValueInvalid, models.KindValueMissing, models.KindResourcePermanent:
		return http.StatusBadRequest
	case models.KindResourceMissing:
		return http.StatusNotFound
	case models.KindResourceExisting:
		return http.StatusConflict
	case models.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// SetResponse ...
// Set response data.
func (u *HTTPHelper) SetResponse(c *gin.Context, message string, data interface{}, code int, codeType string) ResponseHelper {
	return ResponseHelper{c, message, data, code, codeType}
}

// SendError ...
// Send error response to consumers. Errors without a kind are logged by the
// request middleware and hidden from the client.
func (u *HTTPHelper) SendError(c *gin.Context, err error) {
	_ = c.Error(err)

	var domainErr *models.Error
	if !errors.As(err, &domainErr) {
		u.SendResponse(u.SetResponse(c, messageInternal, u.EmptyJsonMap(), http.StatusInternalServerError, codeTypeInternal))
		return
	}

	u.SendResponse(u.SetResponse(c, domainErr.Message, u.EmptyJsonMap(), u.GetStatusCode(err), string(domainErr.Kind)))
}

// SendMissingError ...
// Send a VALUE_MISSING response for a field absent from the request.
func (u *HTTPHelper) SendMissingError(c *gin.Context, message string) {
	u.SendResponse(u.SetResponse(c, message, u.EmptyJsonMap(), http.StatusBadRequest, string(models.KindValueMissing)))
}

// SendBadRequest ...
// Send bad request response to consumers.
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string) {
	u.SendResponse(u.SetResponse(c, message, u.EmptyJsonMap(), http.StatusBadRequest, string(models.KindValueInvalid)))
}

// SendValidationError ...
// Send validation error response to consumers.
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors) {
	errorResponse := map[string][]string{}
	errorTranslation := validationErrors.Translate(u.Translator)
	for _, err := range validationErrors {
		errKey := Underscore(err.Field())
		errorResponse[errKey] = append(errorResponse[errKey], errorTranslation[err.Namespace()])
	}

	kind := models.KindValueInvalid
	for _, err := range validationErrors {
		if err.Tag() == "required" {
			kind = models.KindValueMissing
			break
		}
	}

	c.JSON(http.StatusBadRequest, map[string]interface{}{
		"code":         http.StatusBadRequest,
		"code_type":    kind,
		"code_message": errorResponse,
		"data":         u.EmptyJsonMap(),
	})
}

// SendUnauthorizedError ...
// Send unauthorized response to consumers.
func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context, message string) {
	u.SendResponse(u.SetResponse(c, message, u.EmptyJsonMap(), http.StatusUnauthorized, string(models.KindUnauthorized)))
}

// SendNotFoundError ...
// Send not found response to consumers.
func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string) {
	u.SendResponse(u.SetResponse(c, message, u.EmptyJsonMap(), http.StatusNotFound, string(models.KindResourceMissing)))
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, message string, data interface{}) {
	u.SendResponse(u.SetResponse(c, message, data, http.StatusOK, codeTypeSuccess))
}

// SendCreated ...
// Send created response to consumers.
func (u *HTTPHelper) SendCreated(c *gin.Context, message string, data interface{}) {
	u.SendResponse(u.SetResponse(c, message, data, http.StatusCreated, codeTypeSuccess))
}

// SendResponse ...
// Send response. Code is used as the HTTP status.
func (u *HTTPHelper) SendResponse(res ResponseHelper) {
	if len(res.Message) == 0 {
		res.Message = `success`
	}

	res.C.JSON(res.Code, map[string]interface{}{
		"code":         res.Code,
		"code_type":    res.CodeType,
		"code_message": res.Message,
		"data":         res.Data,
	})
}

func (u *HTTPHelper) EmptyJsonMap() map[string]interface{} {
	return make(map[string]interface{})
}

// get pagination URL
func (u *HTTPHelper) GetPagingUrl(c *gin.Context, token string, pageSize int) string {
	r := c.Request
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	query := url.Values{}
	query.Set("page_size", strconv.Itoa(pageSize))
	if token != "" {
		query.Set("page_token", token)
	}

	return scheme + "://" + r.Host + r.URL.Path + "?" + query.Encode()
}

// Set pagination links for a keyset page. Missing tokens produce empty links.
func (u *HTTPHelper) GeneratePaging(c *gin.Context, previousToken, nextToken *string, pageSize int) map[string]interface{} {
	prevURL, nextURL := "", ""

	if previousToken != nil {
		prevURL = u.GetPagingUrl(c, *previousToken, pageSize)
	}
	if nextToken != nil {
		nextURL = u.GetPagingUrl(c, *nextToken, pageSize)
	}

	return map[string]interface{}{
		"first":    u.GetPagingUrl(c, "", pageSize),
		"previous": prevURL,
		"next":     nextURL,
	}
}

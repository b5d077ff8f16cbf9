// internal/handlers/common.go
package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/petpalooza-backend/internal/i18n"
	"github.com/javajoker/petpalooza-backend/internal/models"
	"github.com/javajoker/petpalooza-backend/internal/services"
	"github.com/javajoker/petpalooza-backend/internal/utils"
)

type mediaHolder interface {
	ResolveMedia(resolve models.MediaResolver)
}

// mediaList is satisfied by *T where T has a pointer-receiver ResolveMedia.
type mediaList[T any] interface {
	*T
	mediaHolder
}

// requestBaseURL is the scheme and host the client used to reach us.
func requestBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	host := c.Request.Host
	if fwd := c.GetHeader("X-Forwarded-Host"); fwd != "" {
		host = strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return scheme + "://" + host
}

func resolverFor(c *gin.Context, storage *services.StorageService) models.MediaResolver {
	return storage.Resolver(requestBaseURL(c))
}

func resolveOne(c *gin.Context, storage *services.StorageService, item mediaHolder) {
	item.ResolveMedia(resolverFor(c, storage))
}

func resolveAll[T any, PT mediaList[T]](c *gin.Context, storage *services.StorageService, items []T) {
	resolve := resolverFor(c, storage)
	for i := range items {
		PT(&items[i]).ResolveMedia(resolve)
	}
}

// parseID reads a numeric path parameter. Non-numeric ids never match a row, so they answer 404.
func parseID(c *gin.Context, param, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		utils.NotFoundResponse(c, resource)
		return 0, false
	}
	return uint(id), true
}

func optionalUserID(c *gin.Context) *uint {
	if id, ok := utils.GetUserIDFromContext(c); ok {
		return &id
	}
	return nil
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	return true
}

// respondError maps a service error onto the response envelope. resource picks
// the not-found message.
func respondError(c *gin.Context, err error, resource string) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrValidation):
		if details := utils.GetValidationErrors(err); len(details) > 0 {
			utils.ValidationErrorResponse(c, details)
			return
		}
		utils.BadRequestResponse(c, serviceMessage(err, services.ErrValidation), nil)
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case errors.Is(err, services.ErrUnauthorized):
		utils.UnauthorizedResponse(c, serviceMessage(err, services.ErrUnauthorized))
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, serviceMessage(err, services.ErrForbidden))
	case errors.Is(err, services.ErrConflict):
		utils.ConflictResponse(c, serviceMessage(err, services.ErrConflict))
	case errors.Is(err, services.ErrPaymentsDisabled):
		utils.ServiceUnavailableResponse(c, i18n.T(lang, i18n.KeyPaymentDisabled))
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}

// serviceMessage strips the sentinel prefix from a wrapped error.
func serviceMessage(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error())
	msg = strings.TrimPrefix(msg, ": ")
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}

func isUnauthorized(err error) bool {
	return errors.Is(err, services.ErrUnauthorized)
}

func isForbidden(err error) bool {
	return errors.Is(err, services.ErrForbidden)
}

package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-admin-api/internal/middleware"
	"github.com/noah-isme/school-admin-api/internal/models"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

func badRequest(err error, detail string) *appErrors.Error {
	return appErrors.Wrap(err, appErrors.ErrBadRequest.Code, appErrors.ErrBadRequest.Status,
		appErrors.ErrBadRequest.Message+": "+detail)
}

func claimsFromContext(c *gin.Context) (*models.Claims, error) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return nil, appErrors.ErrUnauthorized
	}
	return claims, nil
}

func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return badRequest(err, "неверное тело запроса")
	}
	return nil
}

func pathID(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, badRequest(err, fmt.Sprintf("неверный ИД %q", raw))
	}
	return id, nil
}

func queryInt64(c *gin.Context, key string) (*int64, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil, badRequest(err, fmt.Sprintf("параметр %s должен быть целым числом", key))
	}
	return &value, nil
}

func queryInt(c *gin.Context, key string) (*int, error) {
	value, err := queryInt64(c, key)
	if err != nil || value == nil {
		return nil, err
	}
	v := int(*value)
	return &v, nil
}

func queryInt16(c *gin.Context, key string) (*int16, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 16)
	if err != nil {
		return nil, badRequest(err, fmt.Sprintf("параметр %s должен быть целым числом", key))
	}
	v := int16(value)
	return &v, nil
}

// queryIDs collects an id list given as repeated keys, comma-separated
// values or both. Every alias in keys contributes to the same list.
func queryIDs(c *gin.Context, keys ...string) ([]int64, error) {
	var ids []int64
	for _, key := range keys {
		for _, raw := range c.QueryArray(key) {
			for _, part := range strings.Split(raw, ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				id, err := strconv.ParseInt(part, 10, 64)
				if err != nil {
					return nil, badRequest(err, fmt.Sprintf("параметр %s должен содержать список ИД", key))
				}
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

func queryTime(c *gin.Context, key string) (*time.Time, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, badRequest(err, fmt.Sprintf("параметр %s должен быть временем в формате RFC3339", key))
	}
	return &value, nil
}

func pageRequest(c *gin.Context) (models.PageRequest, error) {
	count, err := queryInt(c, "count")
	if err != nil {
		return models.PageRequest{}, err
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		return models.PageRequest{}, err
	}
	return models.PageRequest{Count: count, Offset: offset}, nil
}

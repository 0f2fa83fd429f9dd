package http

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/minhtran/feedgram/pkg/apperror"
)

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.NewValidation("Invalid " + key + ".")
	}
	return v, nil
}

func boolQuery(c *gin.Context, key string) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperror.NewValidation("Invalid " + key + ".")
	}
	return v, nil
}

// idsQuery parses a csv of ids. Capping the list is the search layer's job;
// here only syntax is validated.
func idsQuery(c *gin.Context, key string) ([]int64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, apperror.NewValidation("Invalid " + key + ".")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func idParam(c *gin.Context, key string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(key), 10, 64)
	if err != nil {
		return 0, apperror.NewValidation("Invalid " + key + ".")
	}
	return id, nil
}

package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kyc-co/synthforms/internal/generators"
	"github.com/kyc-co/synthforms/internal/models"
)

// querySeed reads the optional seed parameter. Missing means 0, a random seed.
func querySeed(c *gin.Context) (int64, error) {
	raw := c.Query("seed")
	if raw == "" {
		return 0, nil
	}
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", models.ErrInvalidSeed, raw)
	}
	return seed, nil
}

func queryBool(c *gin.Context, name string, def bool) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s parameter %q", name, raw)
	}
	return v, nil
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter %q", name, raw)
	}
	return v, nil
}

func queryDate(c *gin.Context, name string) (*models.Date, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter %q: expected YYYY-MM-DD", name, raw)
	}
	return &d, nil
}

// fieldParams reads the optional inputs of the single-field endpoint.
func fieldParams(c *gin.Context) (generators.FieldParams, error) {
	var p generators.FieldParams
	var err error

	p.IDType = models.IDType(c.Query("id_type"))
	if p.Colombian, err = queryBool(c, "colombian", true); err != nil {
		return p, err
	}
	if p.MinAge, err = queryInt(c, "min_age", 0); err != nil {
		return p, err
	}
	if p.MaxAge, err = queryInt(c, "max_age", 0); err != nil {
		return p, err
	}
	if p.Birthdate, err = queryDate(c, "birthdate"); err != nil {
		return p, err
	}
	if p.StartDate, err = queryDate(c, "start_date"); err != nil {
		return p, err
	}
	return p, nil
}

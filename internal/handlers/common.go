package handlers

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/agency_be/internal/validation"
)

type validationErr struct {
	errs validation.FieldErrors
}

func (e *validationErr) Error() string { return "Validation error" }

func validationFail(errs validation.FieldErrors) error {
	return &validationErr{errs: errs}
}

// ErrorHandler renders every error as {"message": ...}. Unknown errors are
// logged with their route and answered with a generic 500.
func ErrorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var ve *validationErr
		if errors.As(err, &ve) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation error",
				"errors":  ve.errs,
			})
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
		}

		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"route":  c.Route().Path,
			"path":   c.Path(),
		}).Error("request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal server error",
		})
	}
}

// bind parses the body into dst and validates it.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := validation.Struct(dst); errs != nil {
		return validationFail(errs)
	}
	return nil
}

// pathID parses a UUID path param. A malformed id names no record, so it
// yields the same 404 as a missing one.
func pathID(c *fiber.Ctx, param, notFound string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusNotFound, notFound)
	}
	return id, nil
}

// first loads dst by primary key, mapping a missing row to 404 notFound.
func first(db *gorm.DB, dst any, id uuid.UUID, notFound string) error {
	err := db.First(dst, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, notFound)
	}
	if err != nil {
		return fmt.Errorf("load %T %s: %w", dst, id, err)
	}
	return nil
}

// deleteByID removes the row and reports 404 notFound when nothing matched.
func deleteByID(db *gorm.DB, model any, id uuid.UUID, notFound string) error {
	res := db.Delete(model, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete %T %s: %w", model, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, notFound)
	}
	return nil
}

type page struct {
	Page  int
	Limit int
}

func (p page) Offset() int { return (p.Page - 1) * p.Limit }

func pagination(c *fiber.Ctx, defaultLimit int) page {
	p := page{Page: 1, Limit: defaultLimit}
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		p.Limit = v
	}
	return p
}

func (p page) Meta(total int64) fiber.Map {
	totalPages := int(math.Ceil(float64(total) / float64(p.Limit)))
	return fiber.Map{
		"total":           total,
		"page":            p.Page,
		"limit":           p.Limit,
		"totalPages":      totalPages,
		"hasNextPage":     p.Page < totalPages,
		"hasPreviousPage": p.Page > 1,
	}
}

// paged merges the pagination meta into a response body.
func paged(body fiber.Map, p page, total int64) fiber.Map {
	for k, v := range p.Meta(total) {
		body[k] = v
	}
	return body
}

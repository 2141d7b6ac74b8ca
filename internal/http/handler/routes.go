package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"personapi/internal/dto"
	"personapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Export routes are registered only when exportSvc is non-nil.
func RegisterRoutes(app *fiber.App, db *sql.DB, personSvc service.PersonService, exportSvc service.ExportService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	p := app.Group("/person")

	// Static segments first so they are not captured by /person/:id.
	p.Get("/children", FindAllChildren(personSvc))
	p.Get("/population/city", GetCitiesPopulation(personSvc))
	p.Get("/city/:city", FindPersonsByCity(personSvc))
	p.Get("/name/:name", FindPersonsByName(personSvc))
	p.Get("/ages/:from/:to", FindPersonsBetweenAge(personSvc))
	p.Get("/salary/:min/:max", FindEmployeeBySalary(personSvc))
	if exportSvc != nil {
		p.Post("/exports", ExportPersons(exportSvc))
		p.Get("/exports/:name", DownloadExport(exportSvc))
	}

	p.Post("", AddPerson(personSvc))
	p.Get("/:id", FindPersonByID(personSvc))
	p.Delete("/:id", RemovePerson(personSvc))
	p.Put("/:id/name/:name", UpdatePersonName(personSvc))
	p.Put("/:id/address", UpdatePersonAddress(personSvc))
}

// HealthCheck checks DB connectivity only.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness probe.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// AddPerson godoc
// @Summary Add a person, child or employee
// @Description Body "type" selects the variant. Responds false when the id is already taken.
// @Tags person
// @Accept json
// @Produce json
// @Param person body dto.EmployeeDto true "person (type: person|child|employee)"
// @Success 200 {boolean} boolean
// @Failure 400 {object} errorPayload
// @Router /person [post]
func AddPerson(svc service.PersonService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := dto.DecodeTransfer(c.Body())
		if err != nil {
			if errors.Is(err, dto.ErrUnknownType) {
				return writeServiceError(c, err)
			}
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if !fitsInt32(in) {
			return writeError(c, fiber.StatusBadRequest, "OUT_OF_RANGE", "integer fields must fit 32 bits")
		}
		added, err := svc.AddPerson(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(added)
	}
}

// FindPersonByID godoc
// @Summary Find a person by id
// @Tags person
// @Produce json
// @Param id path int true "person id"
// @Success 200 {object} dto.PersonDto
// @Failure 404 {object} errorPayload
// @Router /person/{id} [get]
func FindPersonByID(svc service.PersonService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		out, err := svc.FindPersonByID(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// RemovePerson godoc
// @Summary Delete a person and return it
// @Tags person
// @Produce json
// @Param id path int true "person id"
// @Success 200 {object} dto.PersonDto
// @Failure 404 {object} errorPayload
// @Router /person/{id} [delete]
func RemovePerson(svc service.PersonService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		out, err := svc.RemovePerson(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// UpdatePersonName godoc
// @Summary Rename a person
// @Tags person
// @Produce json
// @Param id path int true "person id"
// @Param name path string true "new name"
// @Success 200 {object} dto.PersonDto
// @Failure 404 {object} errorPayload
// @Router /person/{id}/name/{name} [put]
func UpdatePersonName(svc service.PersonService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		name, err := url.PathUnescape(c.Params("name"))
		if err != nil || name == "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_NAME", "invalid name")
		}
		out, err := svc.UpdatePersonName(c.UserContext(), id, name)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// UpdatePersonAddress godoc
// @Summary Replace a person's address
// @Tags person
// @Accept json
// @Produce json
// @Param id path int true "person id"
// @Param address body dto.AddressDto true "new address"
// @Success 200 {object} dto.PersonDto
// @Failure 404 {object} errorPayload
// @Router /person/{id}/address [put]
func UpdatePersonAddress(svc service.PersonService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var addr dto.AddressDto
		if err := json.Unmarshal(c.Body(), &addr); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if addr.Building < math.MinInt32 || addr.Building > math.MaxInt32 {
			return writeError(c, fiber.StatusBadRequest, "OUT_OF_RANGE", "integer fields must fit 32 bits")
		}
		out, err := svc.UpdatePersonAddress(c.UserContext(), id, addr)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// FindPersonsByCity godoc
// @Summary Persons living in a city (case-insensitive)
// @Tags person
// @Produce json
// @Param city path string true "city"
// @Success 200 {array} dto.PersonDto
// @Router /person/city/{city} [get]
func FindPersonsByCity(svc service.PersonService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		city, err := url.PathUnescape(c.Params("city"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_CITY", "invalid city")
		}
		out, err := svc.FindPersonsByCity(c.UserContext(), city)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// FindPersonsByName godoc
// @Summary Persons with a name (case-insensitive)
// @Tags person
// @Produce json
// @Param name path string true "name"
// @Success 200 {array} dto.PersonDto
// @Router /person/name/{name} [get]
func FindPersonsByName(svc service.PersonService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, err := url.PathUnescape(c.Params("name"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_NAME", "invalid name")
		}
		out, err := svc.FindPersonsByName(c.UserContext(), name)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// FindPersonsBetweenAge godoc
// @Summary Persons aged between from and to years, inclusive
// @Tags person
// @Produce json
// @Param from path int true "minimum age"
// @Param to path int true "maximum age"
// @Success 200 {array} dto.PersonDto
// @Router /person/ages/{from}/{to} [get]
func FindPersonsBetweenAge(svc service.PersonService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, err1 := parseInt32(c.Params("from"))
		to, err2 := parseInt32(c.Params("to"))
		if err1 != nil || err2 != nil || from < 0 || to < 0 || from > maxAge || to > maxAge {
			return writeError(c, fiber.StatusBadRequest, "INVALID_AGE", "ages must be integers between 0 and 1000")
		}
		out, err := svc.FindPersonsBetweenAge(c.UserContext(), from, to)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// GetCitiesPopulation godoc
// @Summary Population per city, largest first
// @Tags person
// @Produce json
// @Success 200 {array} dto.CityPopulationDto
// @Router /person/population/city [get]
func GetCitiesPopulation(svc service.PersonService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.GetCitiesPopulation(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// FindAllChildren godoc
// @Summary All children
// @Tags person
// @Produce json
// @Success 200 {array} dto.ChildDto
// @Router /person/children [get]
func FindAllChildren(svc service.PersonService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := svc.FindAllChildren(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// FindEmployeeBySalary godoc
// @Summary Employees with salary in [min, max]
// @Tags person
// @Produce json
// @Param min path int true "minimum salary"
// @Param max path int true "maximum salary"
// @Success 200 {array} dto.EmployeeDto
// @Router /person/salary/{min}/{max} [get]
func FindEmployeeBySalary(svc service.PersonService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		minSalary, err1 := parseInt32(c.Params("min"))
		maxSalary, err2 := parseInt32(c.Params("max"))
		if err1 != nil || err2 != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SALARY", "salary bounds must be 32-bit integers")
		}
		out, err := svc.FindEmployeeBySalary(c.UserContext(), minSalary, maxSalary)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// ExportPersons godoc
// @Summary Write a JSON snapshot of all persons to object storage
// @Tags export
// @Produce json
// @Success 201 {object} service.ExportResult
// @Router /person/exports [post]
func ExportPersons(svc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.ExportPersons(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// DownloadExport godoc
// @Summary Download a snapshot
// @Tags export
// @Produce json
// @Param name path string true "export file name"
// @Success 200 {file} file
// @Failure 404 {object} errorPayload
// @Router /person/exports/{name} [get]
func DownloadExport(svc service.ExportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, info, err := svc.OpenExport(c.UserContext(), c.Params("name"))
		if err != nil {
			return writeServiceError(c, err)
		}
		ct := info.ContentType
		if ct == "" {
			ct = fiber.MIMEApplicationJSON
		}
		c.Set(fiber.HeaderContentType, ct)
		return c.SendStream(rc, int(info.Size))
	}
}

// maxAge keeps the birth-date window inside the range PostgreSQL dates accept.
const maxAge = 1000

// parseInt32 parses s as a value that fits the INTEGER columns.
func parseInt32(s string) (int, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func parseID(c *fiber.Ctx) (int, bool) {
	id, err := parseInt32(c.Params("id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// fitsInt32 reports whether every integer field of in fits its INTEGER column.
func fitsInt32(in dto.Transfer) bool {
	b := in.Base()
	vals := []int{b.ID, b.Address.Building}
	if e, ok := in.(*dto.EmployeeDto); ok {
		vals = append(vals, e.Salary)
	}
	for _, v := range vals {
		if v < math.MinInt32 || v > math.MaxInt32 {
			return false
		}
	}
	return true
}

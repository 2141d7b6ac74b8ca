package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
	"time"

	"personapi/internal/model"
	"personapi/internal/repository"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PersonPostgres is a PostgreSQL implementation of repository.PersonRepository.
// All kinds share the persons table; dtype holds the discriminator.
type PersonPostgres struct {
	db DBTX
}

// NewPersonPostgres creates a new PersonPostgres repository.
func NewPersonPostgres(db DBTX) *PersonPostgres {
	return &PersonPostgres{db: db}
}

var _ repository.PersonRepository = (*PersonPostgres)(nil)

const personColumns = `id, dtype, name, birth_date, city, street, building, kindergarten, employer, salary`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(s rowScanner) (model.Person, error) {
	var (
		p            model.Person
		kind         string
		kindergarten sql.NullString
		employer     sql.NullString
		salary       sql.NullInt64
	)
	if err := s.Scan(
		&p.ID,
		&kind,
		&p.Name,
		&p.BirthDate,
		&p.Address.City,
		&p.Address.Street,
		&p.Address.Building,
		&kindergarten,
		&employer,
		&salary,
	); err != nil {
		return model.Person{}, err
	}

	p.Kind = model.Kind(kind)
	switch p.Kind {
	case model.KindPerson:
	case model.KindChild:
		p.Child = &model.ChildInfo{Kindergarten: kindergarten.String}
	case model.KindEmployee:
		p.Employee = &model.EmployeeInfo{Employer: employer.String, Salary: int(salary.Int64)}
	default:
		return model.Person{}, fmt.Errorf("person %d: unknown dtype %q", p.ID, kind)
	}
	return p, nil
}

// Save upserts p by id. The discriminator is written on insert only.
func (r *PersonPostgres) Save(ctx context.Context, p *model.Person) error {
	const q = `
		INSERT INTO persons (` + personColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			birth_date = EXCLUDED.birth_date,
			city = EXCLUDED.city,
			street = EXCLUDED.street,
			building = EXCLUDED.building,
			kindergarten = EXCLUDED.kindergarten,
			employer = EXCLUDED.employer,
			salary = EXCLUDED.salary
	`
	var (
		kindergarten sql.NullString
		employer     sql.NullString
		salary       sql.NullInt64
	)
	if p.Child != nil {
		kindergarten = sql.NullString{String: p.Child.Kindergarten, Valid: true}
	}
	if p.Employee != nil {
		employer = sql.NullString{String: p.Employee.Employer, Valid: true}
		salary = sql.NullInt64{Int64: int64(p.Employee.Salary), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, q,
		p.ID,
		string(p.Kind),
		p.Name,
		p.BirthDate,
		p.Address.City,
		p.Address.Street,
		p.Address.Building,
		kindergarten,
		employer,
		salary,
	)
	return err
}

// FindByID fetches a single person by its ID.
func (r *PersonPostgres) FindByID(ctx context.Context, id int) (*model.Person, error) {
	const q = `SELECT ` + personColumns + ` FROM persons WHERE id = $1`
	p, err := scanPerson(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PersonPostgres) ExistsByID(ctx context.Context, id int) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM persons WHERE id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Delete removes a person by ID. It does not return an error if the row does not exist.
func (r *PersonPostgres) Delete(ctx context.Context, id int) error {
	const q = `DELETE FROM persons WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *PersonPostgres) Count(ctx context.Context) (int64, error) {
	const q = `SELECT COUNT(*) FROM persons`
	var n int64
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PersonPostgres) FindByName(ctx context.Context, name string) iter.Seq2[model.Person, error] {
	const q = `SELECT ` + personColumns + ` FROM persons WHERE lower(name) = lower($1) ORDER BY id`
	return r.stream(ctx, q, name)
}

func (r *PersonPostgres) FindByCity(ctx context.Context, city string) iter.Seq2[model.Person, error] {
	const q = `SELECT ` + personColumns + ` FROM persons WHERE lower(city) = lower($1) ORDER BY id`
	return r.stream(ctx, q, city)
}

func (r *PersonPostgres) FindByBirthDateBetween(ctx context.Context, from, to time.Time) iter.Seq2[model.Person, error] {
	const q = `SELECT ` + personColumns + ` FROM persons WHERE birth_date BETWEEN $1 AND $2 ORDER BY id`
	return r.stream(ctx, q, from, to)
}

func (r *PersonPostgres) FindAllChildren(ctx context.Context) iter.Seq2[model.Person, error] {
	const q = `SELECT ` + personColumns + ` FROM persons WHERE dtype = $1 ORDER BY id`
	return r.stream(ctx, q, string(model.KindChild))
}

func (r *PersonPostgres) FindEmployeesBySalaryRange(ctx context.Context, minSalary, maxSalary int) iter.Seq2[model.Person, error] {
	const q = `SELECT ` + personColumns + ` FROM persons WHERE dtype = $1 AND salary BETWEEN $2 AND $3 ORDER BY id`
	return r.stream(ctx, q, string(model.KindEmployee), minSalary, maxSalary)
}

func (r *PersonPostgres) FindAll(ctx context.Context) iter.Seq2[model.Person, error] {
	const q = `SELECT ` + personColumns + ` FROM persons ORDER BY id`
	return r.stream(ctx, q)
}

// GetCitiesPopulation counts persons per city, largest first. Equal counts are ordered by city.
func (r *PersonPostgres) GetCitiesPopulation(ctx context.Context) ([]model.CityPopulation, error) {
	const q = `
		SELECT city, COUNT(*) AS population
		FROM persons
		GROUP BY city
		ORDER BY population DESC, city ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.CityPopulation, 0)
	for rows.Next() {
		var c model.CityPopulation
		if err := rows.Scan(&c.City, &c.Population); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// stream defers the query until the sequence is ranged over.
func (r *PersonPostgres) stream(ctx context.Context, q string, args ...any) iter.Seq2[model.Person, error] {
	return func(yield func(model.Person, error) bool) {
		rows, err := r.db.QueryContext(ctx, q, args...)
		if err != nil {
			yield(model.Person{}, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			p, err := scanPerson(rows)
			if err != nil {
				yield(model.Person{}, err)
				return
			}
			if !yield(p, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(model.Person{}, err)
		}
	}
}

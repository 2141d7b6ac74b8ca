package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"time"

	"personapi/internal/dto"
	"personapi/internal/model"
	"personapi/internal/repository"
)

var ErrPersonNotFound = errors.New("person not found")

var (
	readWrite = repository.TxOptions{}
	readOnly  = repository.TxOptions{ReadOnly: true}
)

// PersonService defines the use cases for persons, children and employees.
// Results are transfer objects whose concrete type matches the stored kind.
type PersonService interface {
	// AddPerson stores a new record of the kind matching the concrete type of in.
	// It returns false, without touching the stored record, when the id is taken.
	AddPerson(ctx context.Context, in dto.Transfer) (bool, error)

	FindPersonByID(ctx context.Context, id int) (dto.Transfer, error)

	// RemovePerson deletes the record and returns it as it was before deletion.
	RemovePerson(ctx context.Context, id int) (dto.Transfer, error)

	UpdatePersonName(ctx context.Context, id int, name string) (dto.Transfer, error)

	UpdatePersonAddress(ctx context.Context, id int, addr dto.AddressDto) (dto.Transfer, error)

	FindPersonsByCity(ctx context.Context, city string) ([]dto.Transfer, error)

	FindPersonsByName(ctx context.Context, name string) ([]dto.Transfer, error)

	// FindPersonsBetweenAge returns persons born within
	// [today - maxAge years, today - minAge years], both ends included.
	FindPersonsBetweenAge(ctx context.Context, minAge, maxAge int) ([]dto.Transfer, error)

	GetCitiesPopulation(ctx context.Context) ([]dto.CityPopulationDto, error)

	FindAllChildren(ctx context.Context) ([]dto.ChildDto, error)

	FindEmployeeBySalary(ctx context.Context, minSalary, maxSalary int) ([]dto.EmployeeDto, error)

	// InitializeFixtures inserts the seed records when the store is empty.
	// It reports whether anything was inserted.
	InitializeFixtures(ctx context.Context) (bool, error)
}

// Option customizes a personService.
type Option func(*personService)

// WithClock replaces time.Now, which anchors age calculations.
func WithClock(now func() time.Time) Option {
	return func(s *personService) { s.now = now }
}

// personService is a concrete implementation of PersonService.
type personService struct {
	tx  repository.Transactor
	now func() time.Time
}

// NewPersonService constructs a new PersonService.
func NewPersonService(tx repository.Transactor, opts ...Option) PersonService {
	s := &personService{tx: tx, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *personService) AddPerson(ctx context.Context, in dto.Transfer) (bool, error) {
	if _, err := dto.KindOf(in); err != nil {
		return false, err
	}

	var added bool
	err := s.tx.RunInTx(ctx, readWrite, func(repo repository.PersonRepository) error {
		exists, err := repo.ExistsByID(ctx, in.Base().ID)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		p, err := dto.ToEntity(in)
		if err != nil {
			return err
		}
		if err := repo.Save(ctx, &p); err != nil {
			return err
		}
		added = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

func (s *personService) FindPersonByID(ctx context.Context, id int) (dto.Transfer, error) {
	var out dto.Transfer
	err := s.tx.RunInTx(ctx, readOnly, func(repo repository.PersonRepository) error {
		p, err := findExisting(ctx, repo, id)
		if err != nil {
			return err
		}
		out = dto.FromEntity(*p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *personService) RemovePerson(ctx context.Context, id int) (dto.Transfer, error) {
	var out dto.Transfer
	err := s.tx.RunInTx(ctx, readWrite, func(repo repository.PersonRepository) error {
		p, err := findExisting(ctx, repo, id)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, p.ID); err != nil {
			return err
		}
		out = dto.FromEntity(*p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *personService) UpdatePersonName(ctx context.Context, id int, name string) (dto.Transfer, error) {
	return s.update(ctx, id, func(p *model.Person) {
		p.Name = name
	})
}

func (s *personService) UpdatePersonAddress(ctx context.Context, id int, addr dto.AddressDto) (dto.Transfer, error) {
	return s.update(ctx, id, func(p *model.Person) {
		p.Address = dto.AddressFromDto(addr)
	})
}

// update loads, mutates and writes the record back in one transaction.
func (s *personService) update(ctx context.Context, id int, mutate func(p *model.Person)) (dto.Transfer, error) {
	var out dto.Transfer
	err := s.tx.RunInTx(ctx, readWrite, func(repo repository.PersonRepository) error {
		p, err := findExisting(ctx, repo, id)
		if err != nil {
			return err
		}
		mutate(p)
		if err := repo.Save(ctx, p); err != nil {
			return err
		}
		out = dto.FromEntity(*p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *personService) FindPersonsByCity(ctx context.Context, city string) ([]dto.Transfer, error) {
	return readAll(ctx, s.tx, func(repo repository.PersonRepository) iter.Seq2[model.Person, error] {
		return repo.FindByCity(ctx, city)
	}, dto.FromEntity)
}

func (s *personService) FindPersonsByName(ctx context.Context, name string) ([]dto.Transfer, error) {
	return readAll(ctx, s.tx, func(repo repository.PersonRepository) iter.Seq2[model.Person, error] {
		return repo.FindByName(ctx, name)
	}, dto.FromEntity)
}

func (s *personService) FindPersonsBetweenAge(ctx context.Context, minAge, maxAge int) ([]dto.Transfer, error) {
	y, m, d := s.now().Date()
	today := model.Date(y, m, d)
	from := minusYears(today, maxAge)
	to := minusYears(today, minAge)

	return readAll(ctx, s.tx, func(repo repository.PersonRepository) iter.Seq2[model.Person, error] {
		return repo.FindByBirthDateBetween(ctx, from, to)
	}, dto.FromEntity)
}

func (s *personService) GetCitiesPopulation(ctx context.Context) ([]dto.CityPopulationDto, error) {
	var out []dto.CityPopulationDto
	err := s.tx.RunInTx(ctx, readOnly, func(repo repository.PersonRepository) error {
		cities, err := repo.GetCitiesPopulation(ctx)
		if err != nil {
			return err
		}
		out = make([]dto.CityPopulationDto, 0, len(cities))
		for _, c := range cities {
			out = append(out, dto.CityPopulationFromModel(c))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *personService) FindAllChildren(ctx context.Context) ([]dto.ChildDto, error) {
	return readAll(ctx, s.tx, func(repo repository.PersonRepository) iter.Seq2[model.Person, error] {
		return repo.FindAllChildren(ctx)
	}, dto.ToChildDto)
}

func (s *personService) FindEmployeeBySalary(ctx context.Context, minSalary, maxSalary int) ([]dto.EmployeeDto, error) {
	return readAll(ctx, s.tx, func(repo repository.PersonRepository) iter.Seq2[model.Person, error] {
		return repo.FindEmployeesBySalaryRange(ctx, minSalary, maxSalary)
	}, dto.ToEmployeeDto)
}

// findExisting maps a missing row to ErrPersonNotFound.
func findExisting(ctx context.Context, repo repository.PersonRepository, id int) (*model.Person, error) {
	p, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrPersonNotFound, id)
		}
		return nil, err
	}
	return p, nil
}

// readAll drains query inside a read-only transaction and converts every row.
func readAll[T any](
	ctx context.Context,
	tx repository.Transactor,
	query func(repo repository.PersonRepository) iter.Seq2[model.Person, error],
	convert func(model.Person) T,
) ([]T, error) {
	var persons []model.Person
	err := tx.RunInTx(ctx, readOnly, func(repo repository.PersonRepository) error {
		var err error
		persons, err = repository.Collect(query(repo))
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(persons))
	for _, p := range persons {
		out = append(out, convert(p))
	}
	return out, nil
}

// minusYears steps back whole calendar years, clamping Feb 29 to Feb 28.
func minusYears(d time.Time, years int) time.Time {
	y, m, day := d.Date()
	first := time.Date(y-years, m, 1, 0, 0, 0, 0, d.Location())
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(y-years, m, day, 0, 0, 0, 0, d.Location())
}

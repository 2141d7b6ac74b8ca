package mocks

import (
	"context"
	"iter"
	"time"

	"personapi/internal/model"
	"personapi/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockPersonRepository struct {
	mock.Mock
}

var _ repository.PersonRepository = (*MockPersonRepository)(nil)

// Seq returns a sequence yielding persons in order, then err if non-nil.
func Seq(err error, persons ...model.Person) iter.Seq2[model.Person, error] {
	return func(yield func(model.Person, error) bool) {
		for _, p := range persons {
			if !yield(p, nil) {
				return
			}
		}
		if err != nil {
			yield(model.Person{}, err)
		}
	}
}

func (m *MockPersonRepository) Save(ctx context.Context, p *model.Person) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPersonRepository) FindByID(ctx context.Context, id int) (*model.Person, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Person), args.Error(1)
}

func (m *MockPersonRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPersonRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPersonRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPersonRepository) FindByName(ctx context.Context, name string) iter.Seq2[model.Person, error] {
	args := m.Called(ctx, name)
	return args.Get(0).(iter.Seq2[model.Person, error])
}

func (m *MockPersonRepository) FindByCity(ctx context.Context, city string) iter.Seq2[model.Person, error] {
	args := m.Called(ctx, city)
	return args.Get(0).(iter.Seq2[model.Person, error])
}

func (m *MockPersonRepository) FindByBirthDateBetween(ctx context.Context, from, to time.Time) iter.Seq2[model.Person, error] {
	args := m.Called(ctx, from, to)
	return args.Get(0).(iter.Seq2[model.Person, error])
}

func (m *MockPersonRepository) FindAllChildren(ctx context.Context) iter.Seq2[model.Person, error] {
	args := m.Called(ctx)
	return args.Get(0).(iter.Seq2[model.Person, error])
}

func (m *MockPersonRepository) FindEmployeesBySalaryRange(ctx context.Context, minSalary, maxSalary int) iter.Seq2[model.Person, error] {
	args := m.Called(ctx, minSalary, maxSalary)
	return args.Get(0).(iter.Seq2[model.Person, error])
}

func (m *MockPersonRepository) FindAll(ctx context.Context) iter.Seq2[model.Person, error] {
	args := m.Called(ctx)
	return args.Get(0).(iter.Seq2[model.Person, error])
}

func (m *MockPersonRepository) GetCitiesPopulation(ctx context.Context) ([]model.CityPopulation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CityPopulation), args.Error(1)
}

// MockTransactor records RunInTx calls and runs fn against Repo.
// A non-nil error configured with Return short-circuits before fn runs.
type MockTransactor struct {
	mock.Mock
	Repo repository.PersonRepository
}

var _ repository.Transactor = (*MockTransactor)(nil)

func (m *MockTransactor) RunInTx(ctx context.Context, opts repository.TxOptions, fn func(repo repository.PersonRepository) error) error {
	args := m.Called(ctx, opts)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m.Repo)
}

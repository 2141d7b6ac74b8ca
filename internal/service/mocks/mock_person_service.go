package mocks

import (
	"context"
	"io"

	"personapi/internal/dto"
	"personapi/internal/service"
	"personapi/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockPersonService struct {
	mock.Mock
}

var _ service.PersonService = (*MockPersonService)(nil)

func (m *MockPersonService) AddPerson(ctx context.Context, in dto.Transfer) (bool, error) {
	args := m.Called(ctx, in)
	return args.Bool(0), args.Error(1)
}

func (m *MockPersonService) FindPersonByID(ctx context.Context, id int) (dto.Transfer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(dto.Transfer), args.Error(1)
}

func (m *MockPersonService) RemovePerson(ctx context.Context, id int) (dto.Transfer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(dto.Transfer), args.Error(1)
}

func (m *MockPersonService) UpdatePersonName(ctx context.Context, id int, name string) (dto.Transfer, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(dto.Transfer), args.Error(1)
}

func (m *MockPersonService) UpdatePersonAddress(ctx context.Context, id int, addr dto.AddressDto) (dto.Transfer, error) {
	args := m.Called(ctx, id, addr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(dto.Transfer), args.Error(1)
}

func (m *MockPersonService) FindPersonsByCity(ctx context.Context, city string) ([]dto.Transfer, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.Transfer), args.Error(1)
}

func (m *MockPersonService) FindPersonsByName(ctx context.Context, name string) ([]dto.Transfer, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.Transfer), args.Error(1)
}

func (m *MockPersonService) FindPersonsBetweenAge(ctx context.Context, minAge, maxAge int) ([]dto.Transfer, error) {
	args := m.Called(ctx, minAge, maxAge)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.Transfer), args.Error(1)
}

func (m *MockPersonService) GetCitiesPopulation(ctx context.Context) ([]dto.CityPopulationDto, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CityPopulationDto), args.Error(1)
}

func (m *MockPersonService) FindAllChildren(ctx context.Context) ([]dto.ChildDto, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ChildDto), args.Error(1)
}

func (m *MockPersonService) FindEmployeeBySalary(ctx context.Context, minSalary, maxSalary int) ([]dto.EmployeeDto, error) {
	args := m.Called(ctx, minSalary, maxSalary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.EmployeeDto), args.Error(1)
}

func (m *MockPersonService) InitializeFixtures(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

type MockExportService struct {
	mock.Mock
}

var _ service.ExportService = (*MockExportService)(nil)

func (m *MockExportService) ExportPersons(ctx context.Context) (*service.ExportResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}

func (m *MockExportService) OpenExport(ctx context.Context, name string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, storage.ObjectInfo{}, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}

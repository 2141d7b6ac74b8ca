package dto

import (
	"errors"
	"fmt"
	"time"

	"personapi/internal/model"
)

var (
	ErrInvalidBirthDate = errors.New("invalid birth date")
	ErrUnsupportedType  = errors.New("unsupported transfer type")
)

// KindOf resolves the entity kind that corresponds to the concrete transfer type.
func KindOf(t Transfer) (model.Kind, error) {
	switch v := t.(type) {
	case *PersonDto:
		if v != nil {
			return model.KindPerson, nil
		}
	case *ChildDto:
		if v != nil {
			return model.KindChild, nil
		}
	case *EmployeeDto:
		if v != nil {
			return model.KindEmployee, nil
		}
	}
	return "", ErrUnsupportedType
}

// ToEntity converts a transfer object into a new entity of the matching kind.
func ToEntity(t Transfer) (model.Person, error) {
	kind, err := KindOf(t)
	if err != nil {
		return model.Person{}, err
	}
	base := t.Base()
	born, err := time.Parse(DateLayout, base.BirthDate)
	if err != nil {
		return model.Person{}, fmt.Errorf("%w: %q", ErrInvalidBirthDate, base.BirthDate)
	}
	addr := AddressFromDto(base.Address)

	switch kind {
	case model.KindChild:
		c := t.(*ChildDto)
		return model.NewChild(base.ID, base.Name, born, addr, c.Kindergarten), nil
	case model.KindEmployee:
		e := t.(*EmployeeDto)
		return model.NewEmployee(base.ID, base.Name, born, addr, e.Employer, e.Salary), nil
	default:
		return model.NewPerson(base.ID, base.Name, born, addr), nil
	}
}

// FromEntity converts p into the transfer type matching its kind.
func FromEntity(p model.Person) Transfer {
	switch p.Kind {
	case model.KindChild:
		c := ToChildDto(p)
		return &c
	case model.KindEmployee:
		e := ToEmployeeDto(p)
		return &e
	default:
		b := basePersonDto(p, TypePerson)
		return &b
	}
}

// ToChildDto maps p into a ChildDto regardless of its kind.
func ToChildDto(p model.Person) ChildDto {
	c := ChildDto{PersonDto: basePersonDto(p, TypeChild)}
	if p.Child != nil {
		c.Kindergarten = p.Child.Kindergarten
	}
	return c
}

// ToEmployeeDto maps p into an EmployeeDto regardless of its kind.
func ToEmployeeDto(p model.Person) EmployeeDto {
	e := EmployeeDto{PersonDto: basePersonDto(p, TypeEmployee)}
	if p.Employee != nil {
		e.Employer = p.Employee.Employer
		e.Salary = p.Employee.Salary
	}
	return e
}

func basePersonDto(p model.Person, typ string) PersonDto {
	return PersonDto{
		Type:      typ,
		ID:        p.ID,
		Name:      p.Name,
		BirthDate: p.BirthDate.Format(DateLayout),
		Address:   AddressToDto(p.Address),
	}
}

func AddressFromDto(a AddressDto) model.Address {
	return model.Address{City: a.City, Street: a.Street, Building: a.Building}
}

func AddressToDto(a model.Address) AddressDto {
	return AddressDto{City: a.City, Street: a.Street, Building: a.Building}
}

func CityPopulationFromModel(c model.CityPopulation) CityPopulationDto {
	return CityPopulationDto{City: c.City, Population: c.Population}
}

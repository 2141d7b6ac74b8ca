package model

import "time"

// Kind discriminates the Person variants stored in the persons table.
type Kind string

const (
	KindPerson   Kind = "Person"
	KindChild    Kind = "Child"
	KindEmployee Kind = "Employee"
)

// Valid reports whether k is one of the known variants.
func (k Kind) Valid() bool {
	switch k {
	case KindPerson, KindChild, KindEmployee:
		return true
	}
	return false
}

// Address is embedded in Person and stored inline in the same row.
type Address struct {
	City     string
	Street   string
	Building int
}

// ChildInfo carries the fields only a Child has.
type ChildInfo struct {
	Kindergarten string
}

// EmployeeInfo carries the fields only an Employee has.
type EmployeeInfo struct {
	Employer string
	Salary   int
}

// Person is the persisted entity. Kind selects which payload is set:
// Child for KindChild, Employee for KindEmployee, neither for KindPerson.
// Kind never changes after creation.
type Person struct {
	ID        int
	Name      string
	BirthDate time.Time
	Address   Address
	Kind      Kind
	Child     *ChildInfo
	Employee  *EmployeeInfo
}

// NewPerson builds a plain Person.
func NewPerson(id int, name string, birthDate time.Time, addr Address) Person {
	return Person{ID: id, Name: name, BirthDate: birthDate, Address: addr, Kind: KindPerson}
}

// NewChild builds a Child.
func NewChild(id int, name string, birthDate time.Time, addr Address, kindergarten string) Person {
	p := NewPerson(id, name, birthDate, addr)
	p.Kind = KindChild
	p.Child = &ChildInfo{Kindergarten: kindergarten}
	return p
}

// NewEmployee builds an Employee.
func NewEmployee(id int, name string, birthDate time.Time, addr Address, employer string, salary int) Person {
	p := NewPerson(id, name, birthDate, addr)
	p.Kind = KindEmployee
	p.Employee = &EmployeeInfo{Employer: employer, Salary: salary}
	return p
}

// Date truncates to a calendar date in UTC, the granularity of birth dates.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// CityPopulation is a grouped count of persons living in one city.
// It is derived by the store and never persisted.
type CityPopulation struct {
	City       string
	Population int64
}

// Package dto holds the transfer objects exchanged at the service boundary
// and the hand-written conversions between them and model.Person.
package dto

// DateLayout is the wire format of birth dates.
const DateLayout = "2006-01-02"

// Values of the "type" discriminator on the wire.
const (
	TypePerson   = "person"
	TypeChild    = "child"
	TypeEmployee = "employee"
)

// AddressDto is the flat transfer form of model.Address.
type AddressDto struct {
	City     string `json:"city"`
	Street   string `json:"street"`
	Building int    `json:"building"`
}

// PersonDto is the transfer form of a plain Person and the base of the other two.
type PersonDto struct {
	Type      string     `json:"type"`
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	BirthDate string     `json:"birthDate"` // Formatted as YYYY-MM-DD
	Address   AddressDto `json:"address"`
}

// Base returns the shared fields. ChildDto and EmployeeDto get it by embedding.
func (p *PersonDto) Base() *PersonDto { return p }

// ChildDto is the transfer form of a Child.
type ChildDto struct {
	PersonDto
	Kindergarten string `json:"kindergarten"`
}

// EmployeeDto is the transfer form of an Employee.
type EmployeeDto struct {
	PersonDto
	Employer string `json:"employer"`
	Salary   int    `json:"salary"`
}

// Transfer is implemented by *PersonDto, *ChildDto and *EmployeeDto.
// The concrete type, not the Type field, decides which entity kind it maps to.
type Transfer interface {
	Base() *PersonDto
}

// CityPopulationDto pairs a city with the number of persons living there.
type CityPopulationDto struct {
	City       string `json:"city"`
	Population int64  `json:"population"`
}

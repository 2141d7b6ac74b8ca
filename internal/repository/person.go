package repository

import (
	"context"
	"iter"
	"time"

	"personapi/internal/model"
)

// PersonRepository defines data access for persons of every kind.
// No business logic here, strictly persistence operations.
//
// Sequence-returning methods are lazy: the query runs when the sequence is
// ranged over and rows are released when iteration stops. Consume them once,
// inside the transaction that produced them.
type PersonRepository interface {
	// Save inserts p or updates the row with the same id. Kind is never rewritten.
	Save(ctx context.Context, p *model.Person) error

	// FindByID returns sql.ErrNoRows when no row matches.
	FindByID(ctx context.Context, id int) (*model.Person, error)

	ExistsByID(ctx context.Context, id int) (bool, error)

	// Delete removes the row for id. It returns nil if the row did not exist.
	Delete(ctx context.Context, id int) error

	Count(ctx context.Context) (int64, error)

	// FindByName matches name exactly, ignoring case.
	FindByName(ctx context.Context, name string) iter.Seq2[model.Person, error]

	// FindByCity matches the address city exactly, ignoring case.
	FindByCity(ctx context.Context, city string) iter.Seq2[model.Person, error]

	// FindByBirthDateBetween includes both bounds.
	FindByBirthDateBetween(ctx context.Context, from, to time.Time) iter.Seq2[model.Person, error]

	FindAllChildren(ctx context.Context) iter.Seq2[model.Person, error]

	// FindEmployeesBySalaryRange includes both bounds.
	FindEmployeesBySalaryRange(ctx context.Context, minSalary, maxSalary int) iter.Seq2[model.Person, error]

	FindAll(ctx context.Context) iter.Seq2[model.Person, error]

	// GetCitiesPopulation groups by city, largest population first, ties by city name.
	GetCitiesPopulation(ctx context.Context) ([]model.CityPopulation, error)
}

// TxOptions configures a transaction opened by Transactor.
type TxOptions struct {
	ReadOnly bool
}

// Transactor runs fn against a PersonRepository bound to one transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	RunInTx(ctx context.Context, opts TxOptions, fn func(repo PersonRepository) error) error
}

// Collect drains seq into a slice, stopping at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	items := make([]T, 0)
	for item, err := range seq {
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

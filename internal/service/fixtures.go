package service

import (
	"context"
	"time"

	"personapi/internal/model"
	"personapi/internal/repository"
)

// Fixtures are the records seeded into an empty store.
func Fixtures() []model.Person {
	return []model.Person{
		model.NewPerson(1000, "John", model.Date(1985, time.April, 11),
			model.Address{City: "Tel Aviv", Street: "Ben Gvirol", Building: 87}),
		model.NewChild(2000, "Mosche", model.Date(2018, time.July, 5),
			model.Address{City: "Ashkelon", Street: "Bar Kohva", Building: 21}, "Shalom"),
		model.NewEmployee(3000, "Sarah", model.Date(1995, time.November, 23),
			model.Address{City: "Rehovot", Street: "Herzl", Building: 7}, "Motorola", 20_000),
	}
}

func (s *personService) InitializeFixtures(ctx context.Context) (bool, error) {
	var seeded bool
	err := s.tx.RunInTx(ctx, readWrite, func(repo repository.PersonRepository) error {
		n, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		for _, p := range Fixtures() {
			if err := repo.Save(ctx, &p); err != nil {
				return err
			}
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return seeded, nil
}

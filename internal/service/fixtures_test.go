package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"personapi/internal/model"
	"personapi/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFixtures(t *testing.T) {
	f := Fixtures()
	require.Len(t, f, 3)

	assert.Equal(t, 1000, f[0].ID)
	assert.Equal(t, "John", f[0].Name)
	assert.Equal(t, model.KindPerson, f[0].Kind)
	assert.Equal(t, model.Date(1985, time.April, 11), f[0].BirthDate)
	assert.Equal(t, model.Address{City: "Tel Aviv", Street: "Ben Gvirol", Building: 87}, f[0].Address)

	assert.Equal(t, 2000, f[1].ID)
	assert.Equal(t, model.KindChild, f[1].Kind)
	assert.Equal(t, "Shalom", f[1].Child.Kindergarten)
	assert.Equal(t, model.Address{City: "Ashkelon", Street: "Bar Kohva", Building: 21}, f[1].Address)

	assert.Equal(t, 3000, f[2].ID)
	assert.Equal(t, model.KindEmployee, f[2].Kind)
	assert.Equal(t, model.Date(1995, time.November, 23), f[2].BirthDate)
	assert.Equal(t, "Motorola", f[2].Employee.Employer)
	assert.Equal(t, 20000, f[2].Employee.Salary)
}

func TestPersonService_InitializeFixtures(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store gets three records", func(t *testing.T) {
		svc, mTx, mRepo := newTestService()
		mTx.On("RunInTx", ctx, repository.TxOptions{}).Return(nil)
		mRepo.On("Count", ctx).Return(int64(0), nil)
		var saved []int
		mRepo.On("Save", ctx, mock.Anything).Run(func(args mock.Arguments) {
			saved = append(saved, args.Get(1).(*model.Person).ID)
		}).Return(nil)

		seeded, err := svc.InitializeFixtures(ctx)

		require.NoError(t, err)
		assert.True(t, seeded)
		assert.Equal(t, []int{1000, 2000, 3000}, saved)
	})

	t.Run("non-empty store is left alone", func(t *testing.T) {
		svc, mTx, mRepo := newTestService()
		mTx.On("RunInTx", ctx, repository.TxOptions{}).Return(nil)
		mRepo.On("Count", ctx).Return(int64(3), nil)

		seeded, err := svc.InitializeFixtures(ctx)

		require.NoError(t, err)
		assert.False(t, seeded)
		mRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("save error aborts", func(t *testing.T) {
		svc, mTx, mRepo := newTestService()
		mTx.On("RunInTx", ctx, repository.TxOptions{}).Return(nil)
		mRepo.On("Count", ctx).Return(int64(0), nil)
		mRepo.On("Save", ctx, mock.Anything).Return(errors.New("db fail")).Once()

		seeded, err := svc.InitializeFixtures(ctx)

		assert.EqualError(t, err, "db fail")
		assert.False(t, seeded)
	})
}

package repository

import (
	"context"
	"fmt"
	"testing"

	"leave_system/internal/domain"
	"leave_system/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func newLeave(t *testing.T, reason string) NewLeave {
	return NewLeave{
		LeaveType: "Annual",
		StartDate: mustDate(t, "2024-06-01"),
		EndDate:   mustDate(t, "2024-06-03"),
		Reason:    reason,
	}
}

func TestUserRepositoryInsertRejectsDuplicateEmail(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewUserRepository(gdb)
	ctx := context.Background()

	first := &domain.User{Email: "jane@example.com", Password: "hash", FirstName: "Jane", LastName: "Doe", Role: domain.RoleEmployee}
	require.NoError(t, repo.Insert(ctx, first))
	assert.NotZero(t, first.ID)

	second := &domain.User{Email: "jane@example.com", Password: "hash", FirstName: "Jane", LastName: "Again", Role: domain.RoleEmployee}
	assert.ErrorIs(t, repo.Insert(ctx, second), domain.ErrDuplicateEmail)
}

func TestUserRepositoryLookups(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewUserRepository(gdb)
	ctx := context.Background()
	u := testutil.CreateUser(t, gdb, "Case@Example.com", "secret1", domain.RoleAdmin)

	found, err := repo.FindByEmail(ctx, "Case@Example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, u.ID, found.ID)

	missing, err := repo.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, domain.RoleAdmin, byID.Role)

	none, err := repo.FindByID(ctx, u.ID+100)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestLeaveRepositoryCreateStartsPending(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewLeaveRepository(gdb)
	owner := testutil.CreateUser(t, gdb, "a@example.com", "secret1", domain.RoleEmployee)

	leave, err := repo.Create(context.Background(), owner.ID, newLeave(t, "Family trip abroad"))
	require.NoError(t, err)
	assert.NotZero(t, leave.ID)
	assert.Equal(t, domain.StatusPending, leave.Status)
	assert.Nil(t, leave.AdminComment)
	assert.Equal(t, "2024-06-01", leave.StartDate.String())
}

func TestLeaveRepositoryPagination(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewLeaveRepository(gdb)
	ctx := context.Background()
	owner := testutil.CreateUser(t, gdb, "a@example.com", "secret1", domain.RoleEmployee)
	other := testutil.CreateUser(t, gdb, "b@example.com", "secret1", domain.RoleEmployee)

	for i := 0; i < 5; i++ {
		_, err := repo.Create(ctx, owner.ID, newLeave(t, fmt.Sprintf("Reason number %d", i)))
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, other.ID, newLeave(t, "Somebody else's leave"))
	require.NoError(t, err)

	page1, total, err := repo.ListByOwner(ctx, owner.ID, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, page1, 2)
	assert.Equal(t, "Reason number 4", page1[0].Reason)
	assert.Equal(t, "Reason number 3", page1[1].Reason)

	page3, _, err := repo.ListByOwner(ctx, owner.ID, 3, 2)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, "Reason number 0", page3[0].Reason)

	beyond, total, err := repo.ListByOwner(ctx, owner.ID, 4, 2)
	require.NoError(t, err)
	assert.Empty(t, beyond)
	assert.EqualValues(t, 5, total)

	all, total, err := repo.ListAll(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 6, total)
	require.Len(t, all, 6)
	assert.Equal(t, "b@example.com", all[0].Email)
	assert.Equal(t, "Test", all[0].FirstName)
	assert.Equal(t, other.ID, all[0].UserID)
}

func TestLeaveRepositoryUpdateStatus(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewLeaveRepository(gdb)
	ctx := context.Background()
	owner := testutil.CreateUser(t, gdb, "a@example.com", "secret1", domain.RoleEmployee)
	leave, err := repo.Create(ctx, owner.ID, newLeave(t, "Family trip abroad"))
	require.NoError(t, err)

	comment := "Enjoy!"
	updated, err := repo.UpdateStatus(ctx, leave.ID, domain.StatusApproved, &comment)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, updated.Status)
	require.NotNil(t, updated.AdminComment)
	assert.Equal(t, "Enjoy!", *updated.AdminComment)

	_, err = repo.UpdateStatus(ctx, leave.ID, domain.StatusRejected, nil)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = repo.UpdateStatus(ctx, leave.ID+42, domain.StatusApproved, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var count int64
	require.NoError(t, gdb.Model(&domain.LeaveRequest{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLeaveRepositoryGetWithOwner(t *testing.T) {
	gdb := testutil.NewDB(t)
	repo := NewLeaveRepository(gdb)
	ctx := context.Background()
	owner := testutil.CreateUser(t, gdb, "a@example.com", "secret1", domain.RoleEmployee)
	leave, err := repo.Create(ctx, owner.ID, newLeave(t, "Family trip abroad"))
	require.NoError(t, err)

	got, err := repo.GetWithOwner(ctx, leave.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, leave.ID, got.ID)
	assert.Equal(t, "a@example.com", got.Email)
	assert.Equal(t, "Test User", got.OwnerName())
	assert.Equal(t, 3, got.DurationDays())

	missing, err := repo.GetWithOwner(ctx, leave.ID+1)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard-api/domain"
)

func TestCreateSubtaskDefaultsIncomplete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	owner := newTestUser(t, s, "alice")
	_, _, task, _ := newTestBoardTree(t, s, owner.ID)

	sub, err := s.CreateSubtask(ctx, owner.ID, task.ID, "Review docs", false)
	require.NoError(t, err)
	assert.False(t, sub.IsCompleted)
	assert.Equal(t, task.ID, sub.TaskID)
}

func TestCreateSubtaskOnForeignTask(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	alice := newTestUser(t, s, "alice")
	bob := newTestUser(t, s, "bob")
	_, _, task, _ := newTestBoardTree(t, s, alice.ID)

	_, err := s.CreateSubtask(ctx, bob.ID, task.ID, "Sneaky", false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateSubtaskToggleCompletion(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	owner := newTestUser(t, s, "alice")
	_, _, _, sub := newTestBoardTree(t, s, owner.ID)

	done := true
	updated, err := s.UpdateSubtask(ctx, owner.ID, sub.ID, domain.SubtaskUpdate{IsCompleted: &done})
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)
	assert.Equal(t, sub.Title, updated.Title, "omitted title stays untouched")

	got, err := s.GetSubtask(ctx, owner.ID, sub.ID)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)
}

func TestUpdateSubtaskBlankTitle(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	owner := newTestUser(t, s, "alice")
	_, _, _, sub := newTestBoardTree(t, s, owner.ID)

	blank := " "
	_, err := s.UpdateSubtask(ctx, owner.ID, sub.ID, domain.SubtaskUpdate{Title: &blank})
	var ve ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "title", ve.Field)
}

func TestDeleteSubtask(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	owner := newTestUser(t, s, "alice")
	_, _, task, sub := newTestBoardTree(t, s, owner.ID)

	require.NoError(t, s.DeleteSubtask(ctx, owner.ID, sub.ID))
	_, err := s.GetSubtask(ctx, owner.ID, sub.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.GetTask(ctx, owner.ID, task.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Subtasks)
}

func TestSubtasksInvisibleToOtherOwners(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	alice := newTestUser(t, s, "alice")
	bob := newTestUser(t, s, "bob")
	_, _, _, sub := newTestBoardTree(t, s, alice.ID)

	_, err := s.GetSubtask(ctx, bob.ID, sub.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteSubtask(ctx, bob.ID, sub.ID), ErrNotFound)
}

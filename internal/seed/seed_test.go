package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/backend/internal/db/memory"
	"github.com/taskboard/backend/internal/service"
)

func TestEnsureDemo_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	hasher, err := service.NewPasswordHasher(4)
	require.NoError(t, err)

	first, err := EnsureDemo(ctx, store, hasher, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, DemoEmail, first.Email)
	assert.True(t, first.IsEmailVerified)
	assert.True(t, hasher.Verify(DemoPassword, first.PasswordHash))

	second, err := EnsureDemo(ctx, store, hasher, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	projects, err := store.ListProjects(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Work Projects", projects[0].Name)
	assert.Equal(t, "Personal Tasks", projects[1].Name)
}

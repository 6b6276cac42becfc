package mess

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/storage/memory"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

func TestRandomCode(t *testing.T) {
	seen := make(map[string]bool)
	for range 200 {
		code, err := RandomCode()
		require.NoError(t, err)
		require.Regexp(t, codePattern, code)
		seen[code] = true
	}
	require.Greater(t, len(seen), 190)
}

func TestNormalizeCode(t *testing.T) {
	require.Equal(t, "AB12CD", NormalizeCode("  ab12cd "))
}

// sequence returns the given codes in order, then repeats the last one.
func sequence(codes ...string) CodeGenerator {
	i := 0
	return func() (string, error) {
		code := codes[min(i, len(codes)-1)]
		i++
		return code, nil
	}
}

// racingStore loses every AddMember to a concurrent join.
type racingStore struct {
	*memory.Store
}

func (racingStore) AddMember(context.Context, *models.Member) error {
	return &models.ConflictError{Resource: "member", Err: errors.New("user joined elsewhere")}
}

func TestCreateMess(t *testing.T) {
	ctx := context.Background()

	t.Run("founder becomes manager", func(t *testing.T) {
		req := require.New(t)
		r := NewRegistry(memory.New())

		mess, err := r.CreateMess(ctx, "Hall 4", "alice")
		req.NoError(err)
		req.Regexp(codePattern, mess.Code)

		mc, err := r.Resolve(ctx, "alice")
		req.NoError(err)
		req.Equal(mess.ID, mc.MessID)
		req.True(mc.IsManager())
	})

	t.Run("collision is regenerated", func(t *testing.T) {
		req := require.New(t)
		store := memory.New()
		r := NewRegistry(store, WithCodeGenerator(sequence("AAAAAA", "AAAAAA", "BBBBBB")))

		first, err := r.CreateMess(ctx, "One", "alice")
		req.NoError(err)
		req.Equal("AAAAAA", first.Code)

		second, err := r.CreateMess(ctx, "Two", "bob")
		req.NoError(err)
		req.Equal("BBBBBB", second.Code)
	})

	t.Run("gives up after the configured attempts", func(t *testing.T) {
		req := require.New(t)
		r := NewRegistry(memory.New(), WithCodeGenerator(sequence("CCCCCC")), WithCodeAttempts(3))

		_, err := r.CreateMess(ctx, "One", "alice")
		req.NoError(err)

		_, err = r.CreateMess(ctx, "Two", "bob")
		req.ErrorIs(err, models.ErrConflict)

		_, err = r.Resolve(ctx, "bob")
		req.ErrorIs(err, models.ErrNotFound)
	})

	t.Run("one mess per founder", func(t *testing.T) {
		r := NewRegistry(memory.New())
		_, err := r.CreateMess(ctx, "One", "alice")
		require.NoError(t, err)

		_, err = r.CreateMess(ctx, "Two", "alice")
		require.ErrorIs(t, err, models.ErrConflict)
	})

	t.Run("name is required", func(t *testing.T) {
		_, err := NewRegistry(memory.New()).CreateMess(ctx, "", "alice")
		require.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("generator failure is returned", func(t *testing.T) {
		boom := errors.New("entropy exhausted")
		r := NewRegistry(memory.New(), WithCodeGenerator(func() (string, error) { return "", boom }))
		_, err := r.CreateMess(ctx, "One", "alice")
		require.ErrorIs(t, err, boom)
	})

	t.Run("mess is removed when the founder cannot be added", func(t *testing.T) {
		req := require.New(t)
		store := racingStore{memory.New()}
		r := NewRegistry(store, WithCodeGenerator(sequence("DDDDDD")))

		_, err := r.CreateMess(ctx, "One", "alice")
		req.ErrorIs(err, models.ErrConflict)

		_, err = store.GetMessByCode(ctx, "DDDDDD")
		req.ErrorIs(err, models.ErrNotFound)
	})
}

func TestJoinAndRemove(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry(memory.New(), WithCodeGenerator(sequence("JOIN01", "JOIN02")))

	mess, err := r.CreateMess(ctx, "Hall 4", "alice")
	require.NoError(t, err)
	manager, err := r.Resolve(ctx, "alice")
	require.NoError(t, err)

	t.Run("join is case-insensitive", func(t *testing.T) {
		req := require.New(t)
		joined, err := r.JoinMess(ctx, "join01", "bob")
		req.NoError(err)
		req.Equal(mess.ID, joined.ID)

		mc, err := r.Resolve(ctx, "bob")
		req.NoError(err)
		req.Equal(models.RoleMember, mc.Role)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := r.JoinMess(ctx, "NOPE00", "carol")
		var nf *models.NotFoundError
		require.True(t, errors.As(err, &nf))
		require.Equal(t, "mess", nf.Kind)
	})

	t.Run("malformed code", func(t *testing.T) {
		_, err := r.JoinMess(ctx, "ABC", "carol")
		require.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("already in a mess", func(t *testing.T) {
		_, err := r.JoinMess(ctx, "JOIN01", "bob")
		require.ErrorIs(t, err, models.ErrConflict)
	})

	t.Run("roster", func(t *testing.T) {
		current, members, err := r.Current(ctx, manager)
		require.NoError(t, err)
		require.Equal(t, "Hall 4", current.Name)
		require.Len(t, members, 2)
	})

	t.Run("members cannot remove others", func(t *testing.T) {
		_, err := r.JoinMess(ctx, "JOIN01", "carol")
		require.NoError(t, err)
		bob, err := r.Resolve(ctx, "bob")
		require.NoError(t, err)

		err = r.RemoveMember(ctx, bob, "carol")
		require.ErrorIs(t, err, models.ErrPermissionDenied)

		require.NoError(t, r.RemoveMember(ctx, bob, "bob"))
	})

	t.Run("manager removes a member", func(t *testing.T) {
		require.NoError(t, r.RemoveMember(ctx, manager, "carol"))
		require.ErrorIs(t, r.RemoveMember(ctx, manager, "carol"), models.ErrNotFound)

		members, err := r.Members(ctx, mess.ID)
		require.NoError(t, err)
		require.Len(t, members, 1)
	})
}

package resumes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonathan/interview-prep/internal/session"
	"github.com/jonathan/interview-prep/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder(t *testing.T, now time.Time) (*Builder, *session.Session) {
	t.Helper()
	sess := session.New(session.NewMemoryStore(), nil)
	b := NewBuilder(sess)
	b.now = func() time.Time { return now }
	return b, sess
}

func validForm() types.ResumeDocument {
	form := NewForm()
	form.Name = "Ada Lovelace"
	form.Email = "ada@example.com"
	form.Phone = "+44 20 7946 0958"
	return form
}

func TestBuilder_Create_Valid(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	b, _ := newTestBuilder(t, now)
	ctx := context.Background()

	doc, err := b.Create(ctx, validForm())
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli(), doc.ID)
	assert.Equal(t, "3/5/2024, 2:07:09 PM", doc.CreatedAt)

	docs, err := b.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Ada Lovelace", docs[0].Name)
}

func TestBuilder_Create_InvalidEmail(t *testing.T) {
	b, _ := newTestBuilder(t, time.Now())
	ctx := context.Background()

	form := validForm()
	form.Email = "not-an-email"

	doc, err := b.Create(ctx, form)
	assert.Nil(t, doc)

	var fe *FormErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Please enter a valid email address", fe.Message("email"))
	assert.Empty(t, fe.Message("name"))

	docs, err := b.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestBuilder_Validate_Messages(t *testing.T) {
	b, _ := newTestBuilder(t, time.Now())

	tests := []struct {
		name  string
		edit  func(*types.ResumeDocument)
		field string
		want  string
	}{
		{"missing name", func(d *types.ResumeDocument) { d.Name = "" }, "name", "Name is required"},
		{"missing email", func(d *types.ResumeDocument) { d.Email = "" }, "email", "Email is required"},
		{"email without tld", func(d *types.ResumeDocument) { d.Email = "ada@example" }, "email", "Please enter a valid email address"},
		{"missing phone", func(d *types.ResumeDocument) { d.Phone = "" }, "phone", "Phone number is required"},
		{"short phone", func(d *types.ResumeDocument) { d.Phone = "12345" }, "phone", "Please enter a valid phone number"},
		{"letters in phone", func(d *types.ResumeDocument) { d.Phone = "555-CALL-NOW" }, "phone", "Please enter a valid phone number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validForm()
			tt.edit(&doc)

			err := b.Validate(Normalize(doc))
			var fe *FormErrors
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.want, fe.Message(tt.field))
		})
	}
}

func TestBuilder_Validate_AllFieldsAtOnce(t *testing.T) {
	b, _ := newTestBuilder(t, time.Now())

	err := b.Validate(types.ResumeDocument{})
	var fe *FormErrors
	require.True(t, errors.As(err, &fe))
	assert.Len(t, fe.Fields, 3)
	assert.Contains(t, err.Error(), "Name is required")
}

func TestBuilder_Create_PrependsNewest(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	b, _ := newTestBuilder(t, now)
	ctx := context.Background()

	first, err := b.Create(ctx, validForm())
	require.NoError(t, err)

	form := validForm()
	form.Name = "Grace Hopper"
	second, err := b.Create(ctx, form)
	require.NoError(t, err)

	// Same clock reading: the id is bumped past the existing one.
	assert.Equal(t, first.ID+1, second.ID)

	docs, err := b.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "Grace Hopper", docs[0].Name)
	assert.Equal(t, "Ada Lovelace", docs[1].Name)
}

func TestBuilder_Create_DropsBlankPoints(t *testing.T) {
	b, _ := newTestBuilder(t, time.Now())

	form := validForm()
	form.Experience[0].Role = "Engineer"
	form.Experience[0].Points = []string{"  shipped things ", "", "   "}

	doc, err := b.Create(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, []string{"shipped things"}, doc.Experience[0].Points)
}

func TestBuilder_Delete(t *testing.T) {
	ctx := context.Background()
	yes := ConfirmFunc(func(prompt string) (bool, error) {
		assert.Equal(t, DeletePrompt, prompt)
		return true, nil
	})
	no := ConfirmFunc(func(string) (bool, error) { return false, nil })

	t.Run("confirmed", func(t *testing.T) {
		b, _ := newTestBuilder(t, time.Now())
		doc, err := b.Create(ctx, validForm())
		require.NoError(t, err)

		deleted, err := b.Delete(ctx, doc.ID, yes)
		require.NoError(t, err)
		assert.True(t, deleted)

		docs, err := b.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("declined", func(t *testing.T) {
		b, _ := newTestBuilder(t, time.Now())
		doc, err := b.Create(ctx, validForm())
		require.NoError(t, err)

		deleted, err := b.Delete(ctx, doc.ID, no)
		require.NoError(t, err)
		assert.False(t, deleted)

		docs, err := b.List(ctx)
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})

	t.Run("unknown id", func(t *testing.T) {
		b, _ := newTestBuilder(t, time.Now())
		called := false
		deleted, err := b.Delete(ctx, 42, ConfirmFunc(func(string) (bool, error) {
			called = true
			return true, nil
		}))
		assert.ErrorIs(t, err, ErrNotFound)
		assert.False(t, deleted)
		assert.False(t, called)
	})
}

func TestBuilder_Get(t *testing.T) {
	b, _ := newTestBuilder(t, time.Now())
	ctx := context.Background()

	doc, err := b.Create(ctx, validForm())
	require.NoError(t, err)

	got, err := b.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.Email, got.Email)

	_, err = b.Get(ctx, doc.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)
}

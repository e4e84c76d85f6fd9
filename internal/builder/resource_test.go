package builder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/fastaccel/cli/internal/errors"
)

func TestNewResourceSpec(t *testing.T) {
	spec := NewResourceSpec("Post", []string{"title"}, true)
	assert.Equal(t, "post", spec.ResourceName)
	assert.Equal(t, "Post", spec.ClassName())
}

func TestResourceBuilder_CRUD(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "/work/main.py", "app = FastAPI()\n")
	env.write(t, "/work/src/models/all_models.py", "")

	spec := NewResourceSpec("Post", []string{"title", "body"}, true)
	require.NoError(t, Run(context.Background(), NewResourceBuilder(env.Env, "/work", spec)))

	dir := "/work/src/modules/post"
	model := env.read(t, dir+"/models/post_model.py")
	assert.Contains(t, model, "class Post(Base):")
	assert.Contains(t, model, `__tablename__ = "posts"`)
	assert.Contains(t, model, "title = Column(String(255))")

	assert.Contains(t, env.read(t, dir+"/dtos/post_dto.py"), "class PostCreate(BaseModel):\n    title: str\n    body: str\n")
	assert.Contains(t, env.read(t, dir+"/controllers/post_controller.py"), `APIRouter(prefix="/posts"`)
	assert.True(t, env.exists(dir+"/repositories/post_repository.py"))
	assert.True(t, env.exists(dir+"/services/post_service.py"))
	assert.True(t, env.exists(dir+"/routes.py"))

	assert.Contains(t, env.read(t, "/work/main.py"), "from src.modules.post.routes import router as post_router")
	assert.Equal(t, "import src.modules.post.models.post_model  # noqa: F401\n", env.read(t, "/work/src/models/all_models.py"))
	assert.Empty(t, env.calls(), "resources install nothing")
}

func TestResourceBuilder_NoCRUD(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "/work/main.py", "app = FastAPI()\n")

	spec := NewResourceSpec("tag", nil, false)
	require.NoError(t, Run(context.Background(), NewResourceBuilder(env.Env, "/work", spec)))

	assert.True(t, env.exists("/work/src/modules/tag/models/tag_model.py"))
	assert.Contains(t, env.read(t, "/work/src/modules/tag/dtos/tag_dto.py"), "    pass\n")
	assert.False(t, env.exists("/work/src/modules/tag/controllers"))
	assert.False(t, env.exists("/work/src/modules/tag/routes.py"))
	assert.Equal(t, "app = FastAPI()\n", env.read(t, "/work/main.py"))
}

func TestResourceBuilder_Validation(t *testing.T) {
	tests := []struct {
		name   string
		spec   ResourceSpec
		target error
	}{
		{"keyword name", NewResourceSpec("class", nil, true), oerrors.ErrValidation},
		{"hyphenated name", NewResourceSpec("blog-post", nil, true), oerrors.ErrValidation},
		{"empty name", NewResourceSpec("", nil, true), oerrors.ErrValidation},
		{"bad field", NewResourceSpec("post", []string{"title", "2nd"}, true), oerrors.ErrValidation},
		{"keyword field", NewResourceSpec("post", []string{"from"}, true), oerrors.ErrValidation},
		{"primary key field", NewResourceSpec("post", []string{"id"}, true), oerrors.ErrValidation},
		{"declarative metadata field", NewResourceSpec("post", []string{"metadata"}, true), oerrors.ErrValidation},
		{"declarative registry field", NewResourceSpec("post", []string{"title", "registry"}, true), oerrors.ErrValidation},
		{"repeated field", NewResourceSpec("post", []string{"title", "title"}, true), oerrors.ErrValidation},
		{"auth module", NewResourceSpec("auth", nil, true), oerrors.ErrValidation},
		{"users module", NewResourceSpec("Users", nil, true), oerrors.ErrValidation},
		{"users table", NewResourceSpec("user", []string{"nickname"}, true), oerrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			err := Run(context.Background(), NewResourceBuilder(env.Env, "/work", tt.spec))
			assert.ErrorIs(t, err, tt.target)
			assert.Empty(t, env.gw.Changes())
		})
	}
}

func TestResourceBuilder_MissingProject(t *testing.T) {
	env := newTestEnv(t)
	err := Run(context.Background(), NewResourceBuilder(env.Env, "/nope", NewResourceSpec("post", nil, true)))
	assert.ErrorIs(t, err, oerrors.ErrPathNotFound)
}

func TestResourceBuilder_ReservedFieldHint(t *testing.T) {
	env := newTestEnv(t)
	err := Run(context.Background(), NewResourceBuilder(env.Env, "/work", NewResourceSpec("post", []string{"id"}, true)))

	var detail *oerrors.DetailError
	require.ErrorAs(t, err, &detail)
	assert.Contains(t, detail.Message, `field "id" is reserved`)
	assert.Contains(t, detail.Hint, "model base")
}

package templates

import (
	"github.com/lithammer/dedent"
)

// snippet is a short template kept in code rather than in files/.
type snippet struct {
	id          ID
	category    Category
	engine      Engine
	description string
	raw         string
}

// body strips the common indentation of the raw literal; a snippet always
// starts with a blank line so it can be appended after existing content.
func (s snippet) body() string {
	return "\n" + dedent.Dedent(s.raw)
}

var snippets = []snippet{
	{
		id:          SnippetRouter,
		category:    CategorySnippet,
		engine:      EngineGo,
		description: "Router registration appended to the entrypoint",
		raw: `
			from src.modules.{{.Name}}.routes import router as {{.Name}}_router
			app.include_router({{.Name}}_router)
		`,
	},
	{
		id:          TestPytestOptions,
		category:    CategoryTest,
		engine:      EngineSubstitute,
		description: "pytest settings block for pyproject.toml",
		raw: `
			[tool.pytest.ini_options]
			pythonpath = ["."]
			testpaths = ["tests"]
			asyncio_mode = "auto"
		`,
	},
	{
		id:          TestDevGroup,
		category:    CategoryTest,
		engine:      EngineSubstitute,
		description: "Development dependency group for pyproject.toml",
		raw: `
			[dependency-groups]
			dev = [
			    "pytest>=8.0.0",
			    "pytest-asyncio>=0.23.0",
			    "httpx>=0.27.0",
			]
		`,
	},
}

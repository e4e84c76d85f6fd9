package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "post", false},
		{"underscore", "blog_post", false},
		{"leading underscore", "_private", false},
		{"digits after first", "item2", false},
		{"empty", "", true},
		{"leading digit", "2fast", true},
		{"hyphen", "blog-post", true},
		{"space", "blog post", true},
		{"keyword", "class", true},
		{"soft keyword is fine", "match", false},
		{"capitalized keyword", "None", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateProjectName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"demo", false},
		{"my-api", false},
		{"my_api2", false},
		{"", true},
		{"-api", true},
		{"9lives", true},
		{"my api", true},
		{"a/b", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateProjectName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClassName(t *testing.T) {
	tests := map[string]string{
		"post":      "Post",
		"Post":      "Post",
		"POST":      "Post",
		"blog_post": "Blog_post",
		"_item":     "_item",
		"":          "",
	}

	for in, want := range tests {
		assert.Equal(t, want, ClassName(in), "ClassName(%q)", in)
	}
}

func TestSubstitute(t *testing.T) {
	ctx := Context{"Name": "post", "Count": 3}

	tests := []struct {
		body string
		want string
	}{
		{"$Name", "post"},
		{"${Name}s", "posts"},
		{"$Count items", "3 items"},
		{"$$Name", "$Name"},
		{"$Missing and ${Missing}", "$Missing and ${Missing}"},
		{"cost: $ 5", "cost: $ 5"},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			assert.Equal(t, tt.want, substitute(tt.body, ctx))
		})
	}
}

func TestEngineString(t *testing.T) {
	assert.Equal(t, "substitute", EngineSubstitute.String())
	assert.Equal(t, "go", EngineGo.String())
	assert.Equal(t, "unknown", Engine(9).String())
}

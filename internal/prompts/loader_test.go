package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	for _, name := range []string{
		"profile_with_projects.tmpl",
		"profile_resume_only.tmpl",
		"compare_to_job.tmpl",
	} {
		t.Run(name, func(t *testing.T) {
			prompt, err := Get(name)
			require.NoError(t, err)
			assert.NotEmpty(t, prompt)
		})
	}
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("nope.tmpl")
	assert.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() { MustGet("nope.tmpl") })
}

func TestFormat(t *testing.T) {
	template := "Resume:\n{{.Resume}}\n\nContext: {{.Context}}\nAgain: {{.Resume}}"

	got := Format(template, map[string]string{
		"Resume":  "ten years of Go",
		"Context": "senior role",
	})

	assert.Equal(t, "Resume:\nten years of Go\n\nContext: senior role\nAgain: ten years of Go", got)
}

func TestFormat_UnknownPlaceholderLeftIntact(t *testing.T) {
	got := Format("value: {{.Missing}}", map[string]string{"Other": "x"})
	assert.Equal(t, "value: {{.Missing}}", got)
}

func TestTemplates_CarryPlaceholders(t *testing.T) {
	withProjects := MustGet("profile_with_projects.tmpl")
	assert.Contains(t, withProjects, "{{.Resume}}")
	assert.Contains(t, withProjects, "{{.Projects}}")
	assert.Contains(t, withProjects, "{{.Context}}")

	resumeOnly := MustGet("profile_resume_only.tmpl")
	assert.Contains(t, resumeOnly, "{{.Resume}}")
	assert.NotContains(t, resumeOnly, "{{.Projects}}")

	compare := MustGet("compare_to_job.tmpl")
	assert.Contains(t, compare, "{{.Resume}}")
	assert.Contains(t, compare, "{{.JobDescription}}")
}

// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Tests pinning exact parser input/output pairs

package scaffold

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsScaffoldCommand(t *testing.T) {
	yes := []string{
		"npm create vite@latest my-app -- --template react-ts",
		"npm init vite my-app",
		"npx create-vite my-app",
		"npx --yes create-vite@5 my-app",
		"yarn create vite my-app",
		"pnpm create vite my-app",
		"pnpm dlx create-vite my-app",
	}
	no := []string{
		"npm install",
		"npm run dev",
		"npx vite build",
		"git init",
		"ls -la",
	}

	for _, cmd := range yes {
		assert.True(t, IsScaffoldCommand(cmd), "should recognize: %s", cmd)
	}
	for _, cmd := range no {
		assert.False(t, IsScaffoldCommand(cmd), "should not recognize: %s", cmd)
	}
}

func TestParseRequest(t *testing.T) {
	cases := []struct {
		command  string
		name     string
		template string
	}{
		{
			command:  "npm create vite@latest my-app -- --template react-ts",
			name:     "my-app",
			template: "react-ts",
		},
		{
			command:  "npm create vite@latest shop-front --template vue-ts",
			name:     "shop-front",
			template: "vue-ts",
		},
		{
			command:  "npx create-vite@latest dashboard --template svelte",
			name:     "dashboard",
			template: "svelte",
		},
		{
			command:  "yarn create vite landing -t vanilla-ts",
			name:     "landing",
			template: "vanilla-ts",
		},
		{
			command:  "pnpm create vite blog --template=react",
			name:     "blog",
			template: "react",
		},
		{
			// Quoted project name
			command:  `npm create vite@latest "my app" -- --template react-ts`,
			name:     "my app",
			template: "react-ts",
		},
		{
			// Single-quoted name, flag interleaved before the name
			command:  "npm create vite@latest -- --template react-ts 'client'",
			name:     "client",
			template: "react-ts",
		},
		{
			// Flags interleaved with the project name
			command:  "npx create-vite --verbose my-app --template vue",
			name:     "my-app",
			template: "vue",
		},
		{
			// No name, no template: defaults
			command:  "npm create vite@latest",
			name:     DefaultProjectName,
			template: DefaultTemplate,
		},
		{
			// Name only: default template
			command:  "npm create vite@latest web",
			name:     "web",
			template: DefaultTemplate,
		},
		{
			// Dot target falls back to the default name
			command:  "npm create vite@latest . --template react-ts",
			name:     DefaultProjectName,
			template: "react-ts",
		},
		{
			// Unparseable creation command: full defaults
			command:  "npm create",
			name:     DefaultProjectName,
			template: DefaultTemplate,
		},
	}

	for _, tc := range cases {
		req := ParseRequest(tc.command)
		assert.Equal(t, tc.name, req.ProjectName, "project name for: %s", tc.command)
		assert.Equal(t, tc.template, req.Template, "template for: %s", tc.command)
		assert.Equal(t, tc.command, req.OriginalCommand)
	}
}

func TestMirrorURLKnownTemplates(t *testing.T) {
	for template := range templateMirrors {
		assert.NotEmpty(t, MirrorURL(template))
	}

	// Unknown template falls back to the default template's mirror
	assert.Equal(t, MirrorURL(DefaultTemplate), MirrorURL("angular-17"))
}

// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Scaffold request extraction from free-form commands

package scaffold

import (
	"regexp"
	"strings"
)

const (
	// DefaultProjectName is used when no project name can be extracted
	DefaultProjectName = "my-app"

	// DefaultTemplate is the statically typed UI-framework starter used
	// when no template can be extracted
	DefaultTemplate = "react-ts"
)

// Request is the typed form of a project-creation command. Fallback tiers
// are driven deterministically from it.
type Request struct {
	ProjectName     string
	Template        string
	OriginalCommand string
}

// scaffoldPattern matches project-creation invocations across the supported
// package managers
var scaffoldPattern = regexp.MustCompile(`^(npm\s+(create|init)\s|npx\s+(--yes\s+|-y\s+)?create-|yarn\s+create\s|pnpm\s+(create\s|dlx\s+create-))`)

// IsScaffoldCommand reports whether command is a recognized
// project-creation invocation
func IsScaffoldCommand(command string) bool {
	return scaffoldPattern.MatchString(strings.TrimSpace(command))
}

// ParseRequest extracts project name and template from a project-creation
// command. Extraction handles quoted and unquoted names and flags
// interleaved with the project name; when extraction fails, defaults are
// used so the fallback tiers always have a deterministic target.
func ParseRequest(command string) Request {
	req := Request{
		ProjectName:     DefaultProjectName,
		Template:        DefaultTemplate,
		OriginalCommand: command,
	}

	tokens := tokenize(strings.TrimSpace(command))
	start := creatorIndex(tokens)
	if start < 0 {
		return req
	}

	nameFound := false
	for i := start; i < len(tokens); i++ {
		tok := tokens[i]

		switch {
		case tok == "--":
			// npm's argument separator, not a value
			continue
		case tok == "--template" || tok == "-t":
			if i+1 < len(tokens) {
				req.Template = tokens[i+1]
				i++
			}
		case strings.HasPrefix(tok, "--template="):
			req.Template = strings.TrimPrefix(tok, "--template=")
		case strings.HasPrefix(tok, "-"):
			// Unrelated flag, possibly interleaved with the name
			continue
		default:
			// First non-flag token after the creator is the project name
			if !nameFound {
				req.ProjectName = tok
				nameFound = true
			}
		}
	}

	if req.ProjectName == "" || req.ProjectName == "." {
		req.ProjectName = DefaultProjectName
	}
	if req.Template == "" {
		req.Template = DefaultTemplate
	}

	return req
}

// creatorIndex returns the index of the first token after the creation tool
// itself, or -1 when the command is not a creation command
func creatorIndex(tokens []string) int {
	if len(tokens) < 2 {
		return -1
	}

	switch tokens[0] {
	case "npm", "yarn", "pnpm":
		if tokens[1] == "create" || tokens[1] == "init" {
			// npm create vite@latest <name> ...
			if len(tokens) >= 3 {
				return 3
			}
			return -1
		}
		if tokens[0] == "pnpm" && tokens[1] == "dlx" && len(tokens) >= 3 && strings.HasPrefix(tokens[2], "create-") {
			return 3
		}
	case "npx":
		i := 1
		for i < len(tokens) && (tokens[i] == "--yes" || tokens[i] == "-y") {
			i++
		}
		if i < len(tokens) && strings.HasPrefix(tokens[i], "create-") {
			return i + 1
		}
	}

	return -1
}

// tokenize splits a command on whitespace, honoring single and double
// quotes so quoted project names survive as one token
func tokenize(command string) []string {
	var tokens []string
	var current strings.Builder
	var quote byte

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for i := 0; i < len(command); i++ {
		c := command[i]

		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			} else {
				current.WriteByte(c)
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ' ' || c == '\t':
			flush()
		default:
			current.WriteByte(c)
		}
	}
	flush()

	return tokens
}

// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Tests for command preprocessing

package gateway

import "testing"

func TestPreprocessBunRewrites(t *testing.T) {
	cases := []struct{ in, want string }{
		{"bun run dev", "npm run dev"},
		{"bun install", "npm install"},
		{"bun install --verbose", "npm install --verbose"},
		{"bun add react", "npm install react"},
		{"bun remove react", "npm uninstall react"},
		{"bunx create-vite my-app", "npx create-vite my-app"},
		{"bun x vite build", "npx vite build"},
		{"npm run dev", "npm run dev"},
		{"ls -la", "ls -la"},
	}

	for _, tc := range cases {
		if got := Preprocess(tc.in); got != tc.want {
			t.Errorf("Preprocess(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPreprocessStripsLegacyCd(t *testing.T) {
	cases := []struct{ in, want string }{
		{"cd /home/user/app && npm run dev", "npm run dev"},
		{"cd /home/user/app/src && npm test", "npm test"},
		{"cd /app && npm run build", "npm run build"},
		{"cd /app/packages/web && bun run dev", "npm run dev"},
		// Non-legacy cd segments are left alone
		{"cd my-app && npm run dev", "cd my-app && npm run dev"},
	}

	for _, tc := range cases {
		if got := Preprocess(tc.in); got != tc.want {
			t.Errorf("Preprocess(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Synthetic minimal project generation (last-resort tier)

package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
)

// Synthesize materializes a minimal working project by hand: a manifest
// with conventional dev/build/lint/preview scripts and pinned dependency
// versions, plus just enough source to run the standard dev and build
// scripts.
func Synthesize(projectName, dest string) error {
	files := map[string]string{
		"package.json":       synthPackageJSON(projectName),
		"index.html":         synthIndexHTML(projectName),
		"vite.config.ts":     synthViteConfig,
		"tsconfig.json":      synthTsconfig,
		"tsconfig.node.json": synthTsconfigNode,
		"src/main.tsx":       synthMain,
		"src/App.tsx":        synthApp(projectName),
		"src/index.css":      synthStylesheet,
	}

	for rel, content := range files {
		path := filepath.Join(dest, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", rel, err)
		}
	}

	return nil
}

func synthPackageJSON(projectName string) string {
	return fmt.Sprintf(`{
  "name": %q,
  "private": true,
  "version": "0.1.0",
  "type": "module",
  "scripts": {
    "dev": "vite",
    "build": "tsc -b && vite build",
    "lint": "eslint src",
    "preview": "vite preview"
  },
  "dependencies": {
    "react": "18.3.1",
    "react-dom": "18.3.1"
  },
  "devDependencies": {
    "@types/react": "18.3.12",
    "@types/react-dom": "18.3.1",
    "@vitejs/plugin-react": "4.3.4",
    "eslint": "9.15.0",
    "typescript": "5.6.3",
    "vite": "5.4.11"
  }
}
`, projectName)
}

func synthIndexHTML(projectName string) string {
	return fmt.Sprintf(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>%s</title>
  </head>
  <body>
    <div id="root"></div>
    <script type="module" src="/src/main.tsx"></script>
  </body>
</html>
`, projectName)
}

const synthViteConfig = `import { defineConfig } from 'vite'
import react from '@vitejs/plugin-react'

export default defineConfig({
  plugins: [react()],
  server: {
    host: true,
    port: 5173,
  },
})
`

const synthTsconfig = `{
  "compilerOptions": {
    "target": "ES2020",
    "useDefineForClassFields": true,
    "lib": ["ES2020", "DOM", "DOM.Iterable"],
    "module": "ESNext",
    "moduleResolution": "bundler",
    "jsx": "react-jsx",
    "strict": true,
    "noEmit": true,
    "skipLibCheck": true,
    "isolatedModules": true
  },
  "include": ["src"],
  "references": [{ "path": "./tsconfig.node.json" }]
}
`

const synthTsconfigNode = `{
  "compilerOptions": {
    "composite": true,
    "module": "ESNext",
    "moduleResolution": "bundler",
    "skipLibCheck": true,
    "allowSyntheticDefaultImports": true
  },
  "include": ["vite.config.ts"]
}
`

const synthMain = `import React from 'react'
import ReactDOM from 'react-dom/client'
import App from './App'
import './index.css'

ReactDOM.createRoot(document.getElementById('root')!).render(
  <React.StrictMode>
    <App />
  </React.StrictMode>,
)
`

func synthApp(projectName string) string {
	return fmt.Sprintf(`function App() {
  return (
    <div className="app">
      <h1>%s</h1>
      <p>Project scaffolded and ready to build.</p>
    </div>
  )
}

export default App
`, projectName)
}

const synthStylesheet = `:root {
  font-family: system-ui, -apple-system, sans-serif;
  line-height: 1.5;
  color-scheme: light dark;
}

body {
  margin: 0;
  min-height: 100vh;
  display: flex;
  align-items: center;
  justify-content: center;
}

.app {
  text-align: center;
  padding: 2rem;
}
`

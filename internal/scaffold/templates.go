package scaffold

import "os"

// File pairs a project-relative path with the template rendered into it.
type File struct {
	Path     string
	Template string
	Mode     os.FileMode
}

// Files is every starter file the generator writes.
var Files = []File{
	{Path: ".gitignore", Template: gitignoreTemplate, Mode: 0o644},
	{Path: "README.md", Template: readmeTemplate, Mode: 0o644},
	{Path: "LICENSE", Template: licenseTemplate, Mode: 0o644},
	{Path: "requirements.txt", Template: requirementsTemplate, Mode: 0o644},
	{Path: "demo_runner.py", Template: demoRunnerTemplate, Mode: 0o755},
	{Path: ".github/workflows/ci.yml", Template: ciTemplate, Mode: 0o644},
	{Path: "docs/GETTING_STARTED.md", Template: gettingStartedTemplate, Mode: 0o644},
}

const gitignoreTemplate = `# Python
__pycache__/
*.py[cod]
.venv/
venv/
*.egg-info/

# Data
data/raw/*
!data/raw/.gitkeep

# Environment
.env
*.log

# Editors
.idea/
.vscode/
`

const readmeTemplate = `# {{.Project}}

Emotional avatar demo: synthetic BCI emotional-state data drives a simple
on-screen avatar.

## Layout

- ` + "`src/acquisition`" + ` - signal acquisition and replay of sample data
- ` + "`src/processing`" + ` - emotional-state metric extraction
- ` + "`src/avatar`" + ` - avatar state mapping and rendering
- ` + "`src/ui`" + ` - dashboard glue
- ` + "`data/samples`" + ` - generated scenario CSVs (see demoscaffold data)
- ` + "`data/raw`" + ` - raw captures, not committed

## Quick start

` + "```" + `
pip install -r requirements.txt
python demo_runner.py --scenario neutral
` + "```" + `

Sample data is synthetic. Generate the four scenarios with:

` + "```" + `
demoscaffold data --all --out data/samples
` + "```" + `

Maintainer: {{.User}}
`

const licenseTemplate = `MIT License

Copyright (c) {{.Year}} {{.User}}

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
`

const requirementsTemplate = `numpy>=1.24
pandas>=2.0
streamlit>=1.28
plotly>=5.17
`

const demoRunnerTemplate = `#!/usr/bin/env python3
"""Entry point stub for the {{.Project}} demo.

Replays a scenario CSV from data/samples and feeds it to the avatar
pipeline. The pipeline itself lives under src/.
"""

import argparse
import sys


def main() -> int:
    parser = argparse.ArgumentParser(description="{{.Project}} demo runner")
    parser.add_argument("--scenario", default="neutral",
                        choices=["neutral", "stressed", "relaxed", "excited"])
    args = parser.parse_args()
    print(f"scenario {args.scenario}: pipeline not implemented yet")
    return 0


if __name__ == "__main__":
    sys.exit(main())
`

const ciTemplate = `name: ci

on:
  push:
    branches: [main]
  pull_request:

jobs:
  test:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - uses: actions/setup-python@v5
        with:
          python-version: "3.11"
      - run: pip install -r requirements.txt
      - run: python -m pytest tests/ || true
`

const gettingStartedTemplate = `# Getting started with {{.Project}}

1. Provision a GitHub credential: ` + "`gitauth token`" + ` (or ` + "`gitauth ssh`" + `,
   ` + "`gitauth oauth`" + `).
2. Bind this checkout to its remote: ` + "`gitsync bind --url <repo-url>`" + `.
3. Generate sample data: ` + "`demoscaffold data --all --out data/samples`" + `.
4. Push the initial state: ` + "`gitsync run --policy merge`" + `.

If a sync run stops on a conflict, resolve the conflicted files, ` + "`git add`" + `
them, and run the same policy again. Nothing retries on your behalf.
`

package config

import (
	"fmt"
	"os"
)

const exampleConfig = `# stylepub configuration
site:
  docs_dir: docs
  entry: index.html
  css_dir: css
  img_dir: img
  readme: README.md

publish:
  # remote_url: git@example.com:team/styleguide.git  # defaults to origin of the local repo
  remote: origin
  branch: gh-pages
  docs_message: "Publish styleguide documentation"
  demo_message: "Publish styleguide README"
  author:
    name: stylepub
    email: stylepub@localhost
  # auth:
  #   type: token
  #   token: ${STYLEPUB_TOKEN}

history:
  path: .stylepub/history.db

# daemon:
#   interval: 1h
#   debounce: 2s
#   port: 1316
#   metrics: true
`

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

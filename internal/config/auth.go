package config

import "fmt"

// AuthType enumerates supported git authentication methods.
type AuthType string

const (
	AuthTypeNone  AuthType = "none"
	AuthTypeToken AuthType = "token"
	AuthTypeBasic AuthType = "basic"
	AuthTypeSSH   AuthType = "ssh"
)

// AuthConfig represents git authentication configuration.
type AuthConfig struct {
	Type     AuthType `yaml:"type"`
	Username string   `yaml:"username,omitempty"`
	Password string   `yaml:"password,omitempty"`
	Token    string   `yaml:"token,omitempty"`
	KeyPath  string   `yaml:"key_path,omitempty"`
}

// Validate checks that the configuration carries what its auth type requires.
func (a *AuthConfig) Validate() error {
	switch a.Type {
	case AuthTypeNone, "":
		return nil
	case AuthTypeToken:
		if a.Token == "" {
			return fmt.Errorf("token authentication requires a token")
		}
	case AuthTypeBasic:
		if a.Username == "" || a.Password == "" {
			return fmt.Errorf("basic authentication requires username and password")
		}
	case AuthTypeSSH:
		// Key path is optional; the default ~/.ssh/id_rsa is resolved at use time.
	default:
		return fmt.Errorf("unsupported authentication type: %s", a.Type)
	}
	return nil
}

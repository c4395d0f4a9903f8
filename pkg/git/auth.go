package git

import (
	"fmt"
	"os"

	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"
	cryptossh "golang.org/x/crypto/ssh"
)

// BasicAuth returns a username/password auth method for HTTPS remotes.
func BasicAuth(username, password string) transport.AuthMethod {
	return &githttp.BasicAuth{
		Username: username,
		Password: password,
	}
}

// SSHKeyAuth loads the private key at keyFile, decrypting it with the
// passphrase when one is set, and returns a public key auth method for the
// git user.
func SSHKeyAuth(keyFile, passphrase string) (transport.AuthMethod, error) {
	// #nosec G304 - The key path comes from the user's own config
	data, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read ssh key %s: %w", keyFile, err)
	}

	var signer cryptossh.Signer
	if passphrase != "" {
		signer, err = cryptossh.ParsePrivateKeyWithPassphrase(data, []byte(passphrase))
	} else {
		signer, err = cryptossh.ParsePrivateKey(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse ssh key %s: %w", keyFile, err)
	}

	return &gitssh.PublicKeys{User: "git", Signer: signer}, nil
}

package git_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	cryptossh "golang.org/x/crypto/ssh"

	"github.com/uggla/gitlab-push-and-mr/pkg/git"
)

func writeTestKey(t *testing.T, passphrase string) string {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}

	var block *pem.Block
	if passphrase != "" {
		block, err = cryptossh.MarshalPrivateKeyWithPassphrase(priv, "", []byte(passphrase))
	} else {
		block, err = cryptossh.MarshalPrivateKey(priv, "")
	}
	if err != nil {
		t.Fatalf("Failed to marshal key: %v", err)
	}

	path := filepath.Join(t.TempDir(), "id_ed25519")
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		t.Fatalf("Failed to write key: %v", err)
	}
	return path
}

func TestBasicAuth(t *testing.T) {
	auth := git.BasicAuth("jdoe", "hunter2")

	basic, ok := auth.(*githttp.BasicAuth)
	if !ok {
		t.Fatalf("Expected *githttp.BasicAuth, got %T", auth)
	}
	if basic.Username != "jdoe" || basic.Password != "hunter2" {
		t.Errorf("Unexpected credentials: %+v", basic)
	}
}

func TestSSHKeyAuth(t *testing.T) {
	t.Run("unencrypted key", func(t *testing.T) {
		keyFile := writeTestKey(t, "")

		auth, err := git.SSHKeyAuth(keyFile, "")
		if err != nil {
			t.Fatalf("SSHKeyAuth failed: %v", err)
		}
		if auth == nil {
			t.Fatal("Expected an auth method")
		}
	})

	t.Run("passphrase protected key", func(t *testing.T) {
		keyFile := writeTestKey(t, "s3cret")

		auth, err := git.SSHKeyAuth(keyFile, "s3cret")
		if err != nil {
			t.Fatalf("SSHKeyAuth failed: %v", err)
		}
		if auth == nil {
			t.Fatal("Expected an auth method")
		}
	})

	t.Run("wrong passphrase", func(t *testing.T) {
		keyFile := writeTestKey(t, "s3cret")

		if _, err := git.SSHKeyAuth(keyFile, "wrong"); err == nil {
			t.Fatal("Expected error for wrong passphrase")
		}
	})

	t.Run("missing key file", func(t *testing.T) {
		if _, err := git.SSHKeyAuth(filepath.Join(t.TempDir(), "missing"), ""); err == nil {
			t.Fatal("Expected error for missing key file")
		}
	})
}

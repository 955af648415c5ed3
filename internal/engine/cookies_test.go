package engine

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveCookieFile(t *testing.T) {
	t.Run("nothing configured", func(t *testing.T) {
		Init(Config{})
		path, ephemeral := ResolveCookieFile()
		if path != "" || ephemeral {
			t.Errorf("got (%q, %v), want empty", path, ephemeral)
		}
	})

	t.Run("file path wins", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "cookies.txt")
		if err := os.WriteFile(p, []byte("# Netscape HTTP Cookie File\n"), 0600); err != nil {
			t.Fatal(err)
		}
		Init(Config{CookiesPath: p, CookiesB64: base64.StdEncoding.EncodeToString([]byte("ignored"))})
		path, ephemeral := ResolveCookieFile()
		if path != p {
			t.Errorf("got path %q, want %q", path, p)
		}
		if ephemeral {
			t.Error("file path source must not be ephemeral")
		}
	})

	t.Run("base64 blob is ephemeral", func(t *testing.T) {
		content := "# Netscape HTTP Cookie File\n.youtube.com\tTRUE\t/\tTRUE\t0\tSID\tabc\n"
		Init(Config{CookiesB64: base64.StdEncoding.EncodeToString([]byte(content))})
		path, ephemeral := ResolveCookieFile()
		if path == "" {
			t.Fatal("expected a materialized cookie file")
		}
		defer os.Remove(path)
		if !ephemeral {
			t.Error("base64 source must be ephemeral")
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != content {
			t.Errorf("cookie content mismatch:\n%q\n%q", got, content)
		}

		cleanupCookieFile(path, ephemeral)
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("ephemeral cookie file not deleted")
		}
	})

	t.Run("invalid base64 ignored", func(t *testing.T) {
		Init(Config{CookiesB64: "%%%not-base64%%%"})
		path, _ := ResolveCookieFile()
		if path != "" {
			t.Errorf("expected no cookie file, got %q", path)
		}
	})

	t.Run("recovery artifact", func(t *testing.T) {
		dir := t.TempDir()
		Init(Config{StateDir: dir})

		src := filepath.Join(dir, "fresh.txt")
		if err := os.WriteFile(src, []byte("# Netscape HTTP Cookie File\n"), 0600); err != nil {
			t.Fatal(err)
		}
		dst, err := PersistRecoveryCookies(src)
		if err != nil {
			t.Fatal(err)
		}

		path, ephemeral := ResolveCookieFile()
		if path != dst {
			t.Errorf("got path %q, want %q", path, dst)
		}
		if ephemeral {
			t.Error("recovery artifact must not be ephemeral")
		}
	})
}

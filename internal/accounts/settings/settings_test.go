package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("known features", func(t *testing.T) {
		values, err := Parse([]byte("signup:\n  enabled: false\nlast_admin_disable:\n  enabled: true\n"))
		require.NoError(t, err)
		require.Equal(t, map[string]bool{FeatureSignup: false, FeatureLastAdminDisable: true}, values)
	})

	t.Run("unknown feature", func(t *testing.T) {
		_, err := Parse([]byte("sigup:\n  enabled: false\n"))
		require.ErrorContains(t, err, "unknown feature")
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Parse([]byte("signup: [1, 2"))
		require.Error(t, err)
	})
}

func TestStatic(t *testing.T) {
	s := Static{FeatureSignup: false}
	require.False(t, s.Enabled(FeatureSignup))
	require.True(t, s.Enabled(FeatureFirstUserAdmin))
	require.False(t, s.Enabled(FeatureLastAdminDisable))
	require.False(t, s.Enabled("nonsense"))
}

func TestOpen(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		f, err := Open(filepath.Join(t.TempDir(), "absent.yml"))
		require.NoError(t, err)
		require.True(t, f.Enabled(FeatureSignup))
		require.True(t, f.Enabled(FeatureFirstUserAdmin))
		require.False(t, f.Enabled(FeatureLastAdminDisable))

		for _, attr := range f.Attributes() {
			require.Equal(t, SourceDefault, attr.Source)
		}
	})

	t.Run("file then env precedence", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yml")
		require.NoError(t, os.WriteFile(path, []byte("signup:\n  enabled: false\nfirst_user_admin:\n  enabled: false\n"), 0o600))
		t.Setenv(EnvKey(FeatureFirstUserAdmin), "true")

		f, err := Open(path)
		require.NoError(t, err)
		require.False(t, f.Enabled(FeatureSignup))
		require.True(t, f.Enabled(FeatureFirstUserAdmin))

		attrs := f.Attributes()
		require.Len(t, attrs, 3)
		require.Equal(t, Attribute{Name: FeatureFirstUserAdmin, Enabled: true, Source: SourceEnv}, attrs[0])
		require.Equal(t, Attribute{Name: FeatureLastAdminDisable, Enabled: false, Source: SourceDefault}, attrs[1])
		require.Equal(t, Attribute{Name: FeatureSignup, Enabled: false, Source: SourceFile}, attrs[2])
	})

	t.Run("bad file keeps previous values on reload", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.yml")
		require.NoError(t, os.WriteFile(path, []byte("signup:\n  enabled: false\n"), 0o600))

		f, err := Open(path)
		require.NoError(t, err)
		require.False(t, f.Enabled(FeatureSignup))

		require.NoError(t, os.WriteFile(path, []byte("bogus:\n  enabled: true\n"), 0o600))
		require.Error(t, f.Reload())
		require.False(t, f.Enabled(FeatureSignup))
	})
}

func TestChangesSeenWithoutWatcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yml")

	f, err := Open(path)
	require.NoError(t, err)
	require.True(t, f.Enabled(FeatureSignup))

	require.NoError(t, os.WriteFile(path, []byte("signup:\n  enabled: false\n"), 0o600))
	require.False(t, f.Enabled(FeatureSignup))

	t.Setenv(EnvKey(FeatureSignup), "true")
	require.True(t, f.Enabled(FeatureSignup))
	require.Contains(t, f.Attributes(), Attribute{Name: FeatureSignup, Enabled: true, Source: SourceEnv})

	t.Setenv(EnvKey(FeatureSignup), "")
	require.NoError(t, os.Remove(path))
	require.True(t, f.Enabled(FeatureSignup))
	require.Contains(t, f.Attributes(), Attribute{Name: FeatureSignup, Enabled: true, Source: SourceDefault})
}

func TestEnvKey(t *testing.T) {
	require.Equal(t, "DOORMAN_LAST_ADMIN_DISABLE_ENABLED", EnvKey(FeatureLastAdminDisable))
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yml")
	require.NoError(t, os.WriteFile(path, []byte("signup:\n  enabled: true\n"), 0o600))

	f, err := Open(path)
	require.NoError(t, err)
	require.True(t, f.Enabled(FeatureSignup))

	ctx, cancel := context.WithCancel(context.Background())
	reloaded := make(chan []Attribute, 8)
	done := make(chan error, 1)
	go func() {
		done <- f.Watch(ctx, func(a []Attribute) {
			select {
			case reloaded <- a:
			default:
			}
		})
	}()

	// Give the watcher time to register before editing.
	require.Eventually(t, func() bool {
		require.NoError(t, os.WriteFile(path, []byte("signup:\n  enabled: false\n"), 0o600))
		select {
		case <-reloaded:
			return !f.Enabled(FeatureSignup)
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

package certengine

import (
	"crypto/tls"
	"os"
	"path/filepath"
	"testing"
)

func testPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "cert.pem")
}

// TestStore_SaveLoadRoundTrip verifies that a saved certificate loads back
// identically from the single combined PEM file.
func TestStore_SaveLoadRoundTrip(t *testing.T) {
	path := testPath(t)
	store := NewStore(path)

	cert, err := Generate(nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := store.Save(cert); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded == nil {
		t.Fatal("Load returned nil for an existing file")
	}
	if loaded.Cert.SerialNumber.Cmp(cert.Cert.SerialNumber) != 0 {
		t.Error("loaded certificate has a different serial number")
	}
	if !loaded.Key.Equal(cert.Key) {
		t.Error("loaded key differs from saved key")
	}
}

// TestStore_LoadMissing verifies the nil, nil contract for an absent file.
func TestStore_LoadMissing(t *testing.T) {
	store := NewStore(testPath(t))

	cert, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cert != nil {
		t.Error("Load returned a certificate for a missing file")
	}
}

// TestStore_LoadGarbage verifies that a file with no usable PEM blocks is an
// error, not a silent nil.
func TestStore_LoadGarbage(t *testing.T) {
	path := testPath(t)
	if err := os.WriteFile(path, []byte("not a certificate"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := NewStore(path).Load(); err == nil {
		t.Error("Load succeeded on garbage input")
	}
}

// TestStore_KeyFilePermissions verifies the combined file (which holds an
// unencrypted private key) is not world-readable.
func TestStore_KeyFilePermissions(t *testing.T) {
	path := testPath(t)
	cert, err := Generate(nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := NewStore(path).Save(cert); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %o, want 0600", perm)
	}
}

// TestEnsure_GeneratesOnce verifies idempotent provisioning: the first call
// creates the file, the second reuses it untouched.
func TestEnsure_GeneratesOnce(t *testing.T) {
	path := testPath(t)

	first, generated, err := Ensure(path, nil)
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if !generated {
		t.Error("first Ensure did not generate")
	}

	second, generated, err := Ensure(path, nil)
	if err != nil {
		t.Fatalf("second Ensure: %v", err)
	}
	if generated {
		t.Error("second Ensure regenerated an existing certificate")
	}
	if first.Cert.SerialNumber.Cmp(second.Cert.SerialNumber) != 0 {
		t.Error("second Ensure returned a different certificate")
	}
}

// TestEnsure_FileServesTLS verifies the combined file works as both the cert
// and the key argument of tls.LoadX509KeyPair, the way the server loads it.
func TestEnsure_FileServesTLS(t *testing.T) {
	path := testPath(t)

	if _, _, err := Ensure(path, nil); err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	if _, err := tls.LoadX509KeyPair(path, path); err != nil {
		t.Errorf("LoadX509KeyPair on combined file: %v", err)
	}
}

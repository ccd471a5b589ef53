package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ConfigurationError reports certificate files that are missing or unreadable
// at startup. It is fatal: the server never binds a socket when it is returned.
type ConfigurationError struct {
	CertFile   string
	KeyFile    string
	Missing    []string
	Unreadable []string
}

func (e *ConfigurationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "certificates not found: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unreadable) > 0 {
		parts = append(parts, "certificates unreadable: "+strings.Join(e.Unreadable, ", "))
	}
	return strings.Join(parts, "; ")
}

// Guidance returns operator instructions for generating a self-signed pair.
func (e *ConfigurationError) Guidance() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Certificates not found. Please ensure %s and %s exist and are readable.\n", e.CertFile, e.KeyFile)
	b.WriteString("You can generate them using:\n")
	fmt.Fprintf(&b, "openssl req -x509 -newkey rsa:4096 -keyout %s -out %s -days 365 -nodes\n", e.KeyFile, e.CertFile)
	return b.String()
}

// CheckCertificates verifies that both the certificate and key files exist
// and can be opened for reading.
func CheckCertificates(cfg Config) error {
	var missing, unreadable []string
	for _, path := range []string{cfg.CertFile, cfg.KeyFile} {
		isDir, err := openFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			missing = append(missing, path)
		case err != nil:
			unreadable = append(unreadable, path)
		case isDir:
			missing = append(missing, path)
		}
	}
	if len(missing) > 0 || len(unreadable) > 0 {
		return &ConfigurationError{
			CertFile:   cfg.CertFile,
			KeyFile:    cfg.KeyFile,
			Missing:    missing,
			Unreadable: unreadable,
		}
	}
	return nil
}

func openFile(path string) (isDir bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

package protocol

import "os"

// Environment variable names recognized by the out-of-scope TLS listener
// (spec §6).
const (
	envCertificateFile     = "PFX_CERTIFICATE_FILE"
	envCertificatePassword = "PFX_CERTIFICATE_PASSWORD"
)

// ListenerConfig documents and reads the listener collaborator's two
// environment variables (spec §6); the listener itself — the TCP accept
// loop and TLS handshake — is out of scope (SPEC_FULL §1), but the
// ambient configuration surface for it is carried here the way the
// teacher's engine.go carries a plain Config struct for its own knobs.
type ListenerConfig struct {
	// CertificateFile is an absolute path, or a path relative to the
	// process's working directory, to a PKCS#12 certificate bundle.
	CertificateFile string
	// CertificatePassword unlocks CertificateFile.
	CertificatePassword string
}

// LoadListenerConfig reads ListenerConfig from the environment. Both
// variables absent means plain TCP (TLS disabled); only CertificateFile
// set with no password is passed through as-is, since an empty password
// is a valid PKCS#12 password.
func LoadListenerConfig() ListenerConfig {
	return ListenerConfig{
		CertificateFile:     os.Getenv(envCertificateFile),
		CertificatePassword: os.Getenv(envCertificatePassword),
	}
}

// TLSEnabled reports whether c names a certificate file, the condition
// under which the listener collaborator would upgrade to TLS.
func (c ListenerConfig) TLSEnabled() bool {
	return c.CertificateFile != ""
}

package models

// DefaultAdminUsername is used when the admin row has no username.
const DefaultAdminUsername = "admin"

// AdminCredentials is the single admin record of the site.
type AdminCredentials struct {
	ID       string
	Username string
	Password string // stored as plaintext or a bcrypt hash
}

// EffectiveUsername returns the stored username or the default.
func (a *AdminCredentials) EffectiveUsername() string {
	if a.Username == "" {
		return DefaultAdminUsername
	}
	return a.Username
}

// internal/models/user.go
package models

// User is the identity returned by the backend on login and register.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the locally persisted authentication state.
type Session struct {
	Token     string
	UserID    int64
	UserName  string
	UserEmail string
}

// AuthResponse is the body of POST /login and POST /register.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Session converts the login payload into the state kept by the session store.
func (r AuthResponse) Session() Session {
	return Session{
		Token:     r.Token,
		UserID:    r.User.ID,
		UserName:  r.User.Name,
		UserEmail: r.User.Email,
	}
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

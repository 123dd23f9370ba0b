package model

// User owns places and writes reviews.
type User struct {
	Base
	Email     string `json:"email" yaml:"email"`
	Password  string `json:"password" yaml:"password"`
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
}

// NewUser creates a user with the supplied credentials.
func NewUser(email, password string) *User {
	return &User{Base: newBase(), Email: email, Password: password}
}

func (u *User) Kind() Kind { return KindUser }

func (u *User) Values() []interface{} {
	return append(u.values(), u.Email, u.Password, u.FirstName, u.LastName)
}

func (u *User) Targets() []interface{} {
	return append(u.targets(), &u.Email, &u.Password, &u.FirstName, &u.LastName)
}

func (u *User) Validate() error {
	if err := u.validate(KindUser); err != nil {
		return err
	}
	return required(KindUser, "email", u.Email, "password", u.Password)
}

package models

import (
	"time"
)

type UserType string

const (
	UserRegular UserType = "regular"
	UserPro     UserType = "pro"
)

func (t UserType) Valid() bool {
	return t == UserRegular || t == UserPro
}

type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Avatar    string     `json:"avatar,omitempty"`
	Name      string     `json:"name"`
	Password  string     `json:"-"`
	Type      UserType   `json:"type"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// PublicUser is the author view embedded into offers and comments.
type PublicUser struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Avatar string   `json:"avatar,omitempty"`
	Type   UserType `json:"type"`
}

func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar, Type: u.Type}
}

type CreateUserDto struct {
	Email    string   `json:"email"`
	Avatar   string   `json:"avatar"`
	Name     string   `json:"name"`
	Password string   `json:"password"`
	Type     UserType `json:"type"`
}

func (d *CreateUserDto) Validate() error {
	var errs ValidationErrors
	if !isEmail(d.Email) {
		errs.add("email", "invalidFormat")
	}
	errs.checkLength("name", d.Name, 1, 15)
	errs.checkLength("password", d.Password, 6, 12)
	if d.Type == "" {
		d.Type = UserRegular
	}
	if !d.Type.Valid() {
		errs.add("type", "invalid")
	}
	return errs.Err()
}

type UpdateUserDto struct {
	Avatar   *string   `json:"avatar,omitempty"`
	Name     *string   `json:"name,omitempty"`
	Password *string   `json:"password,omitempty"`
	Type     *UserType `json:"type,omitempty"`
}

func (d *UpdateUserDto) IsEmpty() bool {
	return d.Avatar == nil && d.Name == nil && d.Password == nil && d.Type == nil
}

func (d *UpdateUserDto) Validate() error {
	var errs ValidationErrors
	if d.Name != nil {
		errs.checkLength("name", *d.Name, 1, 15)
	}
	if d.Password != nil {
		errs.checkLength("password", *d.Password, 6, 12)
	}
	if d.Type != nil && !d.Type.Valid() {
		errs.add("type", "invalid")
	}
	return errs.Err()
}

type LoginUserDto struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d *LoginUserDto) Validate() error {
	var errs ValidationErrors
	if !isEmail(d.Email) {
		errs.add("email", "invalidFormat")
	}
	if d.Password == "" {
		errs.add("password", "required")
	}
	return errs.Err()
}

type Tokens struct {
	AccessToken string `json:"token"`
}

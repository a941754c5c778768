package prompt

import (
	"errors"
	"strings"
)

const mask = "********"

// Password is a secret read without echo. String masks it; use Reveal to
// read it.
type Password struct {
	secret string
}

// NewPassword wraps secret.
func NewPassword(secret string) Password { return Password{secret: secret} }

// Reveal returns the secret.
func (p Password) Reveal() string { return p.secret }

// IsEmpty reports whether no secret has been entered.
func (p Password) IsEmpty() bool { return p.secret == "" }

func (p Password) String() string {
	if p.secret == "" {
		return ""
	}
	return mask
}

// MarshalText clears the secret: a serialized Password is always empty.
// UnmarshalText still accepts one, so a secret can be supplied from a file.
func (p Password) MarshalText() ([]byte, error) { return []byte{}, nil }

func (p *Password) UnmarshalText(b []byte) error {
	p.secret = string(b)
	return nil
}

// Prompt reads one hidden entry. The previous secret is discarded.
func (p *Password) Prompt(s *Session, label, comment string) error {
	secret, err := s.Secret(label, comment)
	if err != nil {
		return err
	}
	*p = Password{secret: secret}
	return nil
}

// BuildForm draws a password edit and fails while it is blank.
func (p *Password) BuildForm(f *Form, label, comment string) error {
	f.Comment(comment)
	f.Heading(label)
	f.PasswordEdit(&p.secret)
	if p.secret == "" {
		return errors.New(strings.TrimSpace(label + " password is blank"))
	}
	return nil
}

// ConfirmedPassword is a password entered twice. It is valid only when both
// entries are equal and not empty. It serializes like Password: empty on
// the way out, one copy on the way in.
type ConfirmedPassword struct {
	first  string
	second string
}

// NewConfirmedPassword returns a valid ConfirmedPassword holding secret.
func NewConfirmedPassword(secret string) ConfirmedPassword {
	return ConfirmedPassword{first: secret, second: secret}
}

// Reveal returns the first entry.
func (p ConfirmedPassword) Reveal() string { return p.first }

// Matches reports whether both entries are equal and not empty.
func (p ConfirmedPassword) Matches() bool {
	return p.first != "" && p.first == p.second
}

func (p ConfirmedPassword) String() string {
	if p.first == "" {
		return ""
	}
	return mask
}

func (p ConfirmedPassword) MarshalText() ([]byte, error) { return []byte{}, nil }

func (p *ConfirmedPassword) UnmarshalText(b []byte) error {
	*p = NewConfirmedPassword(string(b))
	return nil
}

// Prompt reads two hidden entries until they match.
func (p *ConfirmedPassword) Prompt(s *Session, label, comment string) error {
	s.Comment(comment)
	return s.retry(label, "Passwords do not match, try again", func() (bool, error) {
		first, err := s.readSecret(Sub(label, "Enter password"))
		if err != nil {
			return false, err
		}
		second, err := s.readSecret(Sub(label, "Enter password again"))
		if err != nil {
			return false, err
		}
		candidate := ConfirmedPassword{first: first, second: second}
		if !candidate.Matches() {
			return false, nil
		}
		*p = candidate
		return true, nil
	})
}

// BuildForm draws two password edits and fails until they match.
func (p *ConfirmedPassword) BuildForm(f *Form, label, comment string) error {
	f.Comment(comment)
	f.Heading(label)
	f.PasswordEdit(&p.first)
	f.PasswordEdit(&p.second)
	switch {
	case p.first == "" && p.second == "":
		return errors.New(strings.TrimSpace(label + " password is blank"))
	case !p.Matches():
		return errors.New(strings.TrimSpace(label + " password does not match"))
	}
	return nil
}

package internal

import (
	"fmt"
	"regexp"
	"strings"
)

// RootScope is the lifecycle registry key for hooks that wrap every subsystem.
const RootScope = "subsystems"

// Notation shapes, tried in order.
var (
	fullNotation       = regexp.MustCompile(`^(\w+):(\w+)\.(\w+)$`)
	controllerNotation = regexp.MustCompile(`^(\w+)\.(\w+)$`)
	methodNotation     = regexp.MustCompile(`^\.?(\w+)$`)
)

// Address is a three-tier handler address: subsystem, controller and method.
// Any part may be empty when the notation it was parsed from left it unset.
type Address struct {
	Subsystem  string
	Controller string
	Method     string
}

// ParseNotation parses "subsystem:controller.method", "controller.method"
// or ".method" (the leading dot is optional) into an Address.
// Parts not present in the token are left empty.
//
// Returns a *NotationError wrapping ErrMalformedNotation for any other shape.
func ParseNotation(token string) (Address, error) {
	if m := fullNotation.FindStringSubmatch(token); m != nil {
		return Address{Subsystem: m[1], Controller: m[2], Method: m[3]}, nil
	}
	if m := controllerNotation.FindStringSubmatch(token); m != nil {
		return Address{Controller: m[1], Method: m[2]}, nil
	}
	if m := methodNotation.FindStringSubmatch(token); m != nil {
		return Address{Method: m[1]}, nil
	}
	return Address{}, &NotationError{Token: token}
}

// MustParseNotation is like ParseNotation but panics on a malformed token.
func MustParseNotation(token string) Address {
	a, err := ParseNotation(token)
	if err != nil {
		panic(err)
	}
	return a
}

// Resolve fills the empty parts of a from base.
//
//	Address{Method: "login"}.Resolve(Address{"desktop", "security", "processLogin"})
//	// => desktop:security.login
func (a Address) Resolve(base Address) Address {
	if a.Subsystem == "" {
		a.Subsystem = base.Subsystem
	}
	if a.Controller == "" {
		a.Controller = base.Controller
	}
	if a.Method == "" {
		a.Method = base.Method
	}
	return a
}

// Complete reports whether all three parts are set.
func (a Address) Complete() bool {
	return a.Subsystem != "" && a.Controller != "" && a.Method != ""
}

// IsZero reports whether no part is set.
func (a Address) IsZero() bool {
	return a == Address{}
}

// ViewPath returns the view identifier for the address:
// "subsystems/{subsystem}/views/{controller}/{method}".
func (a Address) ViewPath() string {
	return strings.Join([]string{RootScope, a.Subsystem, "views", a.Controller, a.Method}, "/")
}

// String returns the address in notation form. Unset leading parts are omitted.
func (a Address) String() string {
	switch {
	case a.Subsystem != "":
		return fmt.Sprintf("%s:%s.%s", a.Subsystem, a.Controller, a.Method)
	case a.Controller != "":
		return a.Controller + "." + a.Method
	case a.Method != "":
		return "." + a.Method
	}
	return ""
}
